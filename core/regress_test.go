package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLine(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		wantSlope     float64
		wantIntercept float64
		wantRSquared  float64
	}{
		{name: "perfect line", values: []float64{10, 20, 30, 40}, wantSlope: 10, wantIntercept: 10, wantRSquared: 1},
		{name: "declining line", values: []float64{100, 50, 0}, wantSlope: -50, wantIntercept: 100, wantRSquared: 1},
		{name: "flat series", values: []float64{5, 5, 5, 5}, wantSlope: 0, wantIntercept: 5, wantRSquared: 0},
		{name: "single point", values: []float64{42}, wantSlope: 0, wantIntercept: 0, wantRSquared: 0},
		{name: "empty series", values: nil, wantSlope: 0, wantIntercept: 0, wantRSquared: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := FitLine(tt.values)
			assert.InDelta(t, tt.wantSlope, model.Slope, 0.001)
			assert.InDelta(t, tt.wantIntercept, model.Intercept, 0.001)
			assert.InDelta(t, tt.wantRSquared, model.RSquared, 0.001)
		})
	}
}

func TestFitLineNoisySeries(t *testing.T) {
	model := FitLine([]float64{10, 30, 5, 40, 12, 33})
	assert.Greater(t, model.RSquared, 0.0)
	assert.Less(t, model.RSquared, 1.0)
}

func TestPredictClampsNegative(t *testing.T) {
	model := FitLine([]float64{100, 50, 0})
	assert.InDelta(t, 0, Predict(model, 3), 0.001)
	assert.InDelta(t, 50, Predict(model, 1), 0.001)
}

func TestForecastProjectsLinearGrowth(t *testing.T) {
	l := newTestLedger()
	// Four consecutive days of linearly growing waste.
	for i, grams := range []float64{10, 20, 30, 40} {
		day := fixedNow.Add(-time.Duration(3-i) * 24 * time.Hour)
		require.NoError(t, l.Append(obsAt("Rice", grams, day)))
	}

	forecast := l.Forecast(2)
	require.Len(t, forecast, 2)
	// The model fits the smoothed zero-filled thirty-day series, so later
	// values keep growing from the last observed day.
	assert.Greater(t, forecast[1], forecast[0])
}

func TestForecastNeverNegative(t *testing.T) {
	l := newTestLedger()
	for i, grams := range []float64{100, 50, 1} {
		day := fixedNow.Add(-time.Duration(2-i) * 24 * time.Hour)
		require.NoError(t, l.Append(obsAt("Rice", grams, day)))
	}

	for _, projected := range l.Forecast(14) {
		assert.GreaterOrEqual(t, projected, 0.0)
	}
}

func TestForecastEmptyHorizon(t *testing.T) {
	l := newTestLedger()
	assert.Empty(t, l.Forecast(0))
	assert.Empty(t, l.Forecast(-3))
}

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   []float64
	}{
		// Centered windows clip at the edges.
		{name: "centered window of three", values: []float64{10, 20, 30, 40}, window: 3, want: []float64{15, 20, 30, 35}},
		{name: "single point window", values: []float64{10, 20, 30}, window: 1, want: []float64{10, 20, 30}},
		{name: "window larger than series", values: []float64{10, 20}, window: 5, want: []float64{10, 20}},
		{name: "degenerate window", values: []float64{10, 20}, window: 0, want: []float64{10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MovingAverage(tt.values, tt.window)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 0.001)
			}
		})
	}
}
