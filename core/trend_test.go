package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensight/wastetrack/schema"
)

func TestFinishSeriesChangePercentage(t *testing.T) {
	tests := []struct {
		name           string
		weights        []float64
		wantChange     float64
		wantIncreasing bool
	}{
		{name: "tripled", weights: []float64{10, 20, 30}, wantChange: 200, wantIncreasing: true},
		{name: "halved", weights: []float64{40, 30, 20}, wantChange: -50, wantIncreasing: false},
		{name: "zero start", weights: []float64{0, 5, 8}, wantChange: 0, wantIncreasing: false},
		{name: "single point", weights: []float64{7}, wantChange: 0, wantIncreasing: false},
		{name: "empty", weights: nil, wantChange: 0, wantIncreasing: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]schema.TrendPoint, len(tt.weights))
			for i, w := range tt.weights {
				points[i] = schema.TrendPoint{Label: "d", Weight: w}
			}

			series := finishSeries(points)
			assert.InDelta(t, tt.wantChange, series.ChangePercentage, 0.001)
			assert.Equal(t, tt.wantIncreasing, series.Increasing)
		})
	}
}

func TestDailyTrendZeroFilled(t *testing.T) {
	l := newTestLedger()
	require.NoError(t, l.Append(obsAt("Rice", 50, fixedNow.Add(-24*time.Hour))))
	require.NoError(t, l.Append(obsAt("Rice", 30, fixedNow)))

	series := NewAnalyzer(l).DailyTrend(7)
	require.Len(t, series.Points, 7)
	assert.InDelta(t, 0, series.Points[0].Weight, 0.001)
	assert.InDelta(t, 50, series.Points[5].Weight, 0.001)
	assert.InDelta(t, 30, series.Points[6].Weight, 0.001)
	// The window opens on an empty day, so the guarded change stays zero.
	assert.InDelta(t, 0, series.ChangePercentage, 0.001)
	assert.False(t, series.Increasing)
}

func TestFoodTypeTrendSparseBuckets(t *testing.T) {
	l := newTestLedger()
	require.NoError(t, l.Append(obsAt("Rice", 50, fixedNow)))
	require.NoError(t, l.Append(obsAt("Bread", 70, fixedNow)))

	// Filtered views emit only dates with matching data, never
	// zero-filled gaps.
	series := NewAnalyzer(l).FoodTypeTrend("Rice", 10)
	require.Len(t, series.Points, 1)
	assert.InDelta(t, 50, series.Points[0].Weight, 0.001)
}

func TestFoodTypeTrendKeepsRecentDates(t *testing.T) {
	l := newTestLedger()
	for i, grams := range []float64{10, 20, 30, 40} {
		day := fixedNow.Add(-time.Duration(3-i) * 24 * time.Hour)
		require.NoError(t, l.Append(obsAt("Rice", grams, day)))
	}

	series := NewAnalyzer(l).FoodTypeTrend("Rice", 2)
	require.Len(t, series.Points, 2)
	assert.InDelta(t, 30, series.Points[0].Weight, 0.001)
	assert.InDelta(t, 40, series.Points[1].Weight, 0.001)
}

func TestMealPeriodTrendSparseBuckets(t *testing.T) {
	l := newTestLedger()
	breakfast := time.Date(2024, time.May, 15, 8, 0, 0, 0, time.Local)
	lunch := time.Date(2024, time.May, 15, 12, 30, 0, 0, time.Local)
	require.NoError(t, l.Append(obsAt("Rice", 50, breakfast)))
	require.NoError(t, l.Append(obsAt("Rice", 90, lunch)))

	series := NewAnalyzer(l).MealPeriodTrend(schema.Breakfast, 3)
	require.Len(t, series.Points, 1)
	assert.InDelta(t, 50, series.Points[0].Weight, 0.001)
	assert.Equal(t, "2024-05-15", series.Points[0].Label)
}

func TestTrendDefaultWindow(t *testing.T) {
	l := newTestLedger()
	series := NewAnalyzer(l).DailyTrend(0)
	assert.Len(t, series.Points, 30)
}
