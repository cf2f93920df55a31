package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensight/wastetrack/schema"
)

func TestZScoreOutliers(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]float64
		threshold float64
		want      []string
	}{
		{
			name: "single heavy weekday",
			values: map[string]float64{
				"Monday": 10, "Tuesday": 12, "Wednesday": 11,
				"Thursday": 60, "Friday": 9, "Saturday": 10, "Sunday": 11,
			},
			threshold: 1.5,
			want:      []string{"Thursday"},
		},
		{
			name: "far below the mean",
			values: map[string]float64{
				"Monday": 100, "Tuesday": 100, "Wednesday": 100,
				"Thursday": 100, "Friday": 0,
			},
			threshold: 1.5,
			want:      []string{"Friday"},
		},
		{
			name:      "uniform values",
			values:    map[string]float64{"Monday": 10, "Tuesday": 10, "Wednesday": 10},
			threshold: 1.5,
			want:      nil,
		},
		{
			name:      "too few buckets",
			values:    map[string]float64{"Monday": 10},
			threshold: 1.5,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, zScoreOutliers(tt.values, tt.threshold))
		})
	}
}

func TestWeekdayPatternAverages(t *testing.T) {
	l := newTestLedger()
	// Two entries on the same Monday average per entry, not per date.
	monday := time.Date(2024, time.May, 6, 12, 0, 0, 0, time.Local)
	tuesday := time.Date(2024, time.May, 7, 12, 0, 0, 0, time.Local)
	require.NoError(t, l.Append(obsAt("Rice", 100, monday)))
	require.NoError(t, l.Append(obsAt("Rice", 200, monday)))
	require.NoError(t, l.Append(obsAt("Rice", 50, tuesday)))

	pattern := l.WeekdayPattern()
	require.Len(t, pattern, 7)
	assert.InDelta(t, 150, pattern["Monday"], 0.001)
	assert.InDelta(t, 50, pattern["Tuesday"], 0.001)
	assert.InDelta(t, 0, pattern["Sunday"], 0.001)
}

func TestMonthlyPatternAverages(t *testing.T) {
	l := newTestLedger()
	april := time.Date(2024, time.April, 10, 12, 0, 0, 0, time.Local)
	may := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.Local)
	require.NoError(t, l.Append(obsAt("Rice", 100, april)))
	require.NoError(t, l.Append(obsAt("Rice", 300, april)))
	require.NoError(t, l.Append(obsAt("Rice", 80, may)))

	pattern := l.MonthlyPattern()
	require.Len(t, pattern, 12)
	assert.InDelta(t, 200, pattern["April"], 0.001)
	assert.InDelta(t, 80, pattern["May"], 0.001)
	assert.InDelta(t, 0, pattern["December"], 0.001)
}

func TestMealAveragePattern(t *testing.T) {
	l := newTestLedger()
	lunch1 := time.Date(2024, time.May, 14, 12, 0, 0, 0, time.Local)
	lunch2 := time.Date(2024, time.May, 15, 12, 30, 0, 0, time.Local)
	dinner := time.Date(2024, time.May, 14, 19, 0, 0, 0, time.Local)
	require.NoError(t, l.Append(obsAt("Rice", 100, lunch1)))
	require.NoError(t, l.Append(obsAt("Rice", 200, lunch2)))
	require.NoError(t, l.Append(obsAt("Rice", 90, dinner)))

	pattern := l.MealAveragePattern()
	assert.InDelta(t, 150, pattern[string(schema.Lunch)], 0.001)
	assert.InDelta(t, 90, pattern[string(schema.Dinner)], 0.001)
}

func TestInsightsEmptyLedger(t *testing.T) {
	l := newTestLedger()
	insights := l.Insights()
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0], "No waste recorded")
}

func TestInsightsMemoization(t *testing.T) {
	l := newTestLedger()
	require.NoError(t, l.Append(obsAt("Rice", 100, fixedNow.Add(-time.Hour))))

	first := l.Insights()
	assert.Equal(t, first, l.Insights())

	// A new observation invalidates the memo.
	require.NoError(t, l.Append(obsAt("Bread", 500, fixedNow.Add(-time.Hour))))
	refreshed := l.Insights()
	assert.NotEqual(t, first, refreshed)
	assert.Contains(t, refreshed[1], "Bread")
}

func TestInsightsOrderedList(t *testing.T) {
	l := newTestLedger()
	require.NoError(t, l.Append(obsAt("Rice", 100, fixedNow.Add(-26*time.Hour))))
	require.NoError(t, l.Append(obsAt("Rice", 140, fixedNow.Add(-2*time.Hour))))

	insights := l.Insights()
	require.GreaterOrEqual(t, len(insights), 3)

	// Totals open the list, the projection closes the fixed portion.
	assert.Contains(t, insights[0], "Total waste recorded")
	assert.Contains(t, insights[0], "2 items")

	joined := strings.Join(insights, "\n")
	assert.Contains(t, joined, "Projected daily waste one week from now")
	// The trend line reports the endpoint delta over the daily series.
	assert.Contains(t, joined, "over the last")
}

func TestCorrelationsFlagConcentratedPairs(t *testing.T) {
	l := newTestLedger()
	lunch := time.Date(2024, time.May, 15, 12, 30, 0, 0, time.Local)
	dinner := time.Date(2024, time.May, 15, 19, 0, 0, 0, time.Local)
	// Rice exclusively at lunch; bread split evenly.
	require.NoError(t, l.Append(obsAt("Rice", 100, lunch)))
	require.NoError(t, l.Append(obsAt("Rice", 80, lunch)))
	require.NoError(t, l.Append(obsAt("Bread", 50, lunch)))
	require.NoError(t, l.Append(obsAt("Bread", 50, dinner)))

	findings := l.Correlations()
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "Rice")
	assert.Contains(t, findings[0], "Lunch")
}

func TestImpactFigures(t *testing.T) {
	l := newTestLedger()
	require.NoError(t, l.Append(obsAt("Rice", 1000, fixedNow.Add(-time.Hour))))

	report := l.Impact(schema.AllTime, 5.0, 2.5, 1000.0)
	assert.InDelta(t, 5.0, report.WasteCost, 0.001)
	assert.InDelta(t, 1.5, report.PotentialSavings, 0.001)
	assert.InDelta(t, 2.5, report.CO2Kg, 0.001)
	assert.InDelta(t, 1000.0, report.WaterLiters, 0.001)
}
