package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

func TestNewObservationClassifiesMeal(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		wantMeal  schema.MealPeriod
		wantValid bool
	}{
		{name: "breakfast window", timestamp: "2024-05-15 08:30:00", wantMeal: schema.Breakfast, wantValid: true},
		{name: "breakfast upper edge", timestamp: "2024-05-15 10:30:00", wantMeal: schema.Breakfast, wantValid: true},
		{name: "between meals", timestamp: "2024-05-15 10:45:00", wantMeal: schema.Snack, wantValid: true},
		{name: "lunch window", timestamp: "2024-05-15 12:30:00", wantMeal: schema.Lunch, wantValid: true},
		{name: "dinner window", timestamp: "2024-05-15 19:00:00", wantMeal: schema.Dinner, wantValid: true},
		{name: "late night snack", timestamp: "2024-05-15 22:30:00", wantMeal: schema.Snack, wantValid: true},
		{name: "early morning", timestamp: "2024-05-15 03:00:00", wantMeal: schema.Snack, wantValid: true},
		{name: "unparsable", timestamp: "yesterday-ish", wantMeal: schema.UnknownMeal, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := NewObservation("Rice", 100, tt.timestamp, 0.9, "", contract.DefaultMealSchedule())
			assert.Equal(t, tt.wantMeal, obs.MealPeriod)
			assert.Equal(t, tt.wantValid, obs.TimeValid)
		})
	}
}

func TestAppendRejectsNegativeWeight(t *testing.T) {
	l := newTestLedger()
	err := l.Append(obsAt("Rice", -5, fixedNow))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
	assert.Zero(t, l.Len())
}

func TestAppendNotifiesSubscribers(t *testing.T) {
	l := newTestLedger()
	calls := 0
	l.Subscribe(func() { calls++ })

	require.NoError(t, l.Append(obsAt("Rice", 100, fixedNow)))
	require.NoError(t, l.Append(obsAt("Bread", 50, fixedNow)))
	assert.Equal(t, 2, calls)
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := newTestLedger()
	require.NoError(t, l.Append(obsAt("Rice", 100, fixedNow)))

	entries := l.Entries()
	entries[0].FoodType = "Tampered"
	assert.Equal(t, "Rice", l.Entries()[0].FoodType)
}

func TestQueryFilters(t *testing.T) {
	l := newTestLedger()
	require.NoError(t, l.Append(obsAt("Rice", 100, fixedNow.Add(-48*time.Hour))))
	require.NoError(t, l.Append(obsAt("Rice", 50, fixedNow)))
	require.NoError(t, l.Append(obsAt("Bread", 70, fixedNow)))
	require.NoError(t, l.Append(NewObservation("Rice", 10, "garbled", 0.9, "", contract.DefaultMealSchedule())))

	// Unbounded query by food type keeps unparsable entries.
	assert.Len(t, l.Query("Rice", time.Time{}, time.Time{}), 3)

	// A bounded query drops entries whose time cannot be checked.
	start := fixedNow.Add(-24 * time.Hour)
	matched := l.Query("Rice", start, time.Time{})
	require.Len(t, matched, 1)
	assert.InDelta(t, 50, matched[0].WeightGrams, 0.001)

	// Empty food type matches everything in range.
	assert.Len(t, l.Query("", start, time.Time{}), 2)
}

func TestReplaceResetsState(t *testing.T) {
	l := newTestLedger()
	require.NoError(t, l.Append(obsAt("Rice", 100, fixedNow)))
	_ = l.Statistics(schema.AllTime)
	require.False(t, l.IsDirty())

	l.Replace([]schema.Observation{obsAt("Bread", 70, fixedNow)})
	assert.True(t, l.IsDirty())
	assert.Equal(t, 1, l.Len())
	assert.InDelta(t, 70, l.Statistics(schema.AllTime).TotalWeight, 0.001)
}
