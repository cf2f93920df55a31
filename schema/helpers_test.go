package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRankByWeight tests descending ranking with deterministic tie-breaks.
func TestRankByWeight(t *testing.T) {
	tests := []struct {
		name     string
		weights  map[string]float64
		limit    int
		expected []string
	}{
		{
			name:     "empty distribution",
			weights:  map[string]float64{},
			limit:    5,
			expected: []string{},
		},
		{
			name:     "descending by weight",
			weights:  map[string]float64{"rice": 120, "bread": 300, "salad": 40},
			limit:    5,
			expected: []string{"bread", "rice", "salad"},
		},
		{
			name:     "limit truncates",
			weights:  map[string]float64{"rice": 120, "bread": 300, "salad": 40},
			limit:    2,
			expected: []string{"bread", "rice"},
		},
		{
			name:     "ties broken by key order",
			weights:  map[string]float64{"pasta": 100, "apple": 100, "melon": 100},
			limit:    5,
			expected: []string{"apple", "melon", "pasta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RankByWeight(tt.weights, tt.limit)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestHeaviestKey tests max-by-weight selection.
func TestHeaviestKey(t *testing.T) {
	key, ok := HeaviestKey(map[string]float64{"Lunch": 50, "Dinner": 80})
	assert.True(t, ok)
	assert.Equal(t, "Dinner", key)

	_, ok = HeaviestKey(map[string]float64{})
	assert.False(t, ok)
}

// TestMealPeriodOrDefault normalizes free-form labels.
func TestMealPeriodOrDefault(t *testing.T) {
	assert.Equal(t, Breakfast, MealPeriodOrDefault("Breakfast"))
	assert.Equal(t, Dinner, MealPeriodOrDefault("dinner"))
	assert.Equal(t, Snack, MealPeriodOrDefault("SNACK"))
	assert.Equal(t, UnknownMeal, MealPeriodOrDefault("brunch"))
	assert.Equal(t, UnknownMeal, MealPeriodOrDefault(""))
}

// TestPeriodDays maps bounded periods to day counts.
func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 1, PeriodDays(DayPeriod))
	assert.Equal(t, 7, PeriodDays(WeekPeriod))
	assert.Equal(t, 30, PeriodDays(MonthPeriod))
	assert.Equal(t, 365, PeriodDays(YearPeriod))
	assert.Equal(t, 0, PeriodDays(AllTime))
}

// TestFormatGrams checks decimal rendering.
func TestFormatGrams(t *testing.T) {
	assert.Equal(t, "125.5g", FormatGrams(125.456))
	assert.Equal(t, "0.0g", FormatGrams(0))
}
