package contract

import (
	"testing"
	"time"

	"github.com/kitchensight/wastetrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClassifyMinutes covers the default schedule boundaries.
func TestClassifyMinutes(t *testing.T) {
	schedule := DefaultMealSchedule()

	tests := []struct {
		name     string
		minutes  int
		expected schema.MealPeriod
	}{
		{"start of breakfast", 6 * 60, schema.Breakfast},
		{"end of breakfast inclusive", 10*60 + 30, schema.Breakfast},
		{"gap between breakfast and lunch", 10*60 + 45, schema.Snack},
		{"start of lunch", 11 * 60, schema.Lunch},
		{"mid lunch", 12*60 + 30, schema.Lunch},
		{"end of lunch inclusive", 14*60 + 30, schema.Lunch},
		{"afternoon gap", 15 * 60, schema.Snack},
		{"start of dinner", 17 * 60, schema.Dinner},
		{"end of dinner inclusive", 21 * 60, schema.Dinner},
		{"late evening", 22 * 60, schema.Snack},
		{"just before midnight", 23*60 + 59, schema.Snack},
		{"early morning", 3 * 60, schema.Snack},
		{"midnight", 0, schema.Snack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schedule.ClassifyMinutes(tt.minutes))
		})
	}
}

// TestClassifyInvalidTime covers the Unknown fallback.
func TestClassifyInvalidTime(t *testing.T) {
	schedule := DefaultMealSchedule()

	assert.Equal(t, schema.UnknownMeal, schedule.Classify(time.Time{}, false))
	assert.Equal(t, schema.Lunch, schedule.Classify(time.Date(2024, time.May, 15, 12, 30, 0, 0, time.Local), true))
}

// TestParseMealRange covers window parsing and validation.
func TestParseMealRange(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    MealRange
		expectError bool
	}{
		{
			name:     "standard window",
			input:    "06:00-10:30",
			expected: MealRange{6 * 60, 10*60 + 30},
		},
		{
			name:     "single digit hour",
			input:    "6:00-10:30",
			expected: MealRange{6 * 60, 10*60 + 30},
		},
		{
			name:     "spaces around dash",
			input:    "11:00 - 14:30",
			expected: MealRange{11 * 60, 14*60 + 30},
		},
		{
			name:        "end before start",
			input:       "14:00-11:00",
			expectError: true,
		},
		{
			name:        "hour out of range",
			input:       "25:00-26:00",
			expectError: true,
		},
		{
			name:        "minute out of range",
			input:       "10:75-11:00",
			expectError: true,
		},
		{
			name:        "missing dash",
			input:       "10:00 11:00",
			expectError: true,
		},
		{
			name:        "empty",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseMealRange(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}
}

// TestWithRange covers window overrides without mutating the original schedule.
func TestWithRange(t *testing.T) {
	base := DefaultMealSchedule()
	late := base.WithRange(schema.Breakfast, MealRange{7 * 60, 11 * 60})

	// The override applies to the copy
	assert.Equal(t, schema.Breakfast, late.ClassifyMinutes(10*60+45))

	// The original is untouched
	assert.Equal(t, schema.Snack, base.ClassifyMinutes(10*60+45))

	window, ok := late.Range(schema.Breakfast)
	require.True(t, ok)
	assert.Equal(t, MealRange{7 * 60, 11 * 60}, window)

	_, ok = late.Range(schema.UnknownMeal)
	assert.False(t, ok)
}
