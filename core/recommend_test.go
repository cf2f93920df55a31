package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensight/wastetrack/schema"
)

func TestRecommendationsRankByPairingWeight(t *testing.T) {
	l := newTestLedger()
	lunch := time.Date(2024, time.May, 15, 12, 30, 0, 0, time.Local)
	breakfast := time.Date(2024, time.May, 15, 8, 0, 0, 0, time.Local)
	require.NoError(t, l.Append(obsAt("Rice", 60, lunch)))
	require.NoError(t, l.Append(obsAt("Rice", 40, lunch)))
	require.NoError(t, l.Append(obsAt("Bread", 50, breakfast)))

	recs := l.Recommendations(3)
	require.Len(t, recs, 2)

	assert.Equal(t, "Rice", recs[0].FoodType)
	assert.Equal(t, schema.Lunch, recs[0].MealPeriod)
	assert.InDelta(t, 100, recs[0].CurrentWaste, 0.001)
	assert.InDelta(t, 30, recs[0].PotentialSavings, 0.001)
	assert.Contains(t, recs[0].Message, "Rice")

	assert.Equal(t, "Bread", recs[1].FoodType)
	assert.InDelta(t, 15, recs[1].PotentialSavings, 0.001)
}

func TestRecommendationsLimit(t *testing.T) {
	l := newTestLedger()
	lunch := time.Date(2024, time.May, 15, 12, 30, 0, 0, time.Local)
	for _, food := range []string{"Rice", "Bread", "Pasta", "Salad"} {
		require.NoError(t, l.Append(obsAt(food, 50, lunch)))
	}

	assert.Len(t, l.Recommendations(2), 2)
	// Non-positive limits fall back to the default of three.
	assert.Len(t, l.Recommendations(0), 3)
}

func TestRecommendationsTieBreakDeterministic(t *testing.T) {
	l := newTestLedger()
	lunch := time.Date(2024, time.May, 15, 12, 30, 0, 0, time.Local)
	require.NoError(t, l.Append(obsAt("Pasta", 50, lunch)))
	require.NoError(t, l.Append(obsAt("Bread", 50, lunch)))

	recs := l.Recommendations(2)
	require.Len(t, recs, 2)
	assert.Equal(t, "Bread", recs[0].FoodType)
	assert.Equal(t, "Pasta", recs[1].FoodType)
}

func TestRecommendationsEmptyLedger(t *testing.T) {
	l := newTestLedger()
	assert.Empty(t, l.Recommendations(3))
}
