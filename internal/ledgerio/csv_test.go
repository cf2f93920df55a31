package ledgerio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

func sampleObservation(food string, grams float64, timestamp string) schema.Observation {
	eventTime, valid := contract.ParseObservationTime(timestamp)
	meals := contract.DefaultMealSchedule()
	return schema.Observation{
		FoodType:    food,
		WeightGrams: grams,
		Timestamp:   timestamp,
		EventTime:   eventTime,
		TimeValid:   valid,
		Confidence:  0.85,
		MealPeriod:  meals.Classify(eventTime, valid),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	meals := contract.DefaultMealSchedule()

	saved := []schema.Observation{
		sampleObservation("Rice", 120.5, "2024-05-15 12:30:00"),
		sampleObservation("Bread", 45, "2024-05-15 08:00:00"),
	}
	saved[1].ImageFilename = "captures/bread_001.jpg"

	require.NoError(t, SaveObservations(path, saved))
	loaded, err := LoadObservations(path, meals)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, saved[0].FoodType, loaded[0].FoodType)
	assert.InDelta(t, saved[0].WeightGrams, loaded[0].WeightGrams, 0.001)
	assert.Equal(t, saved[0].Timestamp, loaded[0].Timestamp)
	assert.Equal(t, schema.Lunch, loaded[0].MealPeriod)
	assert.True(t, loaded[0].TimeValid)

	assert.Equal(t, "captures/bread_001.jpg", loaded[1].ImageFilename)
	assert.Equal(t, schema.Breakfast, loaded[1].MealPeriod)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")
	loaded, err := LoadObservations(path, contract.DefaultMealSchedule())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	content := "FoodType,Weight,Timestamp,Confidence,MealPeriod,ImageFilename\n" +
		"Rice,120.5,2024-05-15 12:30:00,0.85,Lunch,\n" +
		"Bread,not-a-number,2024-05-15 08:00:00,0.85,Breakfast,\n" +
		"Pasta,-40,2024-05-15 12:00:00,0.85,Lunch,\n" +
		"Salad,30,2024-05-15 19:00:00,0.85,Dinner,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := LoadObservations(path, contract.DefaultMealSchedule())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Rice", loaded[0].FoodType)
	assert.Equal(t, "Salad", loaded[1].FoodType)
}

func TestLoadFileWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	content := "Rice,120.5,2024-05-15 12:30:00,0.85,Lunch,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := LoadObservations(path, contract.DefaultMealSchedule())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Rice", loaded[0].FoodType)
}

func TestLoadReclassifiesUnknownMealColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	content := "FoodType,Weight,Timestamp,Confidence,MealPeriod,ImageFilename\n" +
		"Rice,120.5,2024-05-15 12:30:00,0.85,Brunch,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := LoadObservations(path, contract.DefaultMealSchedule())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, schema.Lunch, loaded[0].MealPeriod)
}

func TestLoadUnparsableTimestampKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	content := "FoodType,Weight,Timestamp,Confidence,MealPeriod,ImageFilename\n" +
		"Rice,100,garbled,0.85,Unknown,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := LoadObservations(path, contract.DefaultMealSchedule())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.False(t, loaded[0].TimeValid)
	assert.Equal(t, schema.UnknownMeal, loaded[0].MealPeriod)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.csv")
	require.NoError(t, SaveObservations(path, []schema.Observation{
		sampleObservation("Rice", 100, "2024-05-15 12:30:00"),
	}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
