package ledgerio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

func newSQLiteStore(t *testing.T) contract.ArchiveStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	store, err := NewArchiveStore(observationsTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestArchiveStoreInsertAndAll(t *testing.T) {
	store := newSQLiteStore(t)

	first := sampleObservation("Rice", 120.5, "2024-05-15 12:30:00")
	second := sampleObservation("Bread", 45, "2024-05-16 08:00:00")
	require.NoError(t, store.Insert(first))
	require.NoError(t, store.Insert(second))

	entries, err := store.All()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Rice", entries[0].FoodType)
	assert.InDelta(t, 120.5, entries[0].WeightGrams, 0.001)
	assert.Equal(t, schema.Lunch, entries[0].MealPeriod)
	assert.True(t, entries[0].TimeValid)
	assert.Equal(t, "Bread", entries[1].FoodType)
}

func TestArchiveStoreUnparsableTimestamp(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Insert(sampleObservation("Rice", 100, "garbled")))

	entries, err := store.All()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].TimeValid)
	assert.Equal(t, schema.UnknownMeal, entries[0].MealPeriod)
}

func TestArchiveStoreStatus(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.Status()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Zero(t, status.Observations)

	require.NoError(t, store.Insert(sampleObservation("Rice", 100, "2024-05-15 12:30:00")))
	require.NoError(t, store.Insert(sampleObservation("Bread", 50, "2024-05-17 08:00:00")))

	status, err = store.Status()
	require.NoError(t, err)
	assert.EqualValues(t, 2, status.Observations)
	assert.True(t, status.OldestEvent.Before(status.NewestEvent))
}

func TestArchiveStoreClear(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Insert(sampleObservation("Rice", 100, "2024-05-15 12:30:00")))
	require.NoError(t, store.Clear())

	entries, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewArchiveStoreRejectsBadInputs(t *testing.T) {
	_, err := NewArchiveStore("bad;table", schema.SQLiteBackend, "")
	assert.Error(t, err)

	_, err = NewArchiveStore(observationsTable, schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestManagerDisabledBackend(t *testing.T) {
	cfg := &contract.Config{ArchiveBackend: schema.NoneBackend}
	mgr := NewArchiveStoreManager(cfg)
	defer mgr.Close()
	assert.Nil(t, mgr.GetArchiveStore())
}

func TestManagerSQLiteBackend(t *testing.T) {
	cfg := &contract.Config{
		ArchiveBackend:   schema.SQLiteBackend,
		ArchiveDBConnect: filepath.Join(t.TempDir(), "archive.db"),
	}
	mgr := NewArchiveStoreManager(cfg)
	defer mgr.Close()
	assert.NotNil(t, mgr.GetArchiveStore())
}
