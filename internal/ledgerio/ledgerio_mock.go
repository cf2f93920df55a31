package ledgerio

import (
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
	"github.com/stretchr/testify/mock"
)

// MockArchiveManager is a mock implementation of ArchiveManager for testing.
type MockArchiveManager struct {
	mock.Mock
}

var _ contract.ArchiveManager = &MockArchiveManager{} // Compile-time check

// GetArchiveStore implements the ArchiveManager interface.
func (m *MockArchiveManager) GetArchiveStore() contract.ArchiveStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ArchiveStore)
	return store
}

// Close implements the ArchiveManager interface.
func (m *MockArchiveManager) Close() {
	m.Called()
}

// MockArchiveStore is a mock implementation of ArchiveStore for testing.
type MockArchiveStore struct {
	mock.Mock
}

var _ contract.ArchiveStore = &MockArchiveStore{} // Compile-time check

// Insert implements the ArchiveStore interface.
func (m *MockArchiveStore) Insert(obs schema.Observation) error {
	args := m.Called(obs)
	return args.Error(0)
}

// All implements the ArchiveStore interface.
func (m *MockArchiveStore) All() ([]schema.Observation, error) {
	args := m.Called()
	entries, _ := args.Get(0).([]schema.Observation)
	return entries, args.Error(1)
}

// Status implements the ArchiveStore interface.
func (m *MockArchiveStore) Status() (schema.ArchiveStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ArchiveStatus), args.Error(1)
}

// Clear implements the ArchiveStore interface.
func (m *MockArchiveStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the ArchiveStore interface.
func (m *MockArchiveStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
