// Package contract provides interfaces and shared utilities for the wastetrack CLI's internal architecture.
package contract

import "github.com/kitchensight/wastetrack/schema"

// ArchiveManager defines the interface for managing the observation archive.
// This allows the archive layer to be mocked for testing.
type ArchiveManager interface {
	GetArchiveStore() ArchiveStore
	Close()
}

// ArchiveStore defines the interface for durable observation storage.
// This allows mocking the store for testing.
type ArchiveStore interface {
	Insert(obs schema.Observation) error
	All() ([]schema.Observation, error)
	Status() (schema.ArchiveStatus, error)
	Clear() error
	Close() error
}
