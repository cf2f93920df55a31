// Package ledgerio handles ledger file persistence, exports and the
// durable observation archive.
package ledgerio

import (
	"sync"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

// ArchiveStoreManager manages the archive store lifecycle.
type ArchiveStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.ArchiveStore
}

var _ contract.ArchiveManager = &ArchiveStoreManager{} // Compile-time check

// NewArchiveStoreManager opens the archive store for the configured
// backend. A disabled or failing backend yields a manager whose store
// is nil; callers decide whether that is fatal.
func NewArchiveStoreManager(cfg *contract.Config) *ArchiveStoreManager {
	mgr := &ArchiveStoreManager{}
	if cfg.ArchiveBackend == "" || cfg.ArchiveBackend == schema.NoneBackend {
		return mgr
	}

	store, err := NewArchiveStore(observationsTable, cfg.ArchiveBackend, cfg.ArchiveDBConnect)
	if err != nil {
		contract.LogWarn("archive unavailable", err)
		return mgr
	}
	mgr.store = store
	return mgr
}

// GetArchiveStore returns the archive store, or nil when disabled.
func (mgr *ArchiveStoreManager) GetArchiveStore() contract.ArchiveStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Close releases the underlying database connection.
func (mgr *ArchiveStoreManager) Close() {
	mgr.Lock()
	defer mgr.Unlock()
	if mgr.store != nil {
		_ = mgr.store.Close()
		mgr.store = nil
	}
}
