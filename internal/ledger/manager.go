package ledger

import (
	"context"
	"sync"
)

// Manager hands out one hydrated Store per owner. A store is loaded on
// first use and kept; owners never see each other's collections.
type Manager struct {
	mu     sync.Mutex
	kv     BlobStore
	stores map[string]*Store
}

func NewManager(kv BlobStore) *Manager {
	return &Manager{kv: kv, stores: make(map[string]*Store)}
}

// Open returns the owner's store, hydrating it on first use.
func (m *Manager) Open(ctx context.Context, ownerID string) (*Store, error) {
	m.mu.Lock()
	if store, ok := m.stores[ownerID]; ok {
		m.mu.Unlock()
		return store, nil
	}
	m.mu.Unlock()

	store := NewStore(m.kv)
	if err := store.Load(ctx, ownerID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have hydrated the same owner meanwhile; keep the
	// first one so all callers share a single store.
	if existing, ok := m.stores[ownerID]; ok {
		return existing, nil
	}
	m.stores[ownerID] = store
	return store, nil
}

// Close drops an owner's store from the registry. The next Open reloads
// from the persisted snapshots.
func (m *Manager) Close(ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[ownerID]; ok {
		store.Clear()
		delete(m.stores, ownerID)
	}
}
