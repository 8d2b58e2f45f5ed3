package store

import (
	"context"
	"slices"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadfinder/internal/model"
)

// MemoryStore keeps the pool in a slice.
type MemoryStore struct {
	mu    sync.RWMutex
	leads []model.Lead
}

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Migrate(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Reset(_ context.Context, leads []model.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = model.CloneAll(leads)
	return nil
}

func (m *MemoryStore) List(context.Context) ([]model.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return model.CloneAll(m.leads), nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*model.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.index(id)
	if i < 0 {
		return nil, eris.Wrapf(ErrNotFound, "store: get %s", id)
	}
	l := m.leads[i].Clone()
	return &l, nil
}

func (m *MemoryStore) Prepend(_ context.Context, leads []model.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = slices.Concat(model.CloneAll(leads), m.leads)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, lead model.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(lead.ID)
	if i < 0 {
		return eris.Wrapf(ErrNotFound, "store: update %s", lead.ID)
	}
	m.leads[i] = lead.Clone()
	return nil
}

func (m *MemoryStore) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.leads), nil
}

// index must be called with mu held.
func (m *MemoryStore) index(id string) int {
	return slices.IndexFunc(m.leads, func(l model.Lead) bool { return l.ID == id })
}
