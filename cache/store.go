package cache

import (
	"sync"

	"go.uber.org/zap"

	"bylaws/document"
	"bylaws/layout"
)

// Store keeps computed layouts. Stored layouts are shared and must not be
// modified.
type Store interface {
	Get(Key) (*layout.Layout, bool, error)
	Put(Key, *layout.Layout) error
}

// Compute returns layout for snapshot, reusing stored one when fingerprint
// matches. Store failures are logged and never fail computation.
func Compute(store Store, src *document.Source, m layout.Metrics, log *zap.Logger) (*layout.Layout, bool) {
	if store == nil {
		return layout.Compute(src, m), false
	}

	key := Fingerprint(src, m)
	l, ok, err := store.Get(key)
	if err != nil {
		log.Warn("Unable to read layout cache", zap.Stringer("key", key), zap.Error(err))
	}
	if ok {
		log.Debug("Layout cache hit", zap.Stringer("key", key))
		return l, true
	}

	l = layout.Compute(src, m)
	if err := store.Put(key, l); err != nil {
		log.Warn("Unable to store layout in cache", zap.Stringer("key", key), zap.Error(err))
	}
	log.Debug("Layout computed", zap.Stringer("key", key), zap.Int("pages", l.TotalPages))
	return l, false
}

// Memory is bounded in-process store, oldest entries are evicted first.
type Memory struct {
	mu      sync.Mutex
	limit   int
	order   []Key
	entries map[Key]*layout.Layout
}

// NewMemory creates store holding at most limit layouts (at least one).
func NewMemory(limit int) *Memory {
	return &Memory{
		limit:   max(limit, 1),
		entries: make(map[Key]*layout.Layout),
	}
}

// Get implements Store.
func (m *Memory) Get(k Key) (*layout.Layout, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.entries[k]
	return l, ok, nil
}

// Put implements Store.
func (m *Memory) Put(k Key, l *layout.Layout) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[k]; !ok {
		m.order = append(m.order, k)
	}
	m.entries[k] = l
	for len(m.order) > m.limit {
		delete(m.entries, m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

// Len returns number of stored layouts.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
