package storage

import (
	"context"
	"sync"
)

// MemoryAdapter implements Adapter on a process-local map. Used in tests and
// as a fail-soft fallback when the database cannot be opened.
type MemoryAdapter struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryAdapter returns an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{records: make(map[string][]byte)}
}

// Load returns the value stored under key, or ErrNotFound.
func (m *MemoryAdapter) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Save stores value under key, replacing any existing value.
func (m *MemoryAdapter) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.records[key] = stored
	return nil
}

// Close is a no-op.
func (m *MemoryAdapter) Close() error {
	return nil
}
