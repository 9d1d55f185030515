package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store. The zero value is not usable; call
// NewMemory.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Read implements Store.
func (m *Memory) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers cannot mutate the stored value.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write implements Store.
func (m *Memory) Write(_ context.Context, key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = stored
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
