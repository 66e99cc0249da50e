// ABOUTME: In-memory Backend for tests and the "memory" backend setting
package store

import (
	"sync"
)

// MemoryBackend keeps slots in a map. It never persists across processes.
type MemoryBackend struct {
	mu    sync.RWMutex
	slots map[string][]byte

	// FailWrites makes Set return an error, for exercising persistence failures.
	FailWrites error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[string(key)]
	if !ok {
		return nil, ErrSlotNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryBackend) Set(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.slots[string(key)] = v
	return nil
}

func (m *MemoryBackend) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, string(key))
	return nil
}
