package store

import (
	"context"
	"sync"
)

// MemorySlots keeps slots in a map. Nothing survives the process.
type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemory() *MemorySlots {
	return &MemorySlots{slots: make(map[string]string)}
}

func (m *MemorySlots) Get(_ context.Context, key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *MemorySlots) Set(_ context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

// Clear drops a slot, as if the user wiped their storage.
func (m *MemorySlots) Clear(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
}

func (m *MemorySlots) Close() error { return nil }
