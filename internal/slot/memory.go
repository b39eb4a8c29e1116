package slot

import (
	"sync"

	"postgen/internal/post"
)

// MemorySlot is an in-memory implementation of the post.Slot interface.
// It keeps the blob in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemorySlot struct {
	key   string
	data  []byte
	saves int
	mu    sync.RWMutex
}

// NewMemorySlot creates a new empty in-memory slot with the given key.
func NewMemorySlot(key string) *MemorySlot {
	return &MemorySlot{key: key}
}

// Load returns a copy of the stored blob, or nil if nothing was saved.
func (m *MemorySlot) Load() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

// Save replaces the stored blob.
func (m *MemorySlot) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append([]byte{}, data...)
	m.saves++
	return nil
}

// Set seeds the slot with raw content without counting it as a save.
func (m *MemorySlot) Set(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append([]byte{}, data...)
}

// Saves returns the number of Save calls so far.
func (m *MemorySlot) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.saves
}

// Key returns the slot key.
func (m *MemorySlot) Key() string { return m.key }

// Close is a no-op for the in-memory slot.
func (m *MemorySlot) Close() error { return nil }

// Compile-time check that MemorySlot implements post.Slot interface
var _ post.Slot = (*MemorySlot)(nil)
