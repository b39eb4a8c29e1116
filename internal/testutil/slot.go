package testutil

import (
	"postgen/internal/post"
	"postgen/internal/slot"
)

// NewTestSlot creates a new in-memory slot for testing.
func NewTestSlot() *slot.MemorySlot {
	return slot.NewMemorySlot("test-slot")
}

// NewTestStore creates a Store over a fresh in-memory slot with a fixed clock.
// The slot and clock are returned so tests can inspect or advance them.
func NewTestStore(opts ...post.StoreOption) (*post.Store, *slot.MemorySlot, *StubClock) {
	s := NewTestSlot()
	clock := FixedClock()
	return post.NewStore(s, clock, post.NewNopLogger(), opts...), s, clock
}
