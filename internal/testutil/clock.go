// Package testutil holds deterministic stand-ins for the store's and the
// generator's injected dependencies.
package testutil

import (
	"sync"
	"time"
)

// DraftDay is the instant FixedClock starts at. The generator's dated body
// template reads its year from the clock, so tests can expect "2025".
var DraftDay = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// StubClock is a manually driven post.Clock. Safe for concurrent use.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

// FixedClock returns a StubClock stopped at DraftDay.
func FixedClock() *StubClock {
	return &StubClock{now: DraftDay}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d, typically between a post's
// transitions so each timestamp is distinct.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t.
func (c *StubClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
