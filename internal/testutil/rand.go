package testutil

import "sync"

// SequenceRand replays a fixed list of values, each taken modulo n.
// It cycles when the list is exhausted. An empty list always yields 0.
type SequenceRand struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceRand creates a SequenceRand over values.
func NewSequenceRand(values ...int) *SequenceRand {
	return &SequenceRand{values: values}
}

func (r *SequenceRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}
