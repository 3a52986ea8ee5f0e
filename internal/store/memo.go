package store

import "sync"

// Memo caches a derived value until one of the slices it depends on
// changes. It is safe for concurrent use.
type Memo[T any] struct {
	mu      sync.Mutex
	deps    []slice
	compute func(State) T

	valid bool
	key   [sliceCount + 1]uint64
	value T
	runs  int
}

func newMemo[T any](compute func(State) T, deps ...slice) *Memo[T] {
	return &Memo[T]{compute: compute, deps: deps}
}

func (m *Memo[T]) Select(s State) T {
	key := s.revision(m.deps...)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.key == key {
		return m.value
	}
	m.value = m.compute(s)
	m.key = key
	m.valid = true
	m.runs++
	return m.value
}

// Runs reports how many times the value was recomputed.
func (m *Memo[T]) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}
