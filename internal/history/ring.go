package history

import (
	"errors"
	"fmt"
	"sync"

	"vitalguard/internal/vitals"
)

var ErrInvalidCapacity = errors.New("history capacity must be positive")

// Ring is a bounded, insertion-ordered buffer.
// Once full, each append drops the oldest entry (FIFO).
type Ring[T any] struct {
	mu       sync.Mutex
	entries  []T
	capacity int
}

// NewRing creates a ring holding at most capacity entries.
func NewRing[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Ring[T]{
		entries:  make([]T, 0, capacity),
		capacity: capacity,
	}, nil
}

// NewBuffer returns the rolling vitals history that feeds the charts.
func NewBuffer(capacity int) (*Ring[vitals.Reading], error) {
	return NewRing[vitals.Reading](capacity)
}

// Append adds v at the end and returns how many entries were evicted.
func (r *Ring[T]) Append(v T) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, v)

	evicted := len(r.entries) - r.capacity
	if evicted <= 0 {
		return 0
	}

	// keep the most recent capacity entries in a fresh backing array
	kept := make([]T, r.capacity, r.capacity)
	copy(kept, r.entries[evicted:])
	r.entries = kept
	return evicted
}

// Snapshot returns a copy of all entries, oldest first.
func (r *Ring[T]) Snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, len(r.entries))
	copy(out, r.entries)
	return out
}

// Last returns up to n most recent entries, oldest first.
func (r *Ring[T]) Last(n int) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 {
		return []T{}
	}
	if n > len(r.entries) {
		n = len(r.entries)
	}

	out := make([]T, n)
	copy(out, r.entries[len(r.entries)-n:])
	return out
}

// Latest returns the newest entry.
func (r *Ring[T]) Latest() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	if len(r.entries) == 0 {
		return zero, false
	}
	return r.entries[len(r.entries)-1], true
}

// Clear empties the ring. Capacity is unchanged.
func (r *Ring[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make([]T, 0, r.capacity)
}

func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Ring[T]) Cap() int {
	return r.capacity
}
