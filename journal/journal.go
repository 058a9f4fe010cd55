// Package journal retains the most recent tick results per entity in a fixed
// ring, so a returning client can ask what happened while it was away without
// the engine keeping unbounded history.
package journal

import "sync"

// DefaultSize is how many entries a journal keeps per entity when the caller
// does not say otherwise.
const DefaultSize = 16

// Book is a bounded per-entity history of T values. The zero value is not
// usable; construct with New.
type Book[T any] struct {
	mu      sync.Mutex
	size    int
	entries map[string][]T
}

// New returns a Book keeping up to size entries per entity. A non-positive
// size falls back to DefaultSize.
func New[T any](size int) *Book[T] {
	if size <= 0 {
		size = DefaultSize
	}
	return &Book[T]{
		size:    size,
		entries: map[string][]T{},
	}
}

// Record appends an entry for the entity, evicting the oldest once the ring
// is full.
func (b *Book[T]) Record(entityID string, entry T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	history := append(b.entries[entityID], entry)
	if len(history) > b.size {
		history = history[len(history)-b.size:]
	}
	b.entries[entityID] = history
}

// Recent returns the retained entries for the entity, oldest first.
func (b *Book[T]) Recent(entityID string) []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	history := b.entries[entityID]
	out := make([]T, len(history))
	copy(out, history)
	return out
}

// Forget drops the entity's history.
func (b *Book[T]) Forget(entityID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, entityID)
}
