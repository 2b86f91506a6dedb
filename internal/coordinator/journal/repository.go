package journal

import (
	"context"
	"slices"
	"sync"
)

// Repository persists journal entries. The coordinator depends on this
// port so tests and the service can plug their own store.
type Repository interface {
	// Save appends an entry; entries are never updated.
	Save(ctx context.Context, entry *Entry) error
}

// MemoryRepository keeps entries in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []Entry
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save is safe to call concurrently.
func (r *MemoryRepository) Save(_ context.Context, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := *entry
	e.Errors = slices.Clone(entry.Errors)
	r.entries = append(r.entries, e)
	return nil
}

// History returns the entries of one checkout run in the order they were saved.
func (r *MemoryRepository) History(checkoutID string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Entry
	for _, e := range r.entries {
		if e.CheckoutID == checkoutID {
			out = append(out, e)
		}
	}
	return out
}

// Latest returns the most recent entry of a checkout run.
func (r *MemoryRepository) Latest(checkoutID string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].CheckoutID == checkoutID {
			return r.entries[i], true
		}
	}
	return Entry{}, false
}
