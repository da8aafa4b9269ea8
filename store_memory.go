package hubdown

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an unbounded in-process Store.
// Results are copied on the way in and out, so callers may modify what
// they receive.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Result
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Result)}
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, key string) Lookup {
	if err := ctx.Err(); err != nil {
		return StoreError(err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.entries[key]
	if !ok {
		return NotFound()
	}
	return Found(r.clone())
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, key string, result Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = result.clone()
	return nil
}

// Len returns the number of cached results.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
