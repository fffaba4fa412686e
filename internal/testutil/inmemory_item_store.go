package testutil

import (
	"context"
	"sync"

	"github.com/retailcore/pospricing/internal/domain/item"
)

// InMemoryItemStore implements item.Repository. Unknown item codes
// resolve to (nil, nil), matching the entity-resolver contract.
type InMemoryItemStore struct {
	mu    sync.RWMutex
	items map[string]*item.Meta
	err   error
}

// NewInMemoryItemStore creates a new in-memory item store
func NewInMemoryItemStore() *InMemoryItemStore {
	return &InMemoryItemStore{
		items: make(map[string]*item.Meta),
	}
}

// Add seeds item metadata
func (s *InMemoryItemStore) Add(meta *item.Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[meta.ItemCode] = meta
}

func (s *InMemoryItemStore) ResolveMeta(ctx context.Context, itemCode string) (*item.Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}
	if itemCode == "" {
		return nil, nil
	}
	meta, ok := s.items[itemCode]
	if !ok {
		return nil, nil
	}
	copied := *meta
	return &copied, nil
}

// SetError makes every subsequent lookup fail.
func (s *InMemoryItemStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Clear removes all items
func (s *InMemoryItemStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*item.Meta)
	s.err = nil
}
