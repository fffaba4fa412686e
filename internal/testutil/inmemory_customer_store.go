package testutil

import (
	"context"
	"sync"

	"github.com/retailcore/pospricing/internal/domain/customer"
)

// InMemoryCustomerStore implements customer.Repository. Unknown
// customer codes resolve to (nil, nil).
type InMemoryCustomerStore struct {
	mu        sync.RWMutex
	customers map[string]*customer.Meta
	err       error
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		customers: make(map[string]*customer.Meta),
	}
}

// Add seeds customer metadata
func (s *InMemoryCustomerStore) Add(meta *customer.Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[meta.CustomerCode] = meta
}

func (s *InMemoryCustomerStore) ResolveMeta(ctx context.Context, customerCode string) (*customer.Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}
	if customerCode == "" {
		return nil, nil
	}
	meta, ok := s.customers[customerCode]
	if !ok {
		return nil, nil
	}
	copied := *meta
	return &copied, nil
}

// SetError makes every subsequent lookup fail.
func (s *InMemoryCustomerStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Clear removes all customers
func (s *InMemoryCustomerStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = make(map[string]*customer.Meta)
	s.err = nil
}
