package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/retailcore/pospricing/internal/domain/pricingrule"
	ierr "github.com/retailcore/pospricing/internal/errors"
	"github.com/retailcore/pospricing/internal/types"
)

// InMemoryRuleStore implements pricingrule.Repository. It counts
// FetchCandidates calls so tests can assert cache behavior, and can be
// told to fail fetches to exercise the fail-open path.
type InMemoryRuleStore struct {
	mu         sync.RWMutex
	rules      map[string]*pricingrule.Rule
	fetchCalls int
	fetchErr   error
}

// NewInMemoryRuleStore creates a new in-memory rule store
func NewInMemoryRuleStore() *InMemoryRuleStore {
	return &InMemoryRuleStore{
		rules: make(map[string]*pricingrule.Rule),
	}
}

// Helper to copy a rule
func copyRule(r *pricingrule.Rule) *pricingrule.Rule {
	if r == nil {
		return nil
	}

	copied := *r
	copied.DaysOfWeek = append([]types.DayOfWeek(nil), r.DaysOfWeek...)
	copied.BranchIDs = append([]string(nil), r.BranchIDs...)
	return &copied
}

func (s *InMemoryRuleStore) Create(ctx context.Context, rule *pricingrule.Rule) error {
	if rule == nil {
		return ierr.NewError("rule cannot be nil").
			WithHint("Rule cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[rule.ID]; exists {
		return ierr.NewError("rule already exists").
			WithHintf("A rule with id %s already exists", rule.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	s.rules[rule.ID] = copyRule(rule)
	return nil
}

func (s *InMemoryRuleStore) Get(ctx context.Context, id string) (*pricingrule.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rule, ok := s.rules[id]
	if !ok {
		return nil, ierr.NewError("rule not found").
			WithHintf("Rule %s was not found", id).
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyRule(rule), nil
}

func (s *InMemoryRuleStore) Update(ctx context.Context, rule *pricingrule.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[rule.ID]; !ok {
		return ierr.NewError("rule not found").
			WithHintf("Rule %s was not found", rule.ID).
			Mark(ierr.ErrNotFound)
	}
	s.rules[rule.ID] = copyRule(rule)
	return nil
}

func (s *InMemoryRuleStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[id]; !ok {
		return ierr.NewError("rule not found").
			WithHintf("Rule %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	delete(s.rules, id)
	return nil
}

func (s *InMemoryRuleStore) List(ctx context.Context) ([]*pricingrule.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := make([]*pricingrule.Rule, 0, len(s.rules))
	for _, r := range s.rules {
		rules = append(rules, copyRule(r))
	}
	sortByPriority(rules)
	return rules, nil
}

// FetchCandidates applies the store-side narrowing filter: active rules
// whose item scope is either unset or compatible with the requested
// item. Results are ordered by resolved priority ascending (priority
// level descending) with the rule ID as a stable secondary key.
func (s *InMemoryRuleStore) FetchCandidates(ctx context.Context, filter *pricingrule.CandidateFilter) ([]*pricingrule.Rule, error) {
	s.mu.Lock()
	s.fetchCalls++
	err := s.fetchErr
	s.mu.Unlock()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Rule store query failed").
			Mark(ierr.ErrStore)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]*pricingrule.Rule, 0)
	for _, r := range s.rules {
		if filter.ActiveOnly && !r.IsActive {
			continue
		}
		if r.Status == types.StatusDeleted {
			continue
		}
		if filter.ItemCode != "" && r.ItemCode != "" && r.ItemCode != filter.ItemCode {
			continue
		}
		if filter.ItemGroup != "" && r.ItemGroup != "" && r.ItemGroup != filter.ItemGroup {
			continue
		}
		if filter.Brand != "" && r.Brand != "" && r.Brand != filter.Brand {
			continue
		}
		candidates = append(candidates, copyRule(r))
	}

	sortByPriority(candidates)

	if filter.Limit > 0 && len(candidates) > filter.Limit {
		candidates = candidates[:filter.Limit]
	}
	return candidates, nil
}

func sortByPriority(rules []*pricingrule.Rule) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].ResolvedPriority != rules[j].ResolvedPriority {
			return rules[i].ResolvedPriority < rules[j].ResolvedPriority
		}
		return rules[i].ID < rules[j].ID
	})
}

func (s *InMemoryRuleStore) CountActive(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, r := range s.rules {
		if r.IsActive && r.Status != types.StatusDeleted {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryRuleStore) CountByPriorityLevel(ctx context.Context) (map[types.PriorityLevel]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	distribution := make(map[types.PriorityLevel]int)
	for _, r := range s.rules {
		if r.IsActive && r.Status != types.StatusDeleted {
			distribution[r.PriorityLevel]++
		}
	}
	return distribution, nil
}

// FetchCount returns how many times FetchCandidates has been called.
func (s *InMemoryRuleStore) FetchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchCalls
}

// SetFetchError makes every subsequent FetchCandidates call fail.
func (s *InMemoryRuleStore) SetFetchError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErr = err
}

// Clear removes all rules and resets counters
func (s *InMemoryRuleStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = make(map[string]*pricingrule.Rule)
	s.fetchCalls = 0
	s.fetchErr = nil
}
