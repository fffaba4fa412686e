package pricingrule

import (
	"context"

	"github.com/retailcore/pospricing/internal/types"
)

// CandidateFilter narrows a rule store query. The store-side filter is a
// performance optimization only; the matcher remains the authority on
// applicability. Empty scope fields mean no narrowing on that axis.
type CandidateFilter struct {
	ActiveOnly bool
	ItemCode   string
	ItemGroup  string
	Brand      string
	Limit      int
}

// Repository defines the interface for pricing rule data access. The
// engine consumes it read-only; the authoring surface owns the writes.
type Repository interface {
	Create(ctx context.Context, rule *Rule) error
	Get(ctx context.Context, id string) (*Rule, error)
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Rule, error)

	// FetchCandidates returns rules compatible with the filter, ordered
	// by resolved priority ascending (priority level descending) as a
	// tie-break convenience. Must return an empty slice, never nil.
	FetchCandidates(ctx context.Context, filter *CandidateFilter) ([]*Rule, error)

	CountActive(ctx context.Context) (int, error)
	CountByPriorityLevel(ctx context.Context) (map[types.PriorityLevel]int, error)
}
