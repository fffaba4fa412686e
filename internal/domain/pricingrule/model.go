package pricingrule

import (
	"time"

	"github.com/retailcore/pospricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Rule represents one POS pricing rule: the conditions under which it
// applies and how it prices a line item once it does. Rules are value
// objects during evaluation; nothing here writes back to the record.
type Rule struct {
	ID string `json:"id" db:"id"`
	// DisplayID is the short human-readable code shown on receipts and
	// in the authoring UI, e.g. PR-XYZ12A8Q.
	DisplayID string `json:"display_id" db:"display_id"`
	Name      string `json:"name" db:"name"`

	// PriorityLevel is the editable 1-8 hierarchy level. ResolvedPriority
	// is derived from it via SetPriorityLevel and must never drift.
	PriorityLevel    types.PriorityLevel `json:"priority_level" db:"priority_level"`
	ResolvedPriority int                 `json:"resolved_priority" db:"resolved_priority"`

	PricingType types.PricingType `json:"pricing_type" db:"pricing_type"`
	IsActive    bool              `json:"is_active" db:"is_active"`

	// Validity window; a nil bound is unbounded on that side.
	ValidFrom *time.Time `json:"valid_from" db:"valid_from"`
	ValidUpto *time.Time `json:"valid_upto" db:"valid_upto"`

	// DaysOfWeek restricts the rule to the listed weekdays; empty means
	// every day. Authoring requires it to be non-empty whenever the
	// time-of-day bounds below are set.
	DaysOfWeek []types.DayOfWeek `json:"days_of_week" db:"days_of_week"`

	// FromTime/ToTime bound the wall-clock applicability. FromTime after
	// ToTime denotes an overnight window wrapping past midnight.
	FromTime *types.TimeOfDay `json:"from_time" db:"from_time"`
	ToTime   *types.TimeOfDay `json:"to_time" db:"to_time"`

	// Scope filters; empty fields impose no constraint.
	ItemCode      string   `json:"item_code" db:"item_code"`
	ItemGroup     string   `json:"item_group" db:"item_group"`
	Brand         string   `json:"brand" db:"brand"`
	CustomerCode  string   `json:"customer_code" db:"customer_code"`
	CustomerGroup string   `json:"customer_group" db:"customer_group"`
	Territory     string   `json:"territory" db:"territory"`
	BranchIDs     []string `json:"branch_ids" db:"branch_ids"`

	// Quantity and spend bounds, inclusive.
	MinQuantity    *decimal.Decimal `json:"min_quantity" db:"min_quantity"`
	MaxQuantity    *decimal.Decimal `json:"max_quantity" db:"max_quantity"`
	MinSpendAmount *decimal.Decimal `json:"min_spend_amount" db:"min_spend_amount"`

	// Pricing parameters; relevance depends on PricingType.
	BasePrice          *decimal.Decimal `json:"base_price" db:"base_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage" db:"discount_percentage"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	BuyQuantity        int64            `json:"bxgy_buy_qty" db:"bxgy_buy_qty"`
	GetQuantity        int64            `json:"bxgy_get_qty" db:"bxgy_get_qty"`

	EnvironmentID string `json:"environment_id" db:"environment_id"`

	types.BaseModel
}

// SetPriorityLevel updates the editable level and recomputes the derived
// numeric priority in the same step.
func (r *Rule) SetPriorityLevel(level types.PriorityLevel) {
	r.PriorityLevel = level
	r.ResolvedPriority = level.ResolvedPriority()
}

// TransactionContext carries the facts about one pricing request. The
// item and customer metadata are resolved by the engine before matching;
// rules never reach out to a store themselves.
type TransactionContext struct {
	ItemCode      string          `json:"item_code"`
	ItemGroup     string          `json:"item_group"`
	Brand         string          `json:"brand"`
	BranchID      string          `json:"branch_id"`
	CustomerID    string          `json:"customer_id"`
	CustomerGroup string          `json:"customer_group"`
	Territory     string          `json:"territory"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Matches reports whether the rule applies to the given transaction
// context. Every check must hold; the first failure short-circuits.
func (r *Rule) Matches(tc *TransactionContext) bool {
	if !r.IsActive {
		return false
	}
	if !r.matchesWindow(tc.Timestamp) {
		return false
	}
	if !r.matchesDayOfWeek(tc.Timestamp) {
		return false
	}
	if !r.matchesTimeOfDay(tc.Timestamp) {
		return false
	}
	if !r.matchesItem(tc) {
		return false
	}
	if !r.matchesCustomer(tc) {
		return false
	}
	if !r.matchesBranch(tc.BranchID) {
		return false
	}
	if !r.matchesQuantity(tc.Quantity) {
		return false
	}
	if !r.matchesSpend(tc.TotalAmount) {
		return false
	}
	return true
}

func (r *Rule) matchesWindow(at time.Time) bool {
	if r.ValidFrom != nil && at.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidUpto != nil && at.After(*r.ValidUpto) {
		return false
	}
	return true
}

func (r *Rule) matchesDayOfWeek(at time.Time) bool {
	if len(r.DaysOfWeek) == 0 {
		return true
	}
	return lo.Contains(r.DaysOfWeek, types.DayOfWeekFromTime(at))
}

func (r *Rule) matchesTimeOfDay(at time.Time) bool {
	// Only a fully specified window restricts; a lone bound does not.
	if r.FromTime == nil || r.ToTime == nil {
		return true
	}
	return types.TimeOfDayFromTime(at).WithinWindow(*r.FromTime, *r.ToTime)
}

// matchesItem checks item code, item group and brand independently.
// A null item has no group or brand, so any group or brand restricted
// rule fails for it.
func (r *Rule) matchesItem(tc *TransactionContext) bool {
	if r.ItemCode != "" && r.ItemCode != tc.ItemCode {
		return false
	}
	if r.ItemGroup != "" && r.ItemGroup != tc.ItemGroup {
		return false
	}
	if r.Brand != "" && r.Brand != tc.Brand {
		return false
	}
	return true
}

func (r *Rule) matchesCustomer(tc *TransactionContext) bool {
	if r.CustomerCode != "" && r.CustomerCode != tc.CustomerID {
		return false
	}
	if r.CustomerGroup != "" && r.CustomerGroup != tc.CustomerGroup {
		return false
	}
	if r.Territory != "" && r.Territory != tc.Territory {
		return false
	}
	return true
}

func (r *Rule) matchesBranch(branchID string) bool {
	if len(r.BranchIDs) == 0 {
		return true // no branch restrictions
	}
	if branchID == "" {
		return false // branch required but not provided
	}
	return lo.Contains(r.BranchIDs, branchID)
}

func (r *Rule) matchesQuantity(quantity decimal.Decimal) bool {
	if r.MinQuantity != nil && quantity.LessThan(*r.MinQuantity) {
		return false
	}
	if r.MaxQuantity != nil && quantity.GreaterThan(*r.MaxQuantity) {
		return false
	}
	return true
}

func (r *Rule) matchesSpend(totalAmount decimal.Decimal) bool {
	if r.MinSpendAmount != nil && totalAmount.LessThan(*r.MinSpendAmount) {
		return false
	}
	return true
}
