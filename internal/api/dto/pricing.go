package dto

import (
	"time"

	ierr "github.com/retailcore/pospricing/internal/errors"
	"github.com/retailcore/pospricing/internal/types"
	"github.com/retailcore/pospricing/internal/validator"
	"github.com/shopspring/decimal"
)

// MaxBulkItems caps a single bulk calculation request. The cap is
// caller-enforced here, before any rule evaluation occurs.
const MaxBulkItems = 50

// CalculatePriceRequest asks for the final price of one line item.
// Quantity defaults to 1 and TotalAmount to 0 when omitted. Timestamp
// defaults to the current UTC time and exists so callers (and tests) can
// pin time-dependent rules.
type CalculatePriceRequest struct {
	ItemCode    string          `json:"item_code" validate:"required"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Customer    string          `json:"customer,omitempty"`
	BranchID    string          `json:"branch_id,omitempty"`
	Timestamp   *time.Time      `json:"timestamp,omitempty"`
}

// Validate rejects malformed input before the engine runs. Everything
// past this point fails open instead of erroring.
func (r *CalculatePriceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.BasePrice.IsNegative() {
		return ierr.NewError("base_price is negative").
			WithHint("Base price must not be negative").
			WithReportableDetails(map[string]any{
				"item_code":  r.ItemCode,
				"base_price": r.BasePrice,
			}).
			Mark(ierr.ErrValidation)
	}

	if r.Quantity.IsNegative() {
		return ierr.NewError("quantity is negative").
			WithHint("Quantity must not be negative").
			Mark(ierr.ErrValidation)
	}

	if r.TotalAmount.IsNegative() {
		return ierr.NewError("total_amount is negative").
			WithHint("Transaction total must not be negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Normalize applies the documented request defaults in place.
func (r *CalculatePriceRequest) Normalize() {
	if r.Quantity.IsZero() {
		r.Quantity = decimal.NewFromInt(1)
	}
	if r.Timestamp == nil {
		now := time.Now().UTC()
		r.Timestamp = &now
	}
}

// PriceResponse is the price breakdown returned to the caller. A nil
// RuleApplied means the original price passed through unchanged.
// CalculationDegraded marks a fail-open outcome: an internal error was
// contained and the original price returned.
type PriceResponse struct {
	ItemCode           string              `json:"item_code"`
	Quantity           decimal.Decimal     `json:"quantity"`
	OriginalPrice      decimal.Decimal     `json:"original_price"`
	FinalPrice         decimal.Decimal     `json:"final_price"`
	DiscountAmount     decimal.Decimal     `json:"discount_amount"`
	DiscountPercentage decimal.Decimal     `json:"discount_percentage"`
	FreeUnits          int64               `json:"free_units,omitempty"`
	RuleApplied        *string             `json:"rule_applied"`
	RuleName           string              `json:"rule_name,omitempty"`
	PricingType        types.PricingType   `json:"pricing_type,omitempty"`
	PriorityLevel      types.PriorityLevel `json:"priority_level,omitempty"`

	CalculationDegraded bool   `json:"calculation_degraded,omitempty"`
	DegradedReason      string `json:"degraded_reason,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// BulkPriceItem is one line of a bulk calculation request.
type BulkPriceItem struct {
	ItemCode  string          `json:"item_code" validate:"required"`
	BasePrice decimal.Decimal `json:"base_price"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CalculateBulkPricesRequest prices many line items sharing one
// transaction context. The spend figure used for every item's
// eligibility is the precomputed sum over the whole batch.
type CalculateBulkPricesRequest struct {
	Items     []BulkPriceItem `json:"items" validate:"required,min=1,max=50,dive"`
	Customer  string          `json:"customer,omitempty"`
	BranchID  string          `json:"branch_id,omitempty"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
}

// Validate enforces the batch bounds through the struct tags and the
// decimal sign checks by hand; negative amounts are not expressible as
// validation tags.
func (r *CalculateBulkPricesRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	for _, itm := range r.Items {
		if itm.BasePrice.IsNegative() {
			return ierr.NewError("base_price is negative").
				WithHintf("Item %s has a negative base price", itm.ItemCode).
				Mark(ierr.ErrValidation)
		}
		if itm.Quantity.IsNegative() {
			return ierr.NewError("quantity is negative").
				WithHintf("Item %s has a negative quantity", itm.ItemCode).
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

// BulkPriceResponse aggregates the per-item breakdowns. Items preserve
// the order of the request batch.
type BulkPriceResponse struct {
	Items         []*PriceResponse `json:"items"`
	TotalOriginal decimal.Decimal  `json:"total_original"`
	TotalFinal    decimal.Decimal  `json:"total_final"`
	TotalDiscount decimal.Decimal  `json:"total_discount"`
	RulesApplied  []string         `json:"rules_applied"`
	// CalculationTime is the wall-clock time for the whole batch in
	// milliseconds.
	CalculationTime float64 `json:"calculation_time_ms"`
}
