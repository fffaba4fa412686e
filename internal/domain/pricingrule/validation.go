package pricingrule

import (
	ierr "github.com/retailcore/pospricing/internal/errors"
	"github.com/retailcore/pospricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Validate enforces the authoring invariants on a rule. The matcher and
// calculator assume these hold; a rule that fails validation must never
// reach the store.
func (r *Rule) Validate() error {
	if r.Name == "" {
		return ierr.NewError("rule name is required").
			WithHint("Please provide a rule name").
			Mark(ierr.ErrValidation)
	}

	if !r.PriorityLevel.Validate() {
		return ierr.NewError("invalid priority level").
			WithHint("Priority level must be between 1 and 8").
			WithReportableDetails(map[string]any{
				"priority_level": r.PriorityLevel,
			}).
			Mark(ierr.ErrValidation)
	}

	if r.ResolvedPriority != r.PriorityLevel.ResolvedPriority() {
		return ierr.NewError("resolved priority out of sync with priority level").
			WithHint("Use SetPriorityLevel to change a rule's priority").
			Mark(ierr.ErrValidation)
	}

	if !r.PricingType.Validate() {
		return ierr.NewError("invalid pricing type").
			WithHintf("Unknown pricing type %q", r.PricingType).
			Mark(ierr.ErrValidation)
	}

	if err := r.validateTimeConditions(); err != nil {
		return err
	}
	if err := r.validatePricingValues(); err != nil {
		return err
	}
	return r.validateConditions()
}

func (r *Rule) validateTimeConditions() error {
	if r.ValidFrom != nil && r.ValidUpto != nil && r.ValidUpto.Before(*r.ValidFrom) {
		return ierr.NewError("valid_upto is before valid_from").
			WithHint("The validity window must end after it starts").
			Mark(ierr.ErrValidation)
	}

	if (r.FromTime == nil) != (r.ToTime == nil) {
		return ierr.NewError("incomplete time-of-day window").
			WithHint("Provide both from_time and to_time, or neither").
			Mark(ierr.ErrValidation)
	}

	// Day-of-week must be pinned down whenever a clock window is set,
	// otherwise an overnight window silently spans unintended days.
	if r.FromTime != nil && len(r.DaysOfWeek) == 0 {
		return ierr.NewError("days_of_week required with time conditions").
			WithHint("Specify the days of week when time conditions are set").
			Mark(ierr.ErrValidation)
	}

	for _, day := range r.DaysOfWeek {
		if !day.Validate() {
			return ierr.NewError("invalid day of week").
				WithHintf("Day of week must be 1-7, got %d", day).
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

func (r *Rule) validatePricingValues() error {
	switch r.PricingType {
	case types.PricingTypeBasePrice, types.PricingTypeBranchOverride, types.PricingTypeCustomerPrice:
		if r.BasePrice == nil {
			return ierr.NewError("base price is required").
				WithHintf("Base price is required for %s rules", r.PricingType).
				Mark(ierr.ErrValidation)
		}

	case types.PricingTypeTimeBased, types.PricingTypeQuantityBreak, types.PricingTypeSpendDiscount:
		if r.DiscountPercentage == nil && r.DiscountAmount == nil {
			return ierr.NewError("discount value is required").
				WithHint("Either a discount percentage or a discount amount is required").
				Mark(ierr.ErrValidation)
		}

	case types.PricingTypeBXGY:
		if r.BuyQuantity <= 0 || r.GetQuantity <= 0 {
			return ierr.NewError("BXGY quantities are required").
				WithHint("BXGY buy quantity and get quantity must both be greater than zero").
				Mark(ierr.ErrValidation)
		}

	case types.PricingTypeManualOverride:
		if r.BasePrice == nil && r.DiscountPercentage == nil && r.DiscountAmount == nil {
			return ierr.NewError("manual override requires a pricing value").
				WithHint("Provide a base price, discount percentage or discount amount").
				Mark(ierr.ErrValidation)
		}
	}

	// An unset pointer reads as zero, which passes every sign check.
	p := types.FromNillableDecimal(r.DiscountPercentage)
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("discount percentage out of range").
			WithHint("Discount percentage must be between 0 and 100").
			Mark(ierr.ErrValidation)
	}

	if types.FromNillableDecimal(r.DiscountAmount).IsNegative() {
		return ierr.NewError("discount amount is negative").
			WithHint("Discount amount must not be negative").
			Mark(ierr.ErrValidation)
	}

	if types.FromNillableDecimal(r.BasePrice).IsNegative() {
		return ierr.NewError("base price is negative").
			WithHint("Base price must not be negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

func (r *Rule) validateConditions() error {
	if len(lo.Uniq(r.BranchIDs)) != len(r.BranchIDs) {
		return ierr.NewError("duplicate branch conditions").
			WithHint("Each branch may appear only once in the branch conditions").
			Mark(ierr.ErrValidation)
	}

	if r.MinQuantity != nil && r.MaxQuantity != nil && r.MaxQuantity.LessThan(*r.MinQuantity) {
		return ierr.NewError("max quantity is below min quantity").
			WithHint("The quantity bounds must form a valid range").
			Mark(ierr.ErrValidation)
	}

	if r.MinSpendAmount != nil && r.MinSpendAmount.IsNegative() {
		return ierr.NewError("minimum spend is negative").
			WithHint("Minimum spend amount must not be negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}
