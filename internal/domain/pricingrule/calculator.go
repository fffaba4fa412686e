package pricingrule

import (
	"github.com/retailcore/pospricing/internal/types"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PriceBreakdown is the outcome of applying one rule to a line item.
// FinalPrice is always per unit and never negative.
type PriceBreakdown struct {
	OriginalPrice      decimal.Decimal `json:"original_price"`
	FinalPrice         decimal.Decimal `json:"final_price"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	// FreeUnits is the number of free units granted by a BXGY rule.
	FreeUnits int64 `json:"free_units"`
	// RuleApplied is the ID of the rule that produced this breakdown,
	// empty when no rule applied.
	RuleApplied string `json:"rule_applied"`
}

// UnchangedBreakdown returns the breakdown for a price no rule touched.
func UnchangedBreakdown(originalPrice decimal.Decimal) *PriceBreakdown {
	return &PriceBreakdown{
		OriginalPrice:      originalPrice,
		FinalPrice:         originalPrice,
		DiscountAmount:     decimal.Zero,
		DiscountPercentage: decimal.Zero,
	}
}

// CalculatePrice computes the price breakdown for this rule against a
// line item. The rule is assumed to have matched already; eligibility
// lives in Matches, pricing arithmetic lives here.
func (r *Rule) CalculatePrice(originalPrice, quantity, totalAmount decimal.Decimal) *PriceBreakdown {
	result := UnchangedBreakdown(originalPrice)
	result.RuleApplied = r.ID

	switch r.PricingType {
	case types.PricingTypeBasePrice, types.PricingTypeBranchOverride, types.PricingTypeCustomerPrice:
		if r.BasePrice != nil {
			result.FinalPrice = *r.BasePrice
		}

	case types.PricingTypeTimeBased, types.PricingTypeQuantityBreak, types.PricingTypeSpendDiscount:
		r.applyDiscount(result, originalPrice)

	case types.PricingTypeBXGY:
		r.applyBXGY(result, originalPrice, quantity)

	case types.PricingTypeManualOverride:
		// Fixed precedence: base price, then percentage, then amount.
		if r.BasePrice != nil {
			result.FinalPrice = *r.BasePrice
		} else {
			r.applyDiscount(result, originalPrice)
		}
	}

	if result.FinalPrice.IsNegative() {
		result.FinalPrice = decimal.Zero
	}

	return result
}

func (r *Rule) applyDiscount(result *PriceBreakdown, originalPrice decimal.Decimal) {
	if r.DiscountPercentage != nil {
		discount := originalPrice.Mul(*r.DiscountPercentage).Div(hundred)
		result.FinalPrice = originalPrice.Sub(discount)
		result.DiscountAmount = discount
		result.DiscountPercentage = *r.DiscountPercentage
		return
	}
	if r.DiscountAmount != nil {
		final := originalPrice.Sub(*r.DiscountAmount)
		if final.IsNegative() {
			final = decimal.Zero
		}
		result.FinalPrice = final
		result.DiscountAmount = *r.DiscountAmount
	}
}

// applyBXGY grants floor(quantity/(buy+get))*get free units and spreads
// the discounted total back across every unit, so the final price is an
// average effective unit price. Callers multiply by quantity to recover
// the total owed.
func (r *Rule) applyBXGY(result *PriceBreakdown, originalPrice, quantity decimal.Decimal) {
	if r.BuyQuantity <= 0 || quantity.IsZero() {
		return
	}

	block := decimal.NewFromInt(r.BuyQuantity + r.GetQuantity)
	freeUnits := quantity.Div(block).Floor().Mul(decimal.NewFromInt(r.GetQuantity))
	if !freeUnits.IsPositive() {
		return
	}

	effectiveQuantity := quantity.Sub(freeUnits)
	result.FinalPrice = originalPrice.Mul(effectiveQuantity).Div(quantity)
	result.FreeUnits = freeUnits.IntPart()
}
