package types

// PricingType identifies the pricing behavior of a rule
type PricingType string

const (
	PricingTypeBasePrice      PricingType = "BASE_PRICE"
	PricingTypeBranchOverride PricingType = "BRANCH_OVERRIDE"
	PricingTypeCustomerPrice  PricingType = "CUSTOMER_PRICE"
	PricingTypeTimeBased      PricingType = "TIME_BASED"
	PricingTypeQuantityBreak  PricingType = "QUANTITY_BREAK"
	PricingTypeSpendDiscount  PricingType = "SPEND_DISCOUNT"
	PricingTypeBXGY           PricingType = "BXGY"
	PricingTypeManualOverride PricingType = "MANUAL_OVERRIDE"
)

func (p PricingType) Validate() bool {
	switch p {
	case PricingTypeBasePrice,
		PricingTypeBranchOverride,
		PricingTypeCustomerPrice,
		PricingTypeTimeBased,
		PricingTypeQuantityBreak,
		PricingTypeSpendDiscount,
		PricingTypeBXGY,
		PricingTypeManualOverride:
		return true
	default:
		return false
	}
}

// PriorityLevel is the editable 1-8 priority hierarchy level of a rule.
// Level 8 (manual override) outranks level 1 (base item price).
type PriorityLevel int

const (
	PriorityLevelBasePrice      PriorityLevel = 1
	PriorityLevelBranchOverride PriorityLevel = 2
	PriorityLevelCustomerPrice  PriorityLevel = 3
	PriorityLevelTimeBased      PriorityLevel = 4
	PriorityLevelQuantityBreak  PriorityLevel = 5
	PriorityLevelSpendDiscount  PriorityLevel = 6
	PriorityLevelBXGY           PriorityLevel = 7
	PriorityLevelManualOverride PriorityLevel = 8
)

// priorityMapping maps each hierarchy level to its resolved numeric
// priority. The mapping is inverted: the highest level carries the
// smallest number, so level 8 (13) outranks level 1 (20).
var priorityMapping = map[PriorityLevel]int{
	PriorityLevelBasePrice:      20,
	PriorityLevelBranchOverride: 19,
	PriorityLevelCustomerPrice:  18,
	PriorityLevelTimeBased:      17,
	PriorityLevelQuantityBreak:  16,
	PriorityLevelSpendDiscount:  15,
	PriorityLevelBXGY:           14,
	PriorityLevelManualOverride: 13,
}

func (p PriorityLevel) Validate() bool {
	_, ok := priorityMapping[p]
	return ok
}

// ResolvedPriority returns the numeric priority for the level. It is a
// pure function of the level and must never be stored independently of it.
func (p PriorityLevel) ResolvedPriority() int {
	if resolved, ok := priorityMapping[p]; ok {
		return resolved
	}
	return 0
}

// Outranks reports whether p wins over other when both rules match.
func (p PriorityLevel) Outranks(other PriorityLevel) bool {
	return p > other
}
