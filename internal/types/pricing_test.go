package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityLevelResolvedPriority(t *testing.T) {
	tests := []struct {
		level    PriorityLevel
		resolved int
	}{
		{PriorityLevelBasePrice, 20},
		{PriorityLevelBranchOverride, 19},
		{PriorityLevelCustomerPrice, 18},
		{PriorityLevelTimeBased, 17},
		{PriorityLevelQuantityBreak, 16},
		{PriorityLevelSpendDiscount, 15},
		{PriorityLevelBXGY, 14},
		{PriorityLevelManualOverride, 13},
	}

	seen := make(map[int]bool)
	for _, tt := range tests {
		assert.Equal(t, tt.resolved, tt.level.ResolvedPriority(), "level %d", tt.level)
		assert.False(t, seen[tt.resolved], "mapping must be a bijection")
		seen[tt.resolved] = true
	}

	// Increasing level yields a strictly decreasing numeric priority.
	for level := PriorityLevel(2); level <= 8; level++ {
		assert.Less(t, level.ResolvedPriority(), (level - 1).ResolvedPriority())
		assert.True(t, level.Outranks(level-1))
	}
}

func TestPriorityLevelValidate(t *testing.T) {
	assert.False(t, PriorityLevel(0).Validate())
	assert.False(t, PriorityLevel(9).Validate())
	for level := PriorityLevel(1); level <= 8; level++ {
		assert.True(t, level.Validate())
	}
}

func TestPricingTypeValidate(t *testing.T) {
	assert.True(t, PricingTypeBXGY.Validate())
	assert.True(t, PricingTypeManualOverride.Validate())
	assert.False(t, PricingType("HAPPY_HOUR").Validate())
	assert.False(t, PricingType("").Validate())
}
