package pricingrule

import (
	"testing"
	"time"

	"github.com/retailcore/pospricing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Wednesday noon, a deliberately boring moment.
var evalTime = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func todPtr(hour, minute int) *types.TimeOfDay {
	t := types.NewTimeOfDay(hour, minute, 0)
	return &t
}

func activeRule(mutate func(*Rule)) *Rule {
	r := &Rule{
		ID:          "rule_base",
		Name:        "Base rule",
		PricingType: types.PricingTypeTimeBased,
		IsActive:    true,
	}
	r.SetPriorityLevel(types.PriorityLevelTimeBased)
	if mutate != nil {
		mutate(r)
	}
	return r
}

func defaultContext(mutate func(*TransactionContext)) *TransactionContext {
	tc := &TransactionContext{
		ItemCode:      "ITEM-001",
		ItemGroup:     "Beverages",
		Brand:         "Acme",
		BranchID:      "BR-01",
		CustomerID:    "CUST-01",
		CustomerGroup: "Retail",
		Territory:     "North",
		Quantity:      decimal.NewFromInt(2),
		TotalAmount:   dec("500"),
		Timestamp:     evalTime,
	}
	if mutate != nil {
		mutate(tc)
	}
	return tc
}

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		name string
		rule func(*Rule)
		ctx  func(*TransactionContext)
		want bool
	}{
		{
			name: "unrestricted active rule matches",
			want: true,
		},
		{
			name: "inactive rule never matches",
			rule: func(r *Rule) { r.IsActive = false },
			want: false,
		},
		{
			name: "within validity window",
			rule: func(r *Rule) {
				from := evalTime.Add(-24 * time.Hour)
				upto := evalTime.Add(24 * time.Hour)
				r.ValidFrom, r.ValidUpto = &from, &upto
			},
			want: true,
		},
		{
			name: "before validity window",
			rule: func(r *Rule) {
				from := evalTime.Add(time.Hour)
				r.ValidFrom = &from
			},
			want: false,
		},
		{
			name: "after validity window",
			rule: func(r *Rule) {
				upto := evalTime.Add(-time.Hour)
				r.ValidUpto = &upto
			},
			want: false,
		},
		{
			name: "day of week member",
			rule: func(r *Rule) { r.DaysOfWeek = []types.DayOfWeek{types.Monday, types.Wednesday} },
			want: true,
		},
		{
			name: "day of week not a member",
			rule: func(r *Rule) { r.DaysOfWeek = []types.DayOfWeek{types.Saturday, types.Sunday} },
			want: false,
		},
		{
			name: "same-day time window holds",
			rule: func(r *Rule) {
				r.DaysOfWeek = []types.DayOfWeek{types.Wednesday}
				r.FromTime, r.ToTime = todPtr(9, 0), todPtr(17, 0)
			},
			want: true,
		},
		{
			name: "same-day time window rejects",
			rule: func(r *Rule) {
				r.DaysOfWeek = []types.DayOfWeek{types.Wednesday}
				r.FromTime, r.ToTime = todPtr(14, 0), todPtr(17, 0)
			},
			want: false,
		},
		{
			name: "overnight window matches late evening",
			rule: func(r *Rule) {
				r.DaysOfWeek = []types.DayOfWeek{types.Wednesday}
				r.FromTime, r.ToTime = todPtr(22, 0), todPtr(2, 0)
			},
			ctx:  func(tc *TransactionContext) { tc.Timestamp = time.Date(2025, 6, 18, 23, 30, 0, 0, time.UTC) },
			want: true,
		},
		{
			name: "overnight window matches early morning",
			rule: func(r *Rule) {
				r.DaysOfWeek = []types.DayOfWeek{types.Wednesday}
				r.FromTime, r.ToTime = todPtr(22, 0), todPtr(2, 0)
			},
			ctx:  func(tc *TransactionContext) { tc.Timestamp = time.Date(2025, 6, 18, 1, 0, 0, 0, time.UTC) },
			want: true,
		},
		{
			name: "overnight window rejects midday",
			rule: func(r *Rule) {
				r.DaysOfWeek = []types.DayOfWeek{types.Wednesday}
				r.FromTime, r.ToTime = todPtr(22, 0), todPtr(2, 0)
			},
			want: false,
		},
		{
			name: "lone time bound does not restrict",
			rule: func(r *Rule) { r.FromTime = todPtr(22, 0) },
			want: true,
		},
		{
			name: "item code match",
			rule: func(r *Rule) { r.ItemCode = "ITEM-001" },
			want: true,
		},
		{
			name: "item code mismatch",
			rule: func(r *Rule) { r.ItemCode = "ITEM-999" },
			want: false,
		},
		{
			name: "item group match",
			rule: func(r *Rule) { r.ItemGroup = "Beverages" },
			want: true,
		},
		{
			name: "item group mismatch",
			rule: func(r *Rule) { r.ItemGroup = "Snacks" },
			want: false,
		},
		{
			name: "brand restriction independent of group",
			rule: func(r *Rule) { r.Brand = "Other" },
			want: false,
		},
		{
			name: "group-restricted rule fails for null item",
			rule: func(r *Rule) { r.ItemGroup = "Beverages" },
			ctx: func(tc *TransactionContext) {
				tc.ItemCode, tc.ItemGroup, tc.Brand = "", "", ""
			},
			want: false,
		},
		{
			name: "customer code match",
			rule: func(r *Rule) { r.CustomerCode = "CUST-01" },
			want: true,
		},
		{
			name: "customer group mismatch",
			rule: func(r *Rule) { r.CustomerGroup = "Wholesale" },
			want: false,
		},
		{
			name: "territory match",
			rule: func(r *Rule) { r.Territory = "North" },
			want: true,
		},
		{
			name: "branch member",
			rule: func(r *Rule) { r.BranchIDs = []string{"BR-01", "BR-02"} },
			want: true,
		},
		{
			name: "branch not a member",
			rule: func(r *Rule) { r.BranchIDs = []string{"BR-03"} },
			want: false,
		},
		{
			name: "branch required but absent from context",
			rule: func(r *Rule) { r.BranchIDs = []string{"BR-01"} },
			ctx:  func(tc *TransactionContext) { tc.BranchID = "" },
			want: false,
		},
		{
			name: "quantity within bounds inclusive",
			rule: func(r *Rule) { r.MinQuantity, r.MaxQuantity = decPtr("2"), decPtr("2") },
			want: true,
		},
		{
			name: "quantity below minimum",
			rule: func(r *Rule) { r.MinQuantity = decPtr("3") },
			want: false,
		},
		{
			name: "quantity above maximum",
			rule: func(r *Rule) { r.MaxQuantity = decPtr("1") },
			want: false,
		},
		{
			name: "spend at threshold",
			rule: func(r *Rule) { r.MinSpendAmount = decPtr("500") },
			want: true,
		},
		{
			name: "spend below threshold",
			rule: func(r *Rule) { r.MinSpendAmount = decPtr("500.01") },
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := activeRule(tt.rule)
			tc := defaultContext(tt.ctx)
			assert.Equal(t, tt.want, rule.Matches(tc))
		})
	}
}

func TestSetPriorityLevelRecomputes(t *testing.T) {
	r := activeRule(nil)
	assert.Equal(t, 17, r.ResolvedPriority)

	r.SetPriorityLevel(types.PriorityLevelManualOverride)
	assert.Equal(t, 13, r.ResolvedPriority)
}
