package pricingrule

import (
	"testing"

	"github.com/retailcore/pospricing/internal/types"
	"github.com/stretchr/testify/assert"
)

func leveledRule(id string, level types.PriorityLevel) *Rule {
	r := &Rule{ID: id, Name: id, PricingType: types.PricingTypeTimeBased, IsActive: true}
	r.SetPriorityLevel(level)
	return r
}

func TestSelectWinner(t *testing.T) {
	tests := []struct {
		name    string
		matched []*Rule
		wantID  string
	}{
		{
			name:    "no matches",
			matched: nil,
			wantID:  "",
		},
		{
			name:    "single match",
			matched: []*Rule{leveledRule("rule_a", types.PriorityLevelBasePrice)},
			wantID:  "rule_a",
		},
		{
			name: "highest level wins regardless of order",
			matched: []*Rule{
				leveledRule("rule_qty", types.PriorityLevelQuantityBreak),
				leveledRule("rule_manual", types.PriorityLevelManualOverride),
				leveledRule("rule_base", types.PriorityLevelBasePrice),
			},
			wantID: "rule_manual",
		},
		{
			name: "tie broken by smallest rule ID",
			matched: []*Rule{
				leveledRule("rule_b", types.PriorityLevelTimeBased),
				leveledRule("rule_a", types.PriorityLevelTimeBased),
				leveledRule("rule_c", types.PriorityLevelTimeBased),
			},
			wantID: "rule_a",
		},
		{
			name: "tie break only applies within the top level",
			matched: []*Rule{
				leveledRule("rule_a", types.PriorityLevelBasePrice),
				leveledRule("rule_z", types.PriorityLevelBXGY),
			},
			wantID: "rule_z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner := SelectWinner(tt.matched)
			if tt.wantID == "" {
				assert.Nil(t, winner)
				return
			}
			assert.NotNil(t, winner)
			assert.Equal(t, tt.wantID, winner.ID)
		})
	}
}

func TestFilterMatchesPreservesOrder(t *testing.T) {
	matching := func(id string) *Rule {
		return leveledRule(id, types.PriorityLevelTimeBased)
	}
	rejected := leveledRule("rule_off", types.PriorityLevelTimeBased)
	rejected.IsActive = false

	candidates := []*Rule{matching("rule_1"), rejected, matching("rule_2"), matching("rule_3")}
	matched := FilterMatches(candidates, defaultContext(nil))

	ids := make([]string, 0, len(matched))
	for _, r := range matched {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"rule_1", "rule_2", "rule_3"}, ids)
}
