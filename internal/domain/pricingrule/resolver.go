package pricingrule

// SelectWinner selects the single winning rule among matched rules: the
// one whose priority level outranks the rest (level 8 beats level 1).
// Ties on the same level are broken deterministically by the
// lexicographically smallest rule ID, so winner selection never depends
// on store ordering. Returns nil when no rule matched.
func SelectWinner(matched []*Rule) *Rule {
	var winner *Rule
	for _, rule := range matched {
		if winner == nil {
			winner = rule
			continue
		}
		if rule.PriorityLevel.Outranks(winner.PriorityLevel) {
			winner = rule
			continue
		}
		if rule.PriorityLevel == winner.PriorityLevel && rule.ID < winner.ID {
			winner = rule
		}
	}
	return winner
}

// FilterMatches returns the subset of candidates applicable to the
// context, preserving candidate order.
func FilterMatches(candidates []*Rule, tc *TransactionContext) []*Rule {
	matched := make([]*Rule, 0, len(candidates))
	for _, rule := range candidates {
		if rule.Matches(tc) {
			matched = append(matched, rule)
		}
	}
	return matched
}
