package planner

import "time"

// QuarterlyBalance guarantees regular breaks: the year is split into four
// calendar quarters, the budget into four near-equal sub-budgets with the
// remainder going to earlier quarters, and the bridge logic runs
// independently inside each quarter using only the gaps fully contained
// in it.
func (p *Planner) QuarterlyBalance() *Plan {
	a := newAllocation(p.cal)
	bounds := p.quarterBounds()
	budgets := splitBudget(p.ptoBudget, len(bounds))

	for q, b := range bounds {
		if budgets[q] == 0 {
			continue
		}
		p.runBridge(a, budgets[q], b[0], b[1])
	}
	a.extendLargest(p.floatingBudget, &a.floating)

	return a.buildPlan(
		"Quarterly Balance",
		"Distributes PTO across all four quarters for regular breaks "+
			"year-round, with bridges optimized within each quarter.",
	)
}

// quarterBounds returns the inclusive day-index range of each quarter
func (p *Planner) quarterBounds() [4][2]int {
	year := p.cal.Year
	starts := [4]time.Month{time.January, time.April, time.July, time.October}

	var bounds [4][2]int
	for q, m := range starts {
		lo := p.cal.Index(time.Date(year, m, 1, 0, 0, 0, 0, time.UTC))
		hi := p.cal.NumDays() - 1
		if q < 3 {
			hi = p.cal.Index(time.Date(year, starts[q+1], 1, 0, 0, 0, 0, time.UTC)) - 1
		}
		bounds[q] = [2]int{lo, hi}
	}
	return bounds
}

// splitBudget divides total into parts near-equal shares, remainder
// assigned to the earlier parts
func splitBudget(total, parts int) []int {
	out := make([]int, parts)
	base := total / parts
	rem := total % parts
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}
