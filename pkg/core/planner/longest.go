package planner

import "sort"

// LongestVacation concentrates the entire budget, floating included, on
// one champion block: a sliding window over the classified days finds
// the longest span whose working days can all be paid for, and every
// working day inside the winning span is converted. Day granularity
// lets the window absorb partial gaps at its edges, so no other
// strategy's boundary extensions can out-build the champion.
func (p *Planner) LongestVacation() *Plan {
	a := newAllocation(p.cal)

	combined := p.ptoBudget + p.floatingBudget
	if lo, hi, ok := bestWindow(a.off, combined); ok {
		for d := lo; d <= hi; d++ {
			if !a.off[d] {
				a.off[d] = true
				a.pto = append(a.pto, d)
			}
		}
	}
	a.extendLargest(combined-len(a.pto), &a.pto)

	// Spending is tracked as one pool; reporting draws the PTO ledger
	// first and attributes the overflow to the floating ledger
	sort.Ints(a.pto)
	if len(a.pto) > p.ptoBudget {
		a.floating = a.pto[p.ptoBudget:]
		a.pto = a.pto[:p.ptoBudget]
	}

	return a.buildPlan(
		"Longest Single Vacation",
		"Concentrates PTO to create the single longest possible vacation "+
			"block, with leftover days extending its boundaries.",
	)
}

// bestWindow returns the bounds of the longest day span containing at
// most budget working days. Ties prefer the span spending fewer days,
// then the earlier one.
func bestWindow(off []bool, budget int) (int, int, bool) {
	var lo, hi, bestSpan, bestCost int

	cost := 0
	i := 0
	for j := range off {
		if !off[j] {
			cost++
		}
		for cost > budget {
			if !off[i] {
				cost--
			}
			i++
		}
		span := j - i + 1
		if span > bestSpan || (span == bestSpan && cost < bestCost) {
			lo, hi = i, j
			bestSpan = span
			bestCost = cost
		}
	}
	return lo, hi, bestSpan > 0
}
