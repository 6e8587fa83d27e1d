package planner

import "github.com/jakechorley/pto-planner/pkg/core/calendar"

// BridgeOptimizer maximizes total vacation days with a bias toward fewer,
// longer blocks. Gaps are closed cheapest-first; a gap that does not fit
// the remaining budget is skipped, not discarded, so the candidate set is
// re-evaluated after every merge. Leftover budget too small to close any
// remaining gap extends the single largest block at its nearer boundary,
// one day at a time.
func (p *Planner) BridgeOptimizer() *Plan {
	a := newAllocation(p.cal)
	p.runBridge(a, p.ptoBudget, 0, p.cal.NumDays()-1)
	a.extendLargest(p.floatingBudget, &a.floating)

	return a.buildPlan(
		"Bridge Optimizer",
		"Maximizes total vacation days by bridging gaps between "+
			"weekends and holidays into long contiguous blocks.",
	)
}

// runBridge is the shared greedy core: close the best affordable gap
// inside [lo, hi] until none fits, then spend what is left extending the
// largest block in range. Also driven per-quarter by QuarterlyBalance.
func (p *Planner) runBridge(a *allocation, budget, lo, hi int) {
	remaining := budget
	for remaining > 0 {
		g, ok := a.bestAffordableGap(remaining, lo, hi)
		if !ok {
			break
		}
		a.closeGap(g)
		remaining -= g.Length()
	}
	remaining -= a.extendLargestIn(remaining, lo, hi, &a.pto)
}

// bestAffordableGap returns the best gap fully inside [lo, hi] whose cost
// fits the budget: shortest first, ties broken by the larger merged
// block, then by the earlier start date.
func (a *allocation) bestAffordableGap(budget, lo, hi int) (calendar.Gap, bool) {
	var best calendar.Gap
	found := false
	for _, g := range a.segments().Gaps {
		if g.Start < lo || g.End > hi || g.Length() > budget {
			continue
		}
		if !found || a.gapLess(g, best) {
			best = g
			found = true
		}
	}
	return best, found
}

func (a *allocation) gapLess(g1, g2 calendar.Gap) bool {
	if g1.Length() != g2.Length() {
		return g1.Length() < g2.Length()
	}
	m1, m2 := a.mergedLength(g1), a.mergedLength(g2)
	if m1 != m2 {
		return m1 > m2
	}
	return g1.Start < g2.Start
}
