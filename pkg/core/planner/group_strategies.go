package planner

import "github.com/jakechorley/pto-planner/pkg/core/calendar"

// BridgeOptimizer maximizes total shared vacation days. Joint gaps are
// closed in ascending combined-cost order under the per-group
// feasibility filter; remaining affordable days extend shared blocks,
// largest first.
func (gp *GroupPlanner) BridgeOptimizer() *GroupPlan {
	ga := gp.newAllocation()
	gp.runGroupBridge(ga, 0, len(gp.jointOff)-1)

	return ga.buildPlan(
		"Bridge Optimizer (Multi-Group)",
		"Maximizes shared vacation days by bridging gaps between "+
			"weekends and holidays across all groups.",
	)
}

// runGroupBridge closes the best feasible joint gap inside [lo, hi]
// until none remains, then spends leftover budgets on affordable
// boundary days, largest block first
func (gp *GroupPlanner) runGroupBridge(ga *groupAllocation, lo, hi int) {
	for {
		g, ok := ga.bestFeasibleGap(lo, hi)
		if !ok {
			break
		}
		ga.closeJointGap(g)
	}
	for {
		day := ga.bestFeasibleExtension(lo, hi)
		if day < 0 {
			break
		}
		ga.spendDay(day)
	}
}

// bestFeasibleGap orders candidate gaps by ascending combined cost, ties
// broken by the larger merged block and then the earlier start. A gap any
// contributing group cannot afford is skipped.
func (ga *groupAllocation) bestFeasibleGap(lo, hi int) (calendar.Gap, bool) {
	var best calendar.Gap
	bestTotal := 0
	found := false

	for _, g := range ga.segments().Gaps {
		if g.Start < lo || g.End > hi {
			continue
		}
		cost := ga.costVector(g)
		if !ga.feasible(cost) {
			continue
		}
		total := totalCost(cost)
		if !found || ga.jointGapLess(g, total, best, bestTotal) {
			best = g
			bestTotal = total
			found = true
		}
	}
	return best, found
}

func (ga *groupAllocation) jointGapLess(g1 calendar.Gap, t1 int, g2 calendar.Gap, t2 int) bool {
	if t1 != t2 {
		return t1 < t2
	}
	m1, m2 := ga.mergedLength(g1), ga.mergedLength(g2)
	if m1 != m2 {
		return m1 > m2
	}
	return g1.Start < g2.Start
}

// LongestVacation concentrates every budget on one champion shared
// block: a sliding window over the joint timeline tracks a running cost
// per group and shrinks as soon as any group's budget is exceeded.
// Every working day inside the winning span is spent by the groups it
// belongs to.
func (gp *GroupPlanner) LongestVacation() *GroupPlan {
	ga := gp.newAllocation()

	if lo, hi, ok := ga.bestJointWindow(); ok {
		for d := lo; d <= hi; d++ {
			if !ga.off[d] {
				ga.spendDay(d)
			}
		}
	}
	for {
		day := ga.bestFeasibleExtension(0, len(gp.jointOff)-1)
		if day < 0 {
			break
		}
		ga.spendDay(day)
	}

	return ga.buildPlan(
		"Longest Shared Vacation",
		"Concentrates PTO to create the single longest shared vacation "+
			"block, with leftover days extending its boundaries.",
	)
}

// bestJointWindow returns the longest day span every group can afford
// simultaneously. Ties prefer the span spending fewer combined days,
// then the earlier one.
func (ga *groupAllocation) bestJointWindow() (int, int, bool) {
	running := make([]int, len(ga.gp.groups))

	var lo, hi, bestSpan, bestCost int
	i := 0
	for j := range ga.off {
		ga.addDayCost(running, j, 1)
		for ga.overBudget(running) {
			ga.addDayCost(running, i, -1)
			i++
		}
		span := j - i + 1
		cost := totalCost(running)
		if span > bestSpan || (span == bestSpan && cost < bestCost) {
			lo, hi = i, j
			bestSpan = span
			bestCost = cost
		}
	}
	return lo, hi, bestSpan > 0
}

func (ga *groupAllocation) addDayCost(running []int, d, sign int) {
	for g, cal := range ga.gp.cals {
		if cal.Days[d].IsWorkday() {
			running[g] += sign
		}
	}
}

func (ga *groupAllocation) overBudget(cost []int) bool {
	for g, c := range cost {
		if c > ga.remaining[g] {
			return true
		}
	}
	return false
}

// ExtendedWeekends spreads short shared getaways across the year: only
// short feasible joint gaps qualify, and joining two already-large
// shared blocks is rejected
func (gp *GroupPlanner) ExtendedWeekends() *GroupPlan {
	ga := gp.newAllocation()
	last := len(gp.jointOff) - 1

	for {
		g, ok := ga.bestShortFeasibleGap()
		if !ok {
			break
		}
		ga.closeJointGap(g)
	}
	for {
		day := ga.shortFeasibleExtension(0, last)
		if day < 0 {
			break
		}
		ga.spendDay(day)
	}

	return ga.buildPlan(
		"Extended Weekends (Multi-Group)",
		"Spreads PTO across many 3-4 day shared weekends throughout "+
			"the year for regular short getaways together.",
	)
}

func (ga *groupAllocation) bestShortFeasibleGap() (calendar.Gap, bool) {
	var best calendar.Gap
	found := false
	var bestRatio float64

	for _, g := range ga.segments().Gaps {
		if g.Length() > shortGapMax {
			continue
		}
		if g.Left < 0 && g.Right < 0 {
			continue
		}
		if ga.mergesLargeBlocks(g) {
			continue
		}
		cost := ga.costVector(g)
		if !ga.feasible(cost) {
			continue
		}
		ratio := float64(totalCost(cost)) / float64(ga.mergedLength(g))
		if !found || ratio < bestRatio || (ratio == bestRatio && g.Start < best.Start) {
			best = g
			bestRatio = ratio
			found = true
		}
	}
	return best, found
}

// QuarterlyBalance splits every group's budget into four near-equal
// quarterly shares (remainder to earlier quarters) and runs the joint
// bridge logic independently inside each quarter
func (gp *GroupPlanner) QuarterlyBalance() *GroupPlan {
	ga := gp.newAllocation()

	numGroups := len(gp.groups)
	shares := make([][]int, numGroups)
	for g, grp := range gp.groups {
		shares[g] = splitBudget(grp.PTOBudget+grp.FloatingHolidays, 4)
	}

	bounds := gp.quarterBounds()
	for q, b := range bounds {
		for g := 0; g < numGroups; g++ {
			ga.remaining[g] = shares[g][q]
		}
		gp.runGroupBridge(ga, b[0], b[1])
	}

	return ga.buildPlan(
		"Quarterly Balance (Multi-Group)",
		"Distributes shared PTO across all four quarters for regular "+
			"breaks year-round, with bridges optimized within each quarter.",
	)
}

// quarterBounds mirrors the single-budget quarter split over the shared
// timeline
func (gp *GroupPlanner) quarterBounds() [4][2]int {
	p := Planner{cal: gp.cals[0]}
	return p.quarterBounds()
}
