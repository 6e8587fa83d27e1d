package planner

import "github.com/jakechorley/pto-planner/pkg/core/calendar"

const (
	// shortGapMax is the longest gap the extended weekends objective will bridge
	shortGapMax = 2

	// largeBlockLen is the block size past which two flanks must not be merged
	largeBlockLen = 4
)

// ExtendedWeekends maximizes the count of 3-4 day blocks, not total days.
// Only short gaps next to an existing island are candidates, ordered by
// cost per resulting block day; a gap whose closure would fuse two
// already-large blocks is rejected outright so selections spread across
// the year. Budget that no short gap can absorb tops up blocks still
// under four days.
func (p *Planner) ExtendedWeekends() *Plan {
	a := newAllocation(p.cal)
	last := p.cal.NumDays() - 1

	remaining := p.ptoBudget
	for remaining > 0 {
		g, ok := a.bestShortGap(remaining)
		if !ok {
			break
		}
		a.closeGap(g)
		remaining -= g.Length()
	}
	for remaining > 0 {
		day := a.shortBlockExtensionIn(0, last)
		if day < 0 {
			break
		}
		a.off[day] = true
		a.pto = append(a.pto, day)
		remaining--
	}
	for f := p.floatingBudget; f > 0; f-- {
		day := a.shortBlockExtensionIn(0, last)
		if day < 0 {
			break
		}
		a.off[day] = true
		a.floating = append(a.floating, day)
	}

	return a.buildPlan(
		"Extended Weekends",
		"Spreads PTO across many 3-4 day weekends throughout the year "+
			"for regular short getaways.",
	)
}

// bestShortGap picks the affordable candidate gap with the lowest cost
// per resulting block day; ties go to the earlier gap
func (a *allocation) bestShortGap(budget int) (calendar.Gap, bool) {
	var best calendar.Gap
	found := false
	var bestRatio float64

	for _, g := range a.segments().Gaps {
		if g.Length() > shortGapMax || g.Length() > budget {
			continue
		}
		if g.Left < 0 && g.Right < 0 {
			continue
		}
		if a.mergesLargeBlocks(g) {
			continue
		}
		ratio := float64(g.Length()) / float64(a.mergedLength(g))
		if !found || ratio < bestRatio || (ratio == bestRatio && g.Start < best.Start) {
			best = g
			bestRatio = ratio
			found = true
		}
	}
	return best, found
}

// mergesLargeBlocks reports whether both flanks of the gap are already
// larger than the 3-4 day target; joining them would trade many medium
// blocks for one long one
func (a *allocation) mergesLargeBlocks(g calendar.Gap) bool {
	if g.Start == 0 || g.End == len(a.off)-1 {
		return false
	}
	if !a.off[g.Start-1] || !a.off[g.End+1] {
		return false
	}
	ls, le := a.blockAt(g.Start - 1)
	rs, re := a.blockAt(g.End + 1)
	return (le-ls+1) >= largeBlockLen && (re-rs+1) >= largeBlockLen
}
