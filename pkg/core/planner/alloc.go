package planner

import (
	"sort"
	"time"

	"github.com/jakechorley/pto-planner/pkg/core/calendar"
)

// allocation tracks the evolving off-day mask and the spent-day ledgers
// for one strategy run. The island/gap sequence is rebuilt from the mask
// after each closed gap rather than restructured incrementally; the mask
// is bounded by 366 entries so the rebuild cost is irrelevant.
type allocation struct {
	cal      *calendar.Year
	off      []bool
	pto      []int
	floating []int
}

func newAllocation(cal *calendar.Year) *allocation {
	return &allocation{cal: cal, off: cal.NaturalOff()}
}

func (a *allocation) segments() calendar.Sequence {
	return calendar.Segments(a.off)
}

// closeGap spends one PTO day per working day in the gap, merging its
// flanking islands into one block
func (a *allocation) closeGap(g calendar.Gap) {
	for d := g.Start; d <= g.End; d++ {
		a.off[d] = true
		a.pto = append(a.pto, d)
	}
}

// blockAt returns the bounds of the contiguous off run containing day i
func (a *allocation) blockAt(i int) (int, int) {
	start, end := i, i
	for start > 0 && a.off[start-1] {
		start--
	}
	for end < len(a.off)-1 && a.off[end+1] {
		end++
	}
	return start, end
}

// mergedLength returns the length of the block that closing g would
// produce, flanking blocks included
func (a *allocation) mergedLength(g calendar.Gap) int {
	start, end := g.Start, g.End
	if g.Start > 0 && a.off[g.Start-1] {
		start, _ = a.blockAt(g.Start - 1)
	}
	if g.End < len(a.off)-1 && a.off[g.End+1] {
		_, end = a.blockAt(g.End + 1)
	}
	return end - start + 1
}

// workRunLeft returns the number of consecutive working days ending at
// day i, walking left. Zero if day i is off.
func (a *allocation) workRunLeft(i int) int {
	n := 0
	for i >= 0 && !a.off[i] {
		n++
		i--
	}
	return n
}

// workRunRight returns the number of consecutive working days starting at
// day i, walking right. Zero if day i is off.
func (a *allocation) workRunRight(i int) int {
	n := 0
	for i < len(a.off) && !a.off[i] {
		n++
		i++
	}
	return n
}

// extendLargestIn grows the largest block inside [lo, hi] one day at a
// time at its nearer boundary, spending at most budget days from the
// given ledger. Returns the number of days spent. The nearer boundary is
// the side whose remaining working-day run to the next island is shorter,
// so repeated extension eventually merges; ties extend the earlier side.
func (a *allocation) extendLargestIn(budget, lo, hi int, ledger *[]int) int {
	spent := 0
	for spent < budget {
		day := a.bestExtensionIn(lo, hi)
		if day < 0 {
			break
		}
		a.off[day] = true
		*ledger = append(*ledger, day)
		spent++
	}
	return spent
}

func (a *allocation) extendLargest(budget int, ledger *[]int) int {
	return a.extendLargestIn(budget, 0, len(a.off)-1, ledger)
}

// bestExtensionIn picks the working day to convert next: the largest
// block intersecting [lo, hi] (tie: earliest), extended at its nearer
// in-range boundary. Returns -1 when no block can be extended.
func (a *allocation) bestExtensionIn(lo, hi int) int {
	seq := a.segments()

	best := -1
	for idx, isl := range seq.Islands {
		if isl.End < lo || isl.Start > hi {
			continue
		}
		if best < 0 || isl.Length() > seq.Islands[best].Length() {
			best = idx
		}
	}
	if best < 0 {
		return -1
	}
	return a.nearerBoundary(seq.Islands[best], lo, hi)
}

// shortBlockExtensionIn picks a working day that grows a below-target
// block toward 3-4 days: the shortest block under four days intersecting
// [lo, hi] (tie: earliest), at its nearer boundary. Used by the extended
// weekends objective, which must not feed its budget into one big block.
func (a *allocation) shortBlockExtensionIn(lo, hi int) int {
	seq := a.segments()

	best := -1
	for idx, isl := range seq.Islands {
		if isl.End < lo || isl.Start > hi || isl.Length() >= 4 {
			continue
		}
		if best < 0 || isl.Length() < seq.Islands[best].Length() {
			best = idx
		}
	}
	if best < 0 {
		return -1
	}
	return a.nearerBoundary(seq.Islands[best], lo, hi)
}

// nearerBoundary returns the working day flanking the island on the side
// whose run to the next island is shorter, restricted to [lo, hi].
// Returns -1 when neither side has an in-range working day.
func (a *allocation) nearerBoundary(isl calendar.Island, lo, hi int) int {
	days := a.boundaryDays(isl, lo, hi)
	if len(days) == 0 {
		return -1
	}
	return days[0]
}

// boundaryDays returns the island's in-range flanking working days,
// nearer side first
func (a *allocation) boundaryDays(isl calendar.Island, lo, hi int) []int {
	left := isl.Start - 1
	right := isl.End + 1
	leftOK := left >= lo && left >= 0
	rightOK := right <= hi && right < len(a.off)

	switch {
	case !leftOK && !rightOK:
		return nil
	case !rightOK:
		return []int{left}
	case !leftOK:
		return []int{right}
	}
	if a.workRunLeft(left) <= a.workRunRight(right) {
		return []int{left, right}
	}
	return []int{right, left}
}

// buildPlan assembles the final Plan: a single walk over the merged
// sequence emits the blocks with their composition, then the ledgers are
// converted to dates.
func (a *allocation) buildPlan(name, description string) *Plan {
	sort.Ints(a.pto)
	sort.Ints(a.floating)

	selected := make([]bool, len(a.off))
	for _, d := range a.pto {
		selected[d] = true
	}
	for _, d := range a.floating {
		selected[d] = true
	}

	var blocks []Block
	for _, isl := range a.segments().Islands {
		b := Block{
			StartDate: a.cal.Date(isl.Start),
			EndDate:   a.cal.Date(isl.End),
			TotalDays: isl.Length(),
		}
		for d := isl.Start; d <= isl.End; d++ {
			day := a.cal.Days[d]
			switch {
			case selected[d]:
				b.PTODays++
			case day.IsHoliday:
				b.Holidays++
			default:
				b.WeekendDays++
			}
		}
		blocks = append(blocks, b)
	}

	return &Plan{
		Name:          name,
		Description:   description,
		Blocks:        blocks,
		PTODates:      a.dates(a.pto),
		FloatingDates: a.dates(a.floating),
	}
}

func (a *allocation) dates(indices []int) []time.Time {
	out := make([]time.Time, len(indices))
	for i, d := range indices {
		out[i] = a.cal.Date(d)
	}
	return out
}
