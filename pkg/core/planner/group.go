package planner

import (
	"fmt"
	"sort"

	"github.com/jakechorley/pto-planner/pkg/core/calendar"
)

// GroupPlanner synchronizes several independently budgeted calendars into
// shared vacation blocks. A day counts as shared time off only when every
// group is off, either naturally (weekend, own holiday) or by spending
// from its own budget.
//
// Joint gap selection is a vector knapsack: closing one joint gap draws
// different amounts from several budgets at once. True optimality is
// NP-hard in the number of groups, so selection is the same greedy
// ordering as the single-budget strategies with a per-group feasibility
// filter; this is a deliberate approximation, not a bug.
type GroupPlanner struct {
	year     int
	groups   []HolidayGroup
	cals     []*calendar.Year
	jointOff []bool
}

// NewGroupPlanner classifies every group's calendar over the shared year
// and validates all inputs eagerly
func NewGroupPlanner(year int, groups []HolidayGroup) (*GroupPlanner, error) {
	if len(groups) == 0 {
		return nil, ErrEmptyGroupSet
	}

	gp := &GroupPlanner{year: year, groups: groups}
	for _, g := range groups {
		if g.PTOBudget < 0 {
			return nil, fmt.Errorf("%w: group %q pto budget %d", ErrNegativeBudget, g.Name, g.PTOBudget)
		}
		if g.FloatingHolidays < 0 {
			return nil, fmt.Errorf("%w: group %q floating budget %d", ErrNegativeBudget, g.Name, g.FloatingHolidays)
		}
		cal, err := calendar.Classify(year, g.Holidays)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		gp.cals = append(gp.cals, cal)
	}

	numDays := gp.cals[0].NumDays()
	gp.jointOff = make([]bool, numDays)
	for d := 0; d < numDays; d++ {
		all := true
		for _, cal := range gp.cals {
			if cal.Days[d].IsWorkday() {
				all = false
				break
			}
		}
		gp.jointOff[d] = all
	}

	return gp, nil
}

// Groups returns the groups supplied at construction
func (gp *GroupPlanner) Groups() []HolidayGroup {
	return gp.groups
}

// Calendars returns the per-group classified calendars
func (gp *GroupPlanner) Calendars() []*calendar.Year {
	return gp.cals
}

// Run executes one strategy, or all four for StrategyAll
func (gp *GroupPlanner) Run(s Strategy) ([]*GroupPlan, error) {
	switch s {
	case StrategyBridges:
		return []*GroupPlan{gp.BridgeOptimizer()}, nil
	case StrategyLongest:
		return []*GroupPlan{gp.LongestVacation()}, nil
	case StrategyWeekends:
		return []*GroupPlan{gp.ExtendedWeekends()}, nil
	case StrategyQuarterly:
		return []*GroupPlan{gp.QuarterlyBalance()}, nil
	case StrategyAll:
		return gp.GenerateAllPlans(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// GenerateAllPlans runs all four strategies over the same classified
// calendars and returns their plans unmodified
func (gp *GroupPlanner) GenerateAllPlans() []*GroupPlan {
	return []*GroupPlan{
		gp.BridgeOptimizer(),
		gp.LongestVacation(),
		gp.ExtendedWeekends(),
		gp.QuarterlyBalance(),
	}
}

// groupAllocation tracks the joint off mask, each group's spending and
// each group's remaining combined budget for one strategy run. The
// embedded allocation provides the mask mechanics; its own ledgers stay
// empty because spending is accounted per group.
type groupAllocation struct {
	*allocation
	gp        *GroupPlanner
	spent     [][]int
	remaining []int
	exhausted []bool
}

func (gp *GroupPlanner) newAllocation() *groupAllocation {
	off := make([]bool, len(gp.jointOff))
	copy(off, gp.jointOff)

	ga := &groupAllocation{
		allocation: &allocation{cal: gp.cals[0], off: off},
		gp:         gp,
		spent:      make([][]int, len(gp.groups)),
		remaining:  make([]int, len(gp.groups)),
		exhausted:  make([]bool, len(gp.groups)),
	}
	for g, grp := range gp.groups {
		ga.remaining[g] = grp.PTOBudget + grp.FloatingHolidays
	}
	return ga
}

// costVector returns, per group, the number of days in the gap the group
// would have to cover from its own budget
func (ga *groupAllocation) costVector(g calendar.Gap) []int {
	cost := make([]int, len(ga.gp.groups))
	for d := g.Start; d <= g.End; d++ {
		for i, cal := range ga.gp.cals {
			if cal.Days[d].IsWorkday() {
				cost[i]++
			}
		}
	}
	return cost
}

// feasible reports whether every group can afford its share. A group is
// flagged budget-limited only when it blocks a placement some other
// group could still afford; a gap out of everyone's reach flags nobody.
func (ga *groupAllocation) feasible(cost []int) bool {
	anyBlocked, anyAffordable := false, false
	for g, c := range cost {
		if c > ga.remaining[g] {
			anyBlocked = true
		} else {
			anyAffordable = true
		}
	}
	if anyBlocked && anyAffordable {
		for g, c := range cost {
			if c > ga.remaining[g] {
				ga.exhausted[g] = true
			}
		}
	}
	return !anyBlocked
}

func totalCost(cost []int) int {
	total := 0
	for _, c := range cost {
		total += c
	}
	return total
}

// closeJointGap spends each contributing group's share and frees the days
func (ga *groupAllocation) closeJointGap(g calendar.Gap) {
	for d := g.Start; d <= g.End; d++ {
		ga.spendDay(d)
	}
}

func (ga *groupAllocation) spendDay(d int) {
	ga.off[d] = true
	for i, cal := range ga.gp.cals {
		if cal.Days[d].IsWorkday() {
			ga.spent[i] = append(ga.spent[i], d)
			ga.remaining[i]--
		}
	}
}

// dayCost returns the unit cost vector for converting one day
func (ga *groupAllocation) dayCost(d int) []int {
	cost := make([]int, len(ga.gp.groups))
	for i, cal := range ga.gp.cals {
		if cal.Days[d].IsWorkday() {
			cost[i] = 1
		}
	}
	return cost
}

// bestFeasibleExtension picks the next affordable working day to
// convert: islands ordered by length descending (tie: earliest), each
// island's boundaries nearer side first. A boundary one group cannot
// pay for does not stop the scan; the remaining candidates are still
// tried, so a day costing only the groups with budget left is found
// wherever it sits.
func (ga *groupAllocation) bestFeasibleExtension(lo, hi int) int {
	return ga.feasibleExtension(lo, hi, false)
}

// shortFeasibleExtension is the extended-weekends variant: shortest
// below-target island first, so spending keeps spreading out
func (ga *groupAllocation) shortFeasibleExtension(lo, hi int) int {
	return ga.feasibleExtension(lo, hi, true)
}

func (ga *groupAllocation) feasibleExtension(lo, hi int, shortest bool) int {
	seq := ga.segments()

	order := make([]int, 0, len(seq.Islands))
	for idx, isl := range seq.Islands {
		if isl.End < lo || isl.Start > hi {
			continue
		}
		if shortest && isl.Length() >= largeBlockLen {
			continue
		}
		order = append(order, idx)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := seq.Islands[order[i]], seq.Islands[order[j]]
		if a.Length() != b.Length() {
			if shortest {
				return a.Length() < b.Length()
			}
			return a.Length() > b.Length()
		}
		return a.Start < b.Start
	})

	for _, idx := range order {
		for _, day := range ga.boundaryDays(seq.Islands[idx], lo, hi) {
			if ga.feasible(ga.dayCost(day)) {
				return day
			}
		}
	}
	return -1
}

// buildPlan assembles the joint plan: shared blocks with their
// composition plus each group's own allocation. A block day spent by any
// group counts as PTO; a day that is a holiday for every group counts as
// a shared holiday; the rest are weekend days.
func (ga *groupAllocation) buildPlan(name, description string) *GroupPlan {
	spentAny := make([]bool, len(ga.off))
	for _, days := range ga.spent {
		for _, d := range days {
			spentAny[d] = true
		}
	}

	var blocks []Block
	for _, isl := range ga.segments().Islands {
		b := Block{
			StartDate: ga.cal.Date(isl.Start),
			EndDate:   ga.cal.Date(isl.End),
			TotalDays: isl.Length(),
		}
		for d := isl.Start; d <= isl.End; d++ {
			switch {
			case spentAny[d]:
				b.PTODays++
			case ga.sharedHoliday(d):
				b.Holidays++
			default:
				b.WeekendDays++
			}
		}
		blocks = append(blocks, b)
	}

	allocations := make([]GroupAllocation, len(ga.gp.groups))
	for g, grp := range ga.gp.groups {
		days := ga.spent[g]
		sort.Ints(days)

		// PTO budget is drawn first; the overflow is floating
		split := len(days)
		if split > grp.PTOBudget {
			split = grp.PTOBudget
		}
		allocations[g] = GroupAllocation{
			GroupName:       grp.Name,
			PTODates:        ga.dates(days[:split]),
			FloatingDates:   ga.dates(days[split:]),
			BudgetExhausted: ga.exhausted[g],
		}
	}

	return &GroupPlan{
		Name:        name,
		Description: description,
		Blocks:      blocks,
		Allocations: allocations,
	}
}

// sharedHoliday reports whether the day is a holiday for every group
func (ga *groupAllocation) sharedHoliday(d int) bool {
	for _, cal := range ga.gp.cals {
		if !cal.Days[d].IsHoliday {
			return false
		}
	}
	return true
}
