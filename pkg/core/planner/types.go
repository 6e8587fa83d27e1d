package planner

import (
	"time"

	"github.com/jakechorley/pto-planner/pkg/core/calendar"
)

// Block is a maximal contiguous run of off-work days in a finalized plan.
// TotalDays always equals PTODays + Holidays + WeekendDays; a holiday that
// falls on a weekend counts as a holiday.
type Block struct {
	StartDate   time.Time
	EndDate     time.Time
	TotalDays   int
	PTODays     int
	Holidays    int
	WeekendDays int
}

// Plan is one named allocation outcome: the chosen PTO and floating dates
// plus the resulting vacation blocks, ordered by start date. Plans are
// never mutated after construction.
type Plan struct {
	Name          string
	Description   string
	Blocks        []Block
	PTODates      []time.Time
	FloatingDates []time.Time
}

// TotalVacationDays returns the summed length of all blocks
func (p *Plan) TotalVacationDays() int {
	total := 0
	for _, b := range p.Blocks {
		total += b.TotalDays
	}
	return total
}

// TotalPTOUsed returns the number of budget days spent, floating included
func (p *Plan) TotalPTOUsed() int {
	return len(p.PTODates) + len(p.FloatingDates)
}

// LongestBlock returns the largest block of the plan, or a zero Block if
// the plan has none
func (p *Plan) LongestBlock() Block {
	var best Block
	for _, b := range p.Blocks {
		if b.TotalDays > best.TotalDays {
			best = b
		}
	}
	return best
}

// HolidayGroup is one independently budgeted participant in a multi-group
// optimization: its own holiday calendar, PTO budget and floating budget.
type HolidayGroup struct {
	Name             string
	Holidays         []calendar.Holiday
	PTOBudget        int
	FloatingHolidays int
}

// GroupAllocation lists the dates one group drew from its own budget to
// realize the shared blocks of a joint plan. BudgetExhausted is an
// informational flag set when the group's own budget limited the joint
// outcome; it is not an error.
type GroupAllocation struct {
	GroupName       string
	PTODates        []time.Time
	FloatingDates   []time.Time
	BudgetExhausted bool
}

// GroupPlan is a joint allocation outcome across multiple groups: blocks
// that are off-work for every group simultaneously, plus each group's own
// spending.
type GroupPlan struct {
	Name        string
	Description string
	Blocks      []Block
	Allocations []GroupAllocation
}

// TotalVacationDays returns the summed length of all shared blocks
func (p *GroupPlan) TotalVacationDays() int {
	total := 0
	for _, b := range p.Blocks {
		total += b.TotalDays
	}
	return total
}

// TotalPTOUsed returns the budget days spent across all groups
func (p *GroupPlan) TotalPTOUsed() int {
	total := 0
	for _, a := range p.Allocations {
		total += len(a.PTODates) + len(a.FloatingDates)
	}
	return total
}
