// Package render turns planner output into the formats the CLI and HTTP
// layers present: text summaries, month calendars and the JSON schema.
package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jakechorley/pto-planner/pkg/core/planner"
)

const dateFormat = "2006-01-02"

// BlockJSON is the wire form of one vacation block
type BlockJSON struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	TotalDays   int    `json:"total_days"`
	PTODays     int    `json:"pto_days"`
	Holidays    int    `json:"holidays"`
	WeekendDays int    `json:"weekend_days"`
}

// SummaryJSON aggregates one plan
type SummaryJSON struct {
	TotalVacationDays int `json:"total_vacation_days"`
	TotalPTOUsed      int `json:"total_pto_used"`
}

// PlanJSON is the wire form of a single-budget plan
type PlanJSON struct {
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	PTODates      []string    `json:"pto_dates"`
	FloatingDates []string    `json:"floating_dates"`
	Blocks        []BlockJSON `json:"blocks"`
	Summary       SummaryJSON `json:"summary"`
}

// OutputJSON is the top-level document for single-budget runs
type OutputJSON struct {
	Year             int        `json:"year"`
	PTOBudget        int        `json:"pto_budget"`
	FloatingHolidays int        `json:"floating_holidays"`
	Plans            []PlanJSON `json:"plans"`
}

// GroupAllocationJSON is the wire form of one group's spending
type GroupAllocationJSON struct {
	GroupName       string   `json:"group_name"`
	PTODates        []string `json:"pto_dates"`
	FloatingDates   []string `json:"floating_dates"`
	TotalUsed       int      `json:"total_used"`
	BudgetExhausted bool     `json:"budget_exhausted"`
}

// GroupSummaryJSON aggregates one joint plan
type GroupSummaryJSON struct {
	TotalSharedVacationDays int `json:"total_shared_vacation_days"`
	TotalPTOAcrossGroups    int `json:"total_pto_across_groups"`
}

// GroupPlanJSON is the wire form of a joint plan
type GroupPlanJSON struct {
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	Blocks           []BlockJSON           `json:"blocks"`
	GroupAllocations []GroupAllocationJSON `json:"group_allocations"`
	Summary          GroupSummaryJSON      `json:"summary"`
}

// GroupInfoJSON describes one group's inputs in the document header
type GroupInfoJSON struct {
	Name             string `json:"name"`
	PTOBudget        int    `json:"pto_budget"`
	FloatingHolidays int    `json:"floating_holidays"`
	HolidayCount     int    `json:"holiday_count"`
}

// GroupOutputJSON is the top-level document for multi-group runs
type GroupOutputJSON struct {
	Year   int             `json:"year"`
	Groups []GroupInfoJSON `json:"groups"`
	Plans  []GroupPlanJSON `json:"plans"`
}

// NewPlanJSON converts a plan into its wire form
func NewPlanJSON(p *planner.Plan) PlanJSON {
	return PlanJSON{
		Name:          p.Name,
		Description:   p.Description,
		PTODates:      isoDates(p.PTODates),
		FloatingDates: isoDates(p.FloatingDates),
		Blocks:        newBlocksJSON(p.Blocks),
		Summary: SummaryJSON{
			TotalVacationDays: p.TotalVacationDays(),
			TotalPTOUsed:      p.TotalPTOUsed(),
		},
	}
}

// NewOutputJSON builds the single-budget document
func NewOutputJSON(year, ptoBudget, floating int, plans []*planner.Plan) OutputJSON {
	out := OutputJSON{
		Year:             year,
		PTOBudget:        ptoBudget,
		FloatingHolidays: floating,
		Plans:            make([]PlanJSON, 0, len(plans)),
	}
	for _, p := range plans {
		out.Plans = append(out.Plans, NewPlanJSON(p))
	}
	return out
}

// NewGroupPlanJSON converts a joint plan into its wire form
func NewGroupPlanJSON(p *planner.GroupPlan) GroupPlanJSON {
	allocs := make([]GroupAllocationJSON, 0, len(p.Allocations))
	for _, a := range p.Allocations {
		allocs = append(allocs, GroupAllocationJSON{
			GroupName:       a.GroupName,
			PTODates:        isoDates(a.PTODates),
			FloatingDates:   isoDates(a.FloatingDates),
			TotalUsed:       len(a.PTODates) + len(a.FloatingDates),
			BudgetExhausted: a.BudgetExhausted,
		})
	}
	return GroupPlanJSON{
		Name:             p.Name,
		Description:      p.Description,
		Blocks:           newBlocksJSON(p.Blocks),
		GroupAllocations: allocs,
		Summary: GroupSummaryJSON{
			TotalSharedVacationDays: p.TotalVacationDays(),
			TotalPTOAcrossGroups:    p.TotalPTOUsed(),
		},
	}
}

// NewGroupOutputJSON builds the multi-group document
func NewGroupOutputJSON(year int, groups []planner.HolidayGroup, plans []*planner.GroupPlan) GroupOutputJSON {
	out := GroupOutputJSON{
		Year:   year,
		Groups: make([]GroupInfoJSON, 0, len(groups)),
		Plans:  make([]GroupPlanJSON, 0, len(plans)),
	}
	for _, g := range groups {
		out.Groups = append(out.Groups, GroupInfoJSON{
			Name:             g.Name,
			PTOBudget:        g.PTOBudget,
			FloatingHolidays: g.FloatingHolidays,
			HolidayCount:     len(g.Holidays),
		})
	}
	for _, p := range plans {
		out.Plans = append(out.Plans, NewGroupPlanJSON(p))
	}
	return out
}

// EncodeJSON writes v as indented JSON
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newBlocksJSON(blocks []planner.Block) []BlockJSON {
	out := make([]BlockJSON, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, BlockJSON{
			StartDate:   b.StartDate.Format(dateFormat),
			EndDate:     b.EndDate.Format(dateFormat),
			TotalDays:   b.TotalDays,
			PTODays:     b.PTODays,
			Holidays:    b.Holidays,
			WeekendDays: b.WeekendDays,
		})
	}
	return out
}

func isoDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(dateFormat))
	}
	return out
}
