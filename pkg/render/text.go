package render

import (
	"fmt"
	"strings"

	"github.com/jakechorley/pto-planner/pkg/core/calendar"
	"github.com/jakechorley/pto-planner/pkg/core/planner"
)

const lineWidth = 64

const (
	shortDate = "Mon, Jan 02"
	longDate  = "Monday, January 02, 2006"
)

// FormatHeader renders the banner above a single-budget run
func FormatHeader(year, ptoBudget, floating int, holidays []calendar.Holiday) string {
	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "  PTO VACATION OPTIMIZER")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "  Year:              %d\n", year)
	fmt.Fprintf(&b, "  PTO budget:        %d days\n", ptoBudget)
	fmt.Fprintf(&b, "  Floating holidays: %d\n", floating)
	fmt.Fprintf(&b, "  Company holidays:  %d\n", len(holidays))
	fmt.Fprintln(&b)
	for _, h := range holidays {
		fmt.Fprintf(&b, "    %12s  %s\n", h.Date.Format(shortDate), h.Name)
	}
	return b.String()
}

// FormatGroupHeader renders the banner above a multi-group run
func FormatGroupHeader(year int, groups []planner.HolidayGroup) string {
	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "  PTO VACATION OPTIMIZER (Multi-Group)")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "  Year: %d\n", year)
	fmt.Fprintf(&b, "  Groups: %d\n", len(groups))
	fmt.Fprintln(&b)
	for _, g := range groups {
		fmt.Fprintf(&b, "    %s: %s, %d holidays\n", g.Name, budgetLabel(g.PTOBudget, g.FloatingHolidays, " PTO"), len(g.Holidays))
	}
	return b.String()
}

// FormatFooter closes out a run of either kind
func FormatFooter(planCount int) string {
	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "  Generated %d vacation plan %s.\n", planCount, plural(planCount, "option", "options"))
	fmt.Fprintln(&b, rule)
	return b.String()
}

// FormatPlan renders one plan as a human-readable summary
func FormatPlan(p *planner.Plan, ptoBudget, floating int) string {
	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "  OPTION: %s\n", p.Name)
	fmt.Fprintf(&b, "  %s\n", p.Description)
	fmt.Fprintln(&b, rule)

	totalVacation := p.TotalVacationDays()
	totalPTO := p.TotalPTOUsed()

	fmt.Fprintf(&b, "  PTO days used: %d / %s\n", totalPTO, budgetLabel(ptoBudget, floating, ""))
	fmt.Fprintf(&b, "  Total vacation days: %d\n", totalVacation)
	if totalPTO > 0 {
		fmt.Fprintf(&b, "  Efficiency: %.1fx (vacation days per PTO day)\n", float64(totalVacation)/float64(totalPTO))
	}
	fmt.Fprintln(&b)

	writeBlocks(&b, p.Blocks, "holiday", "holidays")

	fmt.Fprintln(&b, "  Days to request off:")
	for _, d := range p.PTODates {
		fmt.Fprintf(&b, "    -> %s\n", d.Format(longDate))
	}
	if len(p.FloatingDates) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "  Floating holiday(s):")
		for _, d := range p.FloatingDates {
			fmt.Fprintf(&b, "    -> %s\n", d.Format(longDate))
		}
	}

	return b.String()
}

// FormatGroupPlan renders one joint plan as a human-readable summary
func FormatGroupPlan(p *planner.GroupPlan, groups []planner.HolidayGroup) string {
	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "  OPTION: %s\n", p.Name)
	fmt.Fprintf(&b, "  %s\n", p.Description)
	fmt.Fprintln(&b, rule)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "  Groups:")
	for gi, g := range groups {
		alloc := p.Allocations[gi]
		used := len(alloc.PTODates) + len(alloc.FloatingDates)
		fmt.Fprintf(&b, "    %s: %d / %s PTO used\n", g.Name, used, budgetLabel(g.PTOBudget, g.FloatingHolidays, ""))
	}

	totalVacation := p.TotalVacationDays()
	totalPTO := p.TotalPTOUsed()
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "  Total shared vacation days: %d\n", totalVacation)
	fmt.Fprintf(&b, "  Total PTO spent (all groups): %d\n", totalPTO)
	if totalPTO > 0 {
		fmt.Fprintf(&b, "  Efficiency: %.1fx (shared vacation-days per PTO day)\n",
			float64(totalVacation*len(groups))/float64(totalPTO))
	}
	fmt.Fprintln(&b)

	writeBlocks(&b, p.Blocks, "shared holiday", "shared holidays")

	for gi, alloc := range p.Allocations {
		fmt.Fprintf(&b, "  Days to request off - %s:\n", groups[gi].Name)
		for _, d := range alloc.PTODates {
			fmt.Fprintf(&b, "    -> %s\n", d.Format(longDate))
		}
		if len(alloc.FloatingDates) > 0 {
			fmt.Fprintln(&b, "    Floating holiday(s):")
			for _, d := range alloc.FloatingDates {
				fmt.Fprintf(&b, "      -> %s\n", d.Format(longDate))
			}
		}
		if len(alloc.PTODates) == 0 && len(alloc.FloatingDates) == 0 {
			fmt.Fprintln(&b, "    (no PTO needed)")
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

func writeBlocks(b *strings.Builder, blocks []planner.Block, holidayWord, holidaysWord string) {
	fmt.Fprintln(b, "  Vacation Blocks:")
	fmt.Fprintln(b, "  "+strings.Repeat("-", lineWidth-4))

	for i, blk := range blocks {
		var dr string
		if blk.StartDate.Equal(blk.EndDate) {
			dr = blk.StartDate.Format(shortDate)
		} else {
			dr = fmt.Sprintf("%s -> %s", blk.StartDate.Format(shortDate), blk.EndDate.Format(shortDate))
		}
		fmt.Fprintf(b, "  %2d. %s  (%d %s)\n", i+1, dr, blk.TotalDays, plural(blk.TotalDays, "day", "days"))

		var parts []string
		if blk.PTODays > 0 {
			parts = append(parts, fmt.Sprintf("%d PTO", blk.PTODays))
		}
		if blk.Holidays > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", blk.Holidays, plural(blk.Holidays, holidayWord, holidaysWord)))
		}
		if blk.WeekendDays > 0 {
			parts = append(parts, fmt.Sprintf("%d weekend", blk.WeekendDays))
		}
		fmt.Fprintf(b, "      %s\n", strings.Join(parts, " + "))
		fmt.Fprintln(b)
	}
}

func budgetLabel(ptoBudget, floating int, suffix string) string {
	label := fmt.Sprintf("%d%s", ptoBudget, suffix)
	if floating > 0 {
		label += fmt.Sprintf(" + %d floating", floating)
	}
	return label
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
