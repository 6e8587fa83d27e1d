package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/pto-planner/pkg/core/planner"
)

// CalendarView renders a month-by-month grid for the given year, marking
// PTO days with P, floating holidays with F and company holidays with H.
// Only months containing at least one marked day are shown.
func CalendarView(year int, pto, floating, holidays []time.Time) string {
	ptoSet := dateSet(pto)
	floatingSet := dateSet(floating)
	holidaySet := dateSet(holidays)

	activeMonths := map[time.Month]bool{}
	for _, set := range []map[string]bool{ptoSet, floatingSet, holidaySet} {
		for key := range set {
			if d, err := time.Parse(dateFormat, key); err == nil && d.Year() == year {
				activeMonths[d.Month()] = true
			}
		}
	}
	if len(activeMonths) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "  Calendar View %d\n", year)
	fmt.Fprintln(&b, "  Legend: P=PTO  F=Floating  H=Holiday")
	fmt.Fprintln(&b)

	for month := time.January; month <= time.December; month++ {
		if !activeMonths[month] {
			continue
		}
		writeMonth(&b, year, month, ptoSet, floatingSet, holidaySet)
	}

	return b.String()
}

// PlanCalendarView renders the calendar for a single-budget plan
func PlanCalendarView(p *planner.Plan, year int, holidays []time.Time) string {
	return CalendarView(year, p.PTODates, p.FloatingDates, holidays)
}

// GroupCalendarView renders the calendar for a joint plan, with markers
// unioned across all groups
func GroupCalendarView(p *planner.GroupPlan, year int, groupHolidays [][]time.Time) string {
	var pto, floating, holidays []time.Time
	for _, a := range p.Allocations {
		pto = append(pto, a.PTODates...)
		floating = append(floating, a.FloatingDates...)
	}
	for _, hs := range groupHolidays {
		holidays = append(holidays, hs...)
	}
	return CalendarView(year, pto, floating, holidays)
}

// writeMonth emits one Monday-first month grid
func writeMonth(b *strings.Builder, year int, month time.Month, ptoSet, floatingSet, holidaySet map[string]bool) {
	fmt.Fprintf(b, "  %s %d\n", month.String(), year)
	fmt.Fprintln(b, "  Mo  Tu  We  Th  Fr  Sa  Su")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) + 6) % 7

	var row strings.Builder
	row.WriteString(strings.Repeat("    ", lead))
	col := lead

	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		key := d.Format(dateFormat)
		switch {
		case ptoSet[key]:
			fmt.Fprintf(&row, " %2dP", d.Day())
		case floatingSet[key]:
			fmt.Fprintf(&row, " %2dF", d.Day())
		case holidaySet[key]:
			fmt.Fprintf(&row, " %2dH", d.Day())
		default:
			fmt.Fprintf(&row, "  %2d", d.Day())
		}

		col++
		if col == 7 {
			fmt.Fprintln(b, row.String())
			row.Reset()
			col = 0
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(b, row.String())
	}
	fmt.Fprintln(b)
}

func dateSet(dates []time.Time) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d.Format(dateFormat)] = true
	}
	return set
}
