package holidays

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/pto-planner/pkg/core/calendar"
)

// ExpandRule evaluates an RFC 5545 recurrence rule within a single year
// and returns the matching dates as named holidays. Rules like
// "FREQ=YEARLY;BYMONTH=1;BYDAY=3MO" cover the nth-weekday holidays that
// fixed dates cannot express.
func ExpandRule(name, rule string, year int) ([]calendar.Holiday, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	r.DTStart(start)

	var out []calendar.Holiday
	for _, d := range r.Between(start, end, true) {
		out = append(out, calendar.Holiday{
			Date: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Name: name,
		})
	}
	return out, nil
}
