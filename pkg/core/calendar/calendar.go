package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Supported year range for classification
const (
	MinYear = 1900
	MaxYear = 2100
)

var (
	// ErrInvalidYear is returned when the target year is outside the supported range
	ErrInvalidYear = errors.New("year outside supported range")

	// ErrInvalidHoliday is returned when a supplied holiday date falls outside the target year
	ErrInvalidHoliday = errors.New("holiday date outside target year")
)

// Holiday is a named holiday date, as supplied by a preset or user input
type Holiday struct {
	Date time.Time
	Name string
}

// Day is one classified calendar day. Immutable once the classifier runs.
type Day struct {
	Date        time.Time
	IsWeekend   bool
	IsHoliday   bool
	HolidayName string
}

// IsWorkday reports whether the day is neither a weekend nor a holiday
func (d Day) IsWorkday() bool {
	return !d.IsWeekend && !d.IsHoliday
}

// Year holds the classified day table for one calendar year.
// Days[0] is January 1st, Days[len-1] is December 31st.
type Year struct {
	Year int
	Days []Day
}

// Classify builds the per-day type table for a year from a holiday set.
// Holiday dates are deduplicated (first name wins). A holiday falling on a
// weekend is recorded for attribution but frees no extra budget.
func Classify(year int, holidays []Holiday) (*Year, error) {
	if year < MinYear || year > MaxYear {
		return nil, fmt.Errorf("%w: %d (supported %d-%d)", ErrInvalidYear, year, MinYear, MaxYear)
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	numDays := end.YearDay()

	days := make([]Day, numDays)
	for i := range days {
		date := start.AddDate(0, 0, i)
		wd := date.Weekday()
		days[i] = Day{
			Date:      date,
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
		}
	}

	for _, h := range holidays {
		if h.Date.Year() != year {
			return nil, fmt.Errorf("%w: %s is not in %d", ErrInvalidHoliday, h.Date.Format("2006-01-02"), year)
		}
		idx := h.Date.YearDay() - 1
		if days[idx].IsHoliday {
			continue
		}
		days[idx].IsHoliday = true
		days[idx].HolidayName = h.Name
	}

	return &Year{Year: year, Days: days}, nil
}

// NumDays returns the number of days in the year (365 or 366)
func (y *Year) NumDays() int {
	return len(y.Days)
}

// Date returns the calendar date at day index i
func (y *Year) Date(i int) time.Time {
	return y.Days[i].Date
}

// Index returns the day index for a date, or -1 if the date is outside the year
func (y *Year) Index(t time.Time) int {
	if t.Year() != y.Year {
		return -1
	}
	return t.YearDay() - 1
}

// NaturalOff returns a fresh off-day mask: true where the day is off work
// without spending any budget (weekend or holiday)
func (y *Year) NaturalOff() []bool {
	off := make([]bool, len(y.Days))
	for i, d := range y.Days {
		off[i] = d.IsWeekend || d.IsHoliday
	}
	return off
}
