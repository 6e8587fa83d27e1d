package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify_RegularYear(t *testing.T) {
	year, err := Classify(2025, nil)
	require.NoError(t, err)

	assert.Equal(t, 2025, year.Year)
	assert.Equal(t, 365, year.NumDays())
	assert.Equal(t, date(2025, time.January, 1), year.Days[0].Date)
	assert.Equal(t, date(2025, time.December, 31), year.Days[364].Date)
}

func TestClassify_LeapYear(t *testing.T) {
	year, err := Classify(2024, nil)
	require.NoError(t, err)
	assert.Equal(t, 366, year.NumDays())
}

func TestClassify_WeekendCount(t *testing.T) {
	year, err := Classify(2025, nil)
	require.NoError(t, err)

	weekends := 0
	for _, d := range year.Days {
		if d.IsWeekend {
			weekends++
		}
	}
	assert.Equal(t, 104, weekends)
}

func TestClassify_MarksHolidays(t *testing.T) {
	year, err := Classify(2025, []Holiday{
		{Date: date(2025, time.July, 4), Name: "Independence Day"},
	})
	require.NoError(t, err)

	day := year.Days[year.Index(date(2025, time.July, 4))]
	assert.True(t, day.IsHoliday)
	assert.Equal(t, "Independence Day", day.HolidayName)
	assert.False(t, day.IsWeekend) // Jul 4 2025 is a Friday
	assert.False(t, day.IsWorkday())
}

func TestClassify_DuplicateHolidayKeepsFirstName(t *testing.T) {
	year, err := Classify(2025, []Holiday{
		{Date: date(2025, time.December, 25), Name: "Christmas Day"},
		{Date: date(2025, time.December, 25), Name: "Xmas"},
	})
	require.NoError(t, err)

	day := year.Days[year.Index(date(2025, time.December, 25))]
	assert.True(t, day.IsHoliday)
	assert.Equal(t, "Christmas Day", day.HolidayName)
}

func TestClassify_HolidayOnWeekend(t *testing.T) {
	// Jan 4 2025 is a Saturday
	year, err := Classify(2025, []Holiday{
		{Date: date(2025, time.January, 4), Name: "Observed"},
	})
	require.NoError(t, err)

	day := year.Days[3]
	assert.True(t, day.IsWeekend)
	assert.True(t, day.IsHoliday)
	assert.False(t, day.IsWorkday())
}

func TestClassify_YearOutOfRange(t *testing.T) {
	_, err := Classify(1899, nil)
	assert.ErrorIs(t, err, ErrInvalidYear)

	_, err = Classify(2101, nil)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestClassify_HolidayOutsideYear(t *testing.T) {
	_, err := Classify(2025, []Holiday{
		{Date: date(2024, time.December, 25), Name: "Christmas Day"},
	})
	assert.ErrorIs(t, err, ErrInvalidHoliday)
}

func TestYear_Index(t *testing.T) {
	year, err := Classify(2025, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, year.Index(date(2025, time.January, 1)))
	assert.Equal(t, 364, year.Index(date(2025, time.December, 31)))
	assert.Equal(t, -1, year.Index(date(2024, time.June, 1)))
}

func TestYear_NaturalOff(t *testing.T) {
	year, err := Classify(2025, []Holiday{
		{Date: date(2025, time.January, 1), Name: "New Year's Day"},
	})
	require.NoError(t, err)

	off := year.NaturalOff()
	assert.True(t, off[0])  // Wed Jan 1, holiday
	assert.False(t, off[1]) // Thu Jan 2
	assert.False(t, off[2]) // Fri Jan 3
	assert.True(t, off[3])  // Sat Jan 4
	assert.True(t, off[4])  // Sun Jan 5
}
