package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The only bridgeable short gaps in 2025 are Fri Dec 26 and Jan 2-3; the
// remaining budget tops up plain weekends one day at a time, earliest
// first, at the boundary tie-broken to the left.
func TestExtendedWeekends_SpreadsAcrossYear(t *testing.T) {
	p, err := New(2025, 6, holidays2025(), 0)
	require.NoError(t, err)

	plan := p.ExtendedWeekends()

	require.Len(t, plan.PTODates, 6)
	expected := []time.Time{
		date(2025, time.January, 2),
		date(2025, time.January, 3),
		date(2025, time.January, 10),
		date(2025, time.January, 17),
		date(2025, time.January, 24),
		date(2025, time.December, 26),
	}
	assert.Equal(t, expected, plan.PTODates)

	count := 0
	for _, b := range plan.Blocks {
		if b.TotalDays >= 3 {
			count++
		}
	}
	assert.Equal(t, 6, count)
}

func TestExtendedWeekends_NeverBuildsOneLongBlock(t *testing.T) {
	p, err := New(2025, 15, holidays2025(), 0)
	require.NoError(t, err)

	plan := p.ExtendedWeekends()

	// Fifteen days spent on short gaps and weekend top-ups must not fuse
	// into a single mega-vacation
	assert.Equal(t, 15, plan.TotalPTOUsed())
	assert.LessOrEqual(t, plan.LongestBlock().TotalDays, 7)

	count := 0
	for _, b := range plan.Blocks {
		if b.TotalDays >= 3 && b.TotalDays <= 5 {
			count++
		}
	}
	assert.GreaterOrEqual(t, count, 8)
}

func TestExtendedWeekends_ShortBudget(t *testing.T) {
	p, err := New(2025, 1, holidays2025(), 0)
	require.NoError(t, err)

	plan := p.ExtendedWeekends()

	// The single cheapest bridge: Fri Dec 26 turning Christmas plus the
	// weekend into four days
	require.Len(t, plan.PTODates, 1)
	assert.Equal(t, date(2025, time.December, 26), plan.PTODates[0])
}

func TestExtendedWeekends_FloatingTopsUpShortBlocks(t *testing.T) {
	p, err := New(2025, 0, holidays2025(), 2)
	require.NoError(t, err)

	plan := p.ExtendedWeekends()
	assert.Empty(t, plan.PTODates)
	assert.Len(t, plan.FloatingDates, 2)
}
