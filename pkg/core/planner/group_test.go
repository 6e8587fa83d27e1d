package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/pto-planner/pkg/core/calendar"
)

func TestNewGroupPlanner_RequiresGroups(t *testing.T) {
	_, err := NewGroupPlanner(2025, nil)
	assert.ErrorIs(t, err, ErrEmptyGroupSet)
}

func TestNewGroupPlanner_ValidatesPerGroup(t *testing.T) {
	_, err := NewGroupPlanner(2025, []HolidayGroup{
		{Name: "alice", PTOBudget: -1},
	})
	assert.ErrorIs(t, err, ErrNegativeBudget)
	assert.Contains(t, err.Error(), "alice")

	_, err = NewGroupPlanner(2025, []HolidayGroup{
		{Name: "bob", PTOBudget: 5, Holidays: []calendar.Holiday{
			{Date: date(2024, time.May, 1), Name: "Wrong year"},
		}},
	})
	assert.ErrorIs(t, err, calendar.ErrInvalidHoliday)
	assert.Contains(t, err.Error(), "bob")
}

// Thanksgiving scenario: both groups share Thu Nov 27, only alice also
// has Fri Nov 28 off. Bob bridges the Friday from his own budget and the
// four-day block Nov 27-30 becomes shared time off.
func TestGroupBridgeOptimizer_BridgesAsymmetricHoliday(t *testing.T) {
	gp, err := NewGroupPlanner(2025, []HolidayGroup{
		{
			Name: "alice",
			Holidays: []calendar.Holiday{
				{Date: date(2025, time.November, 27), Name: "Thanksgiving"},
				{Date: date(2025, time.November, 28), Name: "Day After Thanksgiving"},
			},
			PTOBudget: 0,
		},
		{
			Name: "bob",
			Holidays: []calendar.Holiday{
				{Date: date(2025, time.November, 27), Name: "Thanksgiving"},
			},
			PTOBudget: 1,
		},
	})
	require.NoError(t, err)

	plan := gp.BridgeOptimizer()

	require.Len(t, plan.Allocations, 2)
	assert.Empty(t, plan.Allocations[0].PTODates)
	assert.Equal(t, []time.Time{date(2025, time.November, 28)}, plan.Allocations[1].PTODates)

	var block *Block
	for i := range plan.Blocks {
		if plan.Blocks[i].StartDate.Equal(date(2025, time.November, 27)) {
			block = &plan.Blocks[i]
		}
	}
	require.NotNil(t, block)
	assert.Equal(t, date(2025, time.November, 30), block.EndDate)
	assert.Equal(t, 4, block.TotalDays)
	assert.Equal(t, 1, block.PTODays)
	assert.Equal(t, 1, block.Holidays)
	assert.Equal(t, 2, block.WeekendDays)
}

// Only alice has Fri Nov 28 off. Every joint gap is out of reach, so the
// single shared block must come from bob spending his one day on the
// Friday alice already has: a boundary nobody else needs to pay for.
func TestGroupBridgeOptimizer_SpendsLoneAffordableDay(t *testing.T) {
	gp, err := NewGroupPlanner(2025, []HolidayGroup{
		{
			Name: "alice",
			Holidays: []calendar.Holiday{
				{Date: date(2025, time.November, 28), Name: "Day After Thanksgiving"},
			},
			PTOBudget: 0,
		},
		{Name: "bob", PTOBudget: 1},
	})
	require.NoError(t, err)

	plan := gp.BridgeOptimizer()

	require.Len(t, plan.Allocations, 2)
	assert.Empty(t, plan.Allocations[0].PTODates)
	assert.Equal(t, []time.Time{date(2025, time.November, 28)}, plan.Allocations[1].PTODates)

	var block *Block
	for i := range plan.Blocks {
		if plan.Blocks[i].StartDate.Equal(date(2025, time.November, 28)) {
			block = &plan.Blocks[i]
		}
	}
	require.NotNil(t, block)
	assert.Equal(t, date(2025, time.November, 30), block.EndDate)
	assert.Equal(t, 3, block.TotalDays)
	assert.Equal(t, 1, block.PTODays)
	assert.Equal(t, 2, block.WeekendDays)

	// Alice blocked days bob could afford; bob never held anyone up
	assert.True(t, plan.Allocations[0].BudgetExhausted)
	assert.False(t, plan.Allocations[1].BudgetExhausted)
}

func TestGroupPlanner_SharedDaysCostNothing(t *testing.T) {
	shared := []calendar.Holiday{
		{Date: date(2025, time.December, 25), Name: "Christmas Day"},
	}
	gp, err := NewGroupPlanner(2025, []HolidayGroup{
		{Name: "alice", Holidays: shared, PTOBudget: 1},
		{Name: "bob", Holidays: shared, PTOBudget: 1},
	})
	require.NoError(t, err)

	plan := gp.BridgeOptimizer()

	// Both bridge Fri Dec 26, each paying one day
	assert.Equal(t, []time.Time{date(2025, time.December, 26)}, plan.Allocations[0].PTODates)
	assert.Equal(t, []time.Time{date(2025, time.December, 26)}, plan.Allocations[1].PTODates)
	assert.Equal(t, 2, plan.TotalPTOUsed())
}

func TestGroupPlanner_PTODrawnBeforeFloating(t *testing.T) {
	gp, err := NewGroupPlanner(2025, []HolidayGroup{
		{
			Name: "solo",
			Holidays: []calendar.Holiday{
				{Date: date(2025, time.January, 1), Name: "New Year's Day"},
			},
			PTOBudget:        1,
			FloatingHolidays: 1,
		},
	})
	require.NoError(t, err)

	plan := gp.BridgeOptimizer()

	alloc := plan.Allocations[0]
	assert.Equal(t, []time.Time{date(2025, time.January, 2)}, alloc.PTODates)
	assert.Equal(t, []time.Time{date(2025, time.January, 3)}, alloc.FloatingDates)

	// A lone group never holds a partner up, so the flag stays clear
	assert.False(t, alloc.BudgetExhausted)
}

func TestGroupPlanner_ExhaustedOnlyWhenBinding(t *testing.T) {
	// Plain weekday gaps are out of everyone's reach; that flags nobody
	gp, err := NewGroupPlanner(2025, []HolidayGroup{
		{Name: "alice", PTOBudget: 0},
		{Name: "bob", PTOBudget: 0},
	})
	require.NoError(t, err)

	plan := gp.BridgeOptimizer()
	assert.False(t, plan.Allocations[0].BudgetExhausted)
	assert.False(t, plan.Allocations[1].BudgetExhausted)

	// With alice able to pay her share of gaps bob blocks, bob alone is
	// the binding constraint
	gp, err = NewGroupPlanner(2025, []HolidayGroup{
		{Name: "alice", PTOBudget: 5},
		{Name: "bob", PTOBudget: 0},
	})
	require.NoError(t, err)

	plan = gp.BridgeOptimizer()
	assert.False(t, plan.Allocations[0].BudgetExhausted)
	assert.True(t, plan.Allocations[1].BudgetExhausted)
}

func TestGroupPlanner_ZeroBudgets(t *testing.T) {
	gp, err := NewGroupPlanner(2025, []HolidayGroup{
		{Name: "alice", PTOBudget: 0},
		{Name: "bob", PTOBudget: 0},
	})
	require.NoError(t, err)

	for _, plan := range gp.GenerateAllPlans() {
		assert.Zero(t, plan.TotalPTOUsed(), plan.Name)
		// Shared weekends survive as blocks even with nothing to spend
		assert.Equal(t, 104, plan.TotalVacationDays(), plan.Name)
	}
}

func TestGroupPlanner_BlockCompositionAddsUp(t *testing.T) {
	gp, err := NewGroupPlanner(2025, []HolidayGroup{
		{Name: "alice", Holidays: holidays2025(), PTOBudget: 6},
		{
			Name: "bob",
			Holidays: []calendar.Holiday{
				{Date: date(2025, time.December, 25), Name: "Christmas Day"},
			},
			PTOBudget: 4,
		},
	})
	require.NoError(t, err)

	for _, plan := range gp.GenerateAllPlans() {
		for _, b := range plan.Blocks {
			assert.Equal(t, b.TotalDays, b.PTODays+b.Holidays+b.WeekendDays, plan.Name)
		}
		assert.LessOrEqual(t, len(plan.Allocations[0].PTODates), 6, plan.Name)
		assert.LessOrEqual(t, len(plan.Allocations[1].PTODates), 4, plan.Name)

		// A group only ever spends its own working days
		for gi, alloc := range plan.Allocations {
			cal := gp.Calendars()[gi]
			for _, d := range append(alloc.PTODates, alloc.FloatingDates...) {
				idx := cal.Index(d)
				require.GreaterOrEqual(t, idx, 0, plan.Name)
				assert.True(t, cal.Days[idx].IsWorkday(), "%s: %s spent a non-workday", plan.Name, alloc.GroupName)
			}
		}
	}
}

func TestGroupPlanner_GenerateAllPlans(t *testing.T) {
	gp, err := NewGroupPlanner(2025, []HolidayGroup{
		{Name: "alice", Holidays: holidays2025(), PTOBudget: 5},
		{Name: "bob", Holidays: holidays2025(), PTOBudget: 5},
	})
	require.NoError(t, err)

	plans := gp.GenerateAllPlans()
	require.Len(t, plans, 4)
	assert.Equal(t, "Bridge Optimizer (Multi-Group)", plans[0].Name)
	assert.Equal(t, "Longest Shared Vacation", plans[1].Name)
	assert.Equal(t, "Extended Weekends (Multi-Group)", plans[2].Name)
	assert.Equal(t, "Quarterly Balance (Multi-Group)", plans[3].Name)
}

func TestGroupPlanner_InfeasibleGapSkipped(t *testing.T) {
	// Bob cannot afford the 2-day bridge, so it stays open even though
	// alice could pay her (zero) share
	gp, err := NewGroupPlanner(2025, []HolidayGroup{
		{
			Name: "alice",
			Holidays: []calendar.Holiday{
				{Date: date(2025, time.January, 1), Name: "New Year's Day"},
				{Date: date(2025, time.January, 2), Name: "Extra"},
				{Date: date(2025, time.January, 3), Name: "Extra"},
			},
			PTOBudget: 0,
		},
		{
			Name: "bob",
			Holidays: []calendar.Holiday{
				{Date: date(2025, time.January, 1), Name: "New Year's Day"},
			},
			PTOBudget: 1,
		},
	})
	require.NoError(t, err)

	plan := gp.BridgeOptimizer()

	assert.NotContains(t, plan.Allocations[1].PTODates, date(2025, time.January, 2))
	assert.True(t, plan.Allocations[1].BudgetExhausted)
}
