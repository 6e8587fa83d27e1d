package planner

import (
	"fmt"
	"strings"

	"github.com/jakechorley/pto-planner/pkg/core/calendar"
)

// Strategy selects one of the allocation objectives
type Strategy string

const (
	StrategyBridges   Strategy = "bridges"
	StrategyLongest   Strategy = "longest"
	StrategyWeekends  Strategy = "weekends"
	StrategyQuarterly Strategy = "quarterly"
	StrategyAll       Strategy = "all"
)

// Strategies lists the recognized strategy keys, "all" included
func Strategies() []Strategy {
	return []Strategy{StrategyAll, StrategyBridges, StrategyLongest, StrategyWeekends, StrategyQuarterly}
}

// ParseStrategy validates a strategy key
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(s)) {
	case StrategyBridges, StrategyLongest, StrategyWeekends, StrategyQuarterly, StrategyAll:
		return Strategy(strings.ToLower(s)), nil
	}
	keys := make([]string, 0, len(Strategies()))
	for _, k := range Strategies() {
		keys = append(keys, string(k))
	}
	return "", fmt.Errorf("%w: %q (choose from: %s)", ErrUnknownStrategy, s, strings.Join(keys, ", "))
}

// Planner optimizes PTO placement for a single budget over one year.
//
// Weekends and holidays are already off. By spending PTO on the short
// working-day gaps between them, separate off-day islands merge into much
// longer contiguous vacations. Each strategy method reads only the
// immutable classified calendar and returns a freshly constructed Plan,
// so a Planner is safe for concurrent use.
type Planner struct {
	cal            *calendar.Year
	ptoBudget      int
	floatingBudget int
}

// New classifies the year and validates all inputs eagerly. Errors:
// calendar.ErrInvalidYear, calendar.ErrInvalidHoliday, ErrNegativeBudget.
func New(year, ptoBudget int, holidays []calendar.Holiday, floatingBudget int) (*Planner, error) {
	if ptoBudget < 0 {
		return nil, fmt.Errorf("%w: pto budget %d", ErrNegativeBudget, ptoBudget)
	}
	if floatingBudget < 0 {
		return nil, fmt.Errorf("%w: floating budget %d", ErrNegativeBudget, floatingBudget)
	}

	cal, err := calendar.Classify(year, holidays)
	if err != nil {
		return nil, err
	}

	return &Planner{
		cal:            cal,
		ptoBudget:      ptoBudget,
		floatingBudget: floatingBudget,
	}, nil
}

// Calendar returns the classified day table the planner reasons over
func (p *Planner) Calendar() *calendar.Year {
	return p.cal
}

// PTOBudget returns the PTO budget supplied at construction
func (p *Planner) PTOBudget() int {
	return p.ptoBudget
}

// FloatingBudget returns the floating-holiday budget supplied at construction
func (p *Planner) FloatingBudget() int {
	return p.floatingBudget
}

// Run executes one strategy, or all four for StrategyAll
func (p *Planner) Run(s Strategy) ([]*Plan, error) {
	switch s {
	case StrategyBridges:
		return []*Plan{p.BridgeOptimizer()}, nil
	case StrategyLongest:
		return []*Plan{p.LongestVacation()}, nil
	case StrategyWeekends:
		return []*Plan{p.ExtendedWeekends()}, nil
	case StrategyQuarterly:
		return []*Plan{p.QuarterlyBalance()}, nil
	case StrategyAll:
		return p.GenerateAllPlans(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// GenerateAllPlans runs all four strategies against the same classified
// calendar and returns their plans unmodified. Strategies share no state.
func (p *Planner) GenerateAllPlans() []*Plan {
	return []*Plan{
		p.BridgeOptimizer(),
		p.LongestVacation(),
		p.ExtendedWeekends(),
		p.QuarterlyBalance(),
	}
}
