// Package services holds the application-level operations the CLI and HTTP
// server share: running the optimizer, resolving holiday inputs and saving
// results to the plan store.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/pto-planner/pkg/core/calendar"
	"github.com/jakechorley/pto-planner/pkg/core/planner"
	"github.com/jakechorley/pto-planner/pkg/db"
	"github.com/jakechorley/pto-planner/pkg/render"
)

// OptimizeRequest describes a single-budget optimization run
type OptimizeRequest struct {
	Year             int
	PTOBudget        int
	FloatingHolidays int
	Holidays         []calendar.Holiday
	Strategy         planner.Strategy
	Save             bool
}

// PlanWithStrategy pairs a generated plan with the strategy that produced it
type PlanWithStrategy struct {
	Strategy planner.Strategy
	Plan     *planner.Plan
}

// OptimizeResult is the outcome of a single-budget run
type OptimizeResult struct {
	Planner  *planner.Planner
	Plans    []PlanWithStrategy
	SavedIDs []string
}

// Optimize classifies the year, runs the requested strategy (or all four)
// and optionally persists each plan. store may be nil when Save is false.
func Optimize(ctx context.Context, store db.PlanStore, logger *zap.Logger, req OptimizeRequest) (*OptimizeResult, error) {
	strategy := req.Strategy
	if strategy == "" {
		strategy = planner.StrategyAll
	}

	logger.Debug("Starting optimization",
		zap.Int("year", req.Year),
		zap.Int("pto_budget", req.PTOBudget),
		zap.Int("floating_holidays", req.FloatingHolidays),
		zap.Int("holiday_count", len(req.Holidays)),
		zap.String("strategy", string(strategy)))

	p, err := planner.New(req.Year, req.PTOBudget, req.Holidays, req.FloatingHolidays)
	if err != nil {
		return nil, fmt.Errorf("failed to build planner: %w", err)
	}

	result := &OptimizeResult{Planner: p}
	for _, s := range expandStrategy(strategy) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plans, err := p.Run(s)
		if err != nil {
			return nil, err
		}
		for _, plan := range plans {
			result.Plans = append(result.Plans, PlanWithStrategy{Strategy: s, Plan: plan})
		}
	}

	logger.Info("Optimization complete",
		zap.Int("year", req.Year),
		zap.Int("plan_count", len(result.Plans)))

	if !req.Save {
		return result, nil
	}
	if store == nil {
		return nil, fmt.Errorf("cannot save plans: no plan store configured")
	}

	for _, ps := range result.Plans {
		payload, err := json.Marshal(render.NewPlanJSON(ps.Plan))
		if err != nil {
			return nil, fmt.Errorf("failed to serialize plan %q: %w", ps.Plan.Name, err)
		}

		rec := &db.PlanRecord{
			ID:             uuid.New().String(),
			Year:           req.Year,
			Strategy:       string(ps.Strategy),
			Name:           ps.Plan.Name,
			PTOBudget:      req.PTOBudget,
			FloatingBudget: req.FloatingHolidays,
			VacationDays:   ps.Plan.TotalVacationDays(),
			Payload:        string(payload),
		}
		if err := store.SavePlan(rec); err != nil {
			return nil, fmt.Errorf("failed to save plan %q: %w", ps.Plan.Name, err)
		}

		logger.Debug("Plan saved",
			zap.String("id", rec.ID),
			zap.String("strategy", rec.Strategy),
			zap.Int("vacation_days", rec.VacationDays))
		result.SavedIDs = append(result.SavedIDs, rec.ID)
	}

	return result, nil
}

// GroupOptimizeRequest describes a multi-group optimization run
type GroupOptimizeRequest struct {
	Year     int
	Groups   []planner.HolidayGroup
	Strategy planner.Strategy
	Save     bool
}

// GroupPlanWithStrategy pairs a joint plan with the strategy that produced it
type GroupPlanWithStrategy struct {
	Strategy planner.Strategy
	Plan     *planner.GroupPlan
}

// GroupOptimizeResult is the outcome of a multi-group run
type GroupOptimizeResult struct {
	Planner  *planner.GroupPlanner
	Plans    []GroupPlanWithStrategy
	SavedIDs []string
}

// OptimizeGroups runs the joint optimizer over all groups and optionally
// persists each plan. store may be nil when Save is false.
func OptimizeGroups(ctx context.Context, store db.PlanStore, logger *zap.Logger, req GroupOptimizeRequest) (*GroupOptimizeResult, error) {
	strategy := req.Strategy
	if strategy == "" {
		strategy = planner.StrategyAll
	}

	logger.Debug("Starting multi-group optimization",
		zap.Int("year", req.Year),
		zap.Int("group_count", len(req.Groups)),
		zap.String("strategy", string(strategy)))

	gp, err := planner.NewGroupPlanner(req.Year, req.Groups)
	if err != nil {
		return nil, fmt.Errorf("failed to build group planner: %w", err)
	}

	result := &GroupOptimizeResult{Planner: gp}
	for _, s := range expandStrategy(strategy) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plans, err := gp.Run(s)
		if err != nil {
			return nil, err
		}
		for _, plan := range plans {
			result.Plans = append(result.Plans, GroupPlanWithStrategy{Strategy: s, Plan: plan})
		}
	}

	logger.Info("Multi-group optimization complete",
		zap.Int("year", req.Year),
		zap.Int("group_count", len(req.Groups)),
		zap.Int("plan_count", len(result.Plans)))

	if !req.Save {
		return result, nil
	}
	if store == nil {
		return nil, fmt.Errorf("cannot save plans: no plan store configured")
	}

	totalBudget, totalFloating := 0, 0
	for _, g := range req.Groups {
		totalBudget += g.PTOBudget
		totalFloating += g.FloatingHolidays
	}

	for _, ps := range result.Plans {
		payload, err := json.Marshal(render.NewGroupPlanJSON(ps.Plan))
		if err != nil {
			return nil, fmt.Errorf("failed to serialize plan %q: %w", ps.Plan.Name, err)
		}

		rec := &db.PlanRecord{
			ID:             uuid.New().String(),
			Year:           req.Year,
			Strategy:       string(ps.Strategy),
			Name:           ps.Plan.Name,
			PTOBudget:      totalBudget,
			FloatingBudget: totalFloating,
			GroupCount:     len(req.Groups),
			VacationDays:   ps.Plan.TotalVacationDays(),
			Payload:        string(payload),
		}
		if err := store.SavePlan(rec); err != nil {
			return nil, fmt.Errorf("failed to save plan %q: %w", ps.Plan.Name, err)
		}

		logger.Debug("Group plan saved",
			zap.String("id", rec.ID),
			zap.String("strategy", rec.Strategy),
			zap.Int("vacation_days", rec.VacationDays))
		result.SavedIDs = append(result.SavedIDs, rec.ID)
	}

	return result, nil
}

// expandStrategy resolves StrategyAll to the four concrete strategies
func expandStrategy(s planner.Strategy) []planner.Strategy {
	if s == planner.StrategyAll {
		return []planner.Strategy{
			planner.StrategyBridges,
			planner.StrategyLongest,
			planner.StrategyWeekends,
			planner.StrategyQuarterly,
		}
	}
	return []planner.Strategy{s}
}
