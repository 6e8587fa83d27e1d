package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jakechorley/pto-planner/internal/config"
	"github.com/jakechorley/pto-planner/pkg/core/planner"
	"github.com/jakechorley/pto-planner/pkg/core/services"
	"github.com/jakechorley/pto-planner/pkg/db"
	"github.com/jakechorley/pto-planner/pkg/holidays"
	"github.com/jakechorley/pto-planner/pkg/render"
)

type optimizeRequest struct {
	Year             int      `json:"year"`
	PTOBudget        int      `json:"pto_budget"`
	FloatingHolidays int      `json:"floating_holidays"`
	Country          string   `json:"country,omitempty"`
	Holidays         []string `json:"holidays,omitempty"`
	Strategy         string   `json:"strategy,omitempty"`
	Save             bool     `json:"save,omitempty"`
}

type optimizeResponse struct {
	render.OutputJSON
	SavedIDs []string `json:"saved_ids,omitempty"`
}

func (s *Server) handleOptimize(c *fiber.Ctx) error {
	var req optimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	strategy, err := parseStrategy(req.Strategy)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	hols, err := services.ResolveHolidays(year, req.Country, req.Holidays)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := services.Optimize(c.UserContext(), s.store, s.logger, services.OptimizeRequest{
		Year:             year,
		PTOBudget:        req.PTOBudget,
		FloatingHolidays: req.FloatingHolidays,
		Holidays:         hols,
		Strategy:         strategy,
		Save:             req.Save,
	})
	if err != nil {
		s.logger.Warn("Optimization request failed", zap.Error(err))
		return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	plans := make([]*planner.Plan, 0, len(result.Plans))
	for _, ps := range result.Plans {
		plans = append(plans, ps.Plan)
	}

	return c.JSON(optimizeResponse{
		OutputJSON: render.NewOutputJSON(year, req.PTOBudget, req.FloatingHolidays, plans),
		SavedIDs:   result.SavedIDs,
	})
}

type groupOptimizeRequest struct {
	Year     int            `json:"year"`
	Groups   []config.Group `json:"groups"`
	Strategy string         `json:"strategy,omitempty"`
	Save     bool           `json:"save,omitempty"`
}

type groupOptimizeResponse struct {
	render.GroupOutputJSON
	SavedIDs []string `json:"saved_ids,omitempty"`
}

func (s *Server) handleGroupOptimize(c *fiber.Ctx) error {
	var req groupOptimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	cfg := &config.Config{Year: year, Groups: req.Groups}
	if err := config.Validate(cfg); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	strategy, err := parseStrategy(req.Strategy)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	groups, err := services.BuildGroups(cfg, year)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := services.OptimizeGroups(c.UserContext(), s.store, s.logger, services.GroupOptimizeRequest{
		Year:     year,
		Groups:   groups,
		Strategy: strategy,
		Save:     req.Save,
	})
	if err != nil {
		s.logger.Warn("Group optimization request failed", zap.Error(err))
		return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	plans := make([]*planner.GroupPlan, 0, len(result.Plans))
	for _, ps := range result.Plans {
		plans = append(plans, ps.Plan)
	}

	return c.JSON(groupOptimizeResponse{
		GroupOutputJSON: render.NewGroupOutputJSON(year, groups, plans),
		SavedIDs:        result.SavedIDs,
	})
}

func (s *Server) handleHolidays(c *fiber.Ctx) error {
	country := c.Params("country")
	year := c.QueryInt("year", time.Now().Year())

	description, err := holidays.Describe(country)
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	}

	hols, err := holidays.Preset(country, year)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	list := make([]fiber.Map, 0, len(hols))
	for _, h := range hols {
		list = append(list, fiber.Map{
			"date": h.Date.Format("2006-01-02"),
			"name": h.Name,
		})
	}

	return c.JSON(fiber.Map{
		"country":     country,
		"description": description,
		"year":        year,
		"holidays":    list,
	})
}

func (s *Server) handleListPlans(c *fiber.Ctx) error {
	if s.store == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "plan store not configured")
	}

	year := c.QueryInt("year", 0)
	limit := c.QueryInt("limit", 0)

	records, err := s.store.ListPlans(year, limit)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"plans": records})
}

func (s *Server) handleGetPlan(c *fiber.Ctx) error {
	if s.store == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "plan store not configured")
	}

	rec, err := s.store.GetPlan(c.Params("id"))
	if errors.Is(err, db.ErrPlanNotFound) {
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"id":         rec.ID,
		"created_at": rec.CreatedAt,
		"year":       rec.Year,
		"strategy":   rec.Strategy,
		"name":       rec.Name,
		"plan":       json.RawMessage(rec.Payload),
	})
}

func (s *Server) handleDeletePlan(c *fiber.Ctx) error {
	if s.store == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "plan store not configured")
	}

	err := s.store.DeletePlan(c.Params("id"))
	if errors.Is(err, db.ErrPlanNotFound) {
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"deleted": c.Params("id")})
}

func parseStrategy(s string) (planner.Strategy, error) {
	if s == "" {
		return planner.StrategyAll, nil
	}
	return planner.ParseStrategy(s)
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
