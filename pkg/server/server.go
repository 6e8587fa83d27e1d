// Package server exposes the optimizer over HTTP for tooling that wants
// plans without shelling out to the CLI.
package server

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jakechorley/pto-planner/pkg/db"
)

// Server wires the optimizer and plan store into a fiber app
type Server struct {
	app    *fiber.App
	logger *zap.Logger
	store  db.PlanStore
}

// New builds the server and registers all routes. store may be nil, in
// which case the plan history endpoints report 503.
func New(logger *zap.Logger, store db.PlanStore) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "pto-planner",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:    app,
		logger: logger,
		store:  store,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")
	api.Post("/optimize", s.handleOptimize)
	api.Post("/groups/optimize", s.handleGroupOptimize)
	api.Get("/holidays/:country", s.handleHolidays)
	api.Get("/plans", s.handleListPlans)
	api.Get("/plans/:id", s.handleGetPlan)
	api.Delete("/plans/:id", s.handleDeletePlan)
}

// App exposes the fiber app, mainly for tests using app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on addr
func (s *Server) Listen(addr string) error {
	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
