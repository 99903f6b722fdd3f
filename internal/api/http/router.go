package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-compliance-service/internal/api/http/handlers"
	"github.com/spec-kit/sla-compliance-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle)
	reports.Post("/", cfg.Reports.ProcessReport)
	reports.Post("/export", cfg.Reports.ExportReport)
	reports.Get("/:id", cfg.Reports.GetBatch)
	reports.Get("/:id/summary", cfg.Reports.GetSummary)
}
