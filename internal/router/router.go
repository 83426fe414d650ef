package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/config"
	"github.com/Zayne-Feng/group-assessment-v3/internal/handler"
	"github.com/Zayne-Feng/group-assessment-v3/internal/middleware"
	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
	"github.com/Zayne-Feng/group-assessment-v3/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SurveyHandler     *handler.SurveyHandler
	AttendanceHandler *handler.AttendanceHandler
	AlertHandler      *handler.AlertHandler
	AnalyticsHandler  *handler.AnalyticsHandler
	JWTMiddleware     fiber.Handler
	SurveyRateLimit   fiber.Handler
	DB                *gorm.DB
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.DB))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	limiter := deps.SurveyRateLimit
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	staffOnly := middleware.RequireRole(models.StaffRoles...)
	surveyRoles := append(append([]string{}, models.StaffRoles...), models.RoleStudent)

	if deps.SurveyHandler != nil {
		surveys := api.Group("/surveys", jwtMiddleware, middleware.RequireRole(surveyRoles...))
		deps.SurveyHandler.Register(surveys, staffOnly, limiter)
	}

	if deps.AttendanceHandler != nil {
		attendance := api.Group("/attendance", jwtMiddleware, staffOnly)
		deps.AttendanceHandler.Register(attendance)
	}

	if deps.AlertHandler != nil {
		alerts := api.Group("/alerts", jwtMiddleware, staffOnly)
		deps.AlertHandler.Register(alerts)

		events := api.Group("/stress-events", jwtMiddleware, staffOnly)
		deps.AlertHandler.RegisterStressEvents(events)
	}

	if deps.AnalyticsHandler != nil {
		analysis := api.Group("/analysis", jwtMiddleware, staffOnly)
		deps.AnalyticsHandler.Register(analysis)
	}
}
