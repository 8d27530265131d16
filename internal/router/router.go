package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/skillpath-api/internal/config"
	"github.com/noah-isme/skillpath-api/internal/handler"
	"github.com/noah-isme/skillpath-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	TeacherHandler    *handler.TeacherHandler
	ClassHandler      *handler.ClassHandler
	PaymentHandler    *handler.PaymentHandler
	AssignmentHandler *handler.AssignmentHandler
	FeedbackHandler   *handler.FeedbackHandler
	StatsHandler      *handler.StatsHandler
	UploadHandler     *handler.UploadHandler
	Guards            handler.Guards
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	health := handler.HealthCheck(cfg)
	app.Get("/", health)
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", health)

	guards := deps.Guards

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api, guards)
	}

	// Accounts, teacher applications and the approval workflow
	if deps.UserHandler != nil {
		deps.UserHandler.Register(api, guards)
	}
	if deps.TeacherHandler != nil {
		deps.TeacherHandler.Register(api, guards)
	}

	// Catalogue and enrollment
	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(api, guards)
	}
	if deps.PaymentHandler != nil {
		deps.PaymentHandler.Register(api, guards)
	}

	// Coursework
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(api, guards)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(api, guards)
	}

	if deps.StatsHandler != nil {
		deps.StatsHandler.Register(api, guards)
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(api, guards)
	}
}
