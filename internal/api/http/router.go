package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/http/handlers"
	"github.com/spec-kit/directory-service/internal/identity"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Businesses    *handlers.BusinessesHandler
	Reviews       *handlers.ReviewsHandler
	Announcements *handlers.AnnouncementsHandler
	Jobs          *handlers.JobsHandler
	Identity      *identity.Middleware
}

// RegisterRoutes wires HTTP routes. Public reads carry identity when a token
// is present; writes and "mine" views demand one.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	businesses := app.Group("/businesses")
	businesses.Get("/", cfg.Identity.Optional, cfg.Businesses.List)
	businesses.Get("/mine", cfg.Identity.Required, cfg.Businesses.ListMine)
	businesses.Post("/", cfg.Identity.Required, cfg.Businesses.Create)
	businesses.Get("/:id", cfg.Identity.Optional, cfg.Businesses.Get)
	businesses.Put("/:id", cfg.Identity.Required, cfg.Businesses.Update)
	businesses.Delete("/:id", cfg.Identity.Required, cfg.Businesses.Delete)

	businesses.Get("/:id/reviews", cfg.Identity.Optional, cfg.Reviews.ListForBusiness)
	businesses.Post("/:id/reviews", cfg.Identity.Required, cfg.Reviews.Create)
	businesses.Get("/:id/announcements", cfg.Identity.Optional, cfg.Announcements.ListForBusiness)
	businesses.Post("/:id/announcements", cfg.Identity.Required, cfg.Announcements.Create)
	businesses.Get("/:id/jobs", cfg.Identity.Optional, cfg.Jobs.ListForBusiness)
	businesses.Post("/:id/jobs", cfg.Identity.Required, cfg.Jobs.Create)

	reviews := app.Group("/reviews", cfg.Identity.Required)
	reviews.Get("/mine", cfg.Reviews.ListMine)
	reviews.Put("/:id", cfg.Reviews.Update)
	reviews.Delete("/:id", cfg.Reviews.Delete)
	reviews.Post("/:id/approve", cfg.Reviews.Approve)

	announcements := app.Group("/announcements", cfg.Identity.Required)
	announcements.Get("/", cfg.Announcements.ListMine)
	announcements.Put("/:id", cfg.Announcements.Update)
	announcements.Delete("/:id", cfg.Announcements.Delete)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Identity.Optional, cfg.Jobs.List)
	jobs.Get("/mine", cfg.Identity.Required, cfg.Jobs.ListMine)
	jobs.Put("/:id", cfg.Identity.Required, cfg.Jobs.Update)
	jobs.Delete("/:id", cfg.Identity.Required, cfg.Jobs.Delete)
}
