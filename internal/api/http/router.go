package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/property-registry/internal/api/http/handlers"
	"github.com/spec-kit/property-registry/internal/domain"
	"github.com/spec-kit/property-registry/internal/identity"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Enrollment *handlers.EnrollmentHandler
	Users      *handlers.UsersHandler
	Properties *handlers.PropertiesHandler
	Identity   *identity.Middleware
}

// RegisterRoutes wires HTTP routes. The role guards mirror the operation
// table; the services check roles again as the source of truth.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/enroll", cfg.Enrollment.Enroll)

	registry := app.Group("/registry", cfg.Identity.Handle)

	users := registry.Group("/users")
	users.Post("", identity.RequireRole(domain.RoleUser), cfg.Users.Request)
	users.Post("/approve", identity.RequireRole(domain.RoleRegistrar), cfg.Users.Approve)
	users.Post("/recharge", identity.RequireRole(domain.RoleUser), cfg.Users.Recharge)
	users.Get("/:name/:nationalId", identity.RequireAnyRole(), cfg.Users.View)

	properties := registry.Group("/properties")
	properties.Post("", identity.RequireRole(domain.RoleUser), cfg.Properties.Request)
	properties.Post("/:propertyId/approve", identity.RequireRole(domain.RoleRegistrar), cfg.Properties.Approve)
	properties.Post("/:propertyId/purchase", identity.RequireRole(domain.RoleUser), cfg.Properties.Purchase)
	properties.Patch("/:propertyId", identity.RequireRole(domain.RoleUser), cfg.Properties.Update)
	properties.Get("/:propertyId", identity.RequireAnyRole(), cfg.Properties.View)
}
