package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/attendx/hrms-service/internal/api/http/handlers"
	"github.com/attendx/hrms-service/internal/auth"
	"github.com/attendx/hrms-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Departments *handlers.DepartmentsHandler
	Offices     *handlers.OfficesHandler
	Resolver    *auth.Resolver
	Metrics     *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/auth/login", cfg.Auth.Login)

	users := app.Group("/users")
	users.Post("/createUser", cfg.Resolver.Authenticate(false), cfg.Users.Create)
	users.Get("/getUsers", cfg.Resolver.Authenticate(true), auth.RequirePermission(auth.ActionListAccounts), cfg.Users.List)
	users.Get("/me", cfg.Resolver.Authenticate(true), auth.RequirePermission(auth.ActionViewAccount), cfg.Users.Me)

	departments := app.Group("/departments")
	departments.Post("/createDepartment", cfg.Departments.Create)
	departments.Get("", cfg.Departments.Get)

	offices := app.Group("/offices")
	offices.Post("/createOffice", cfg.Offices.Create)
	offices.Get("", cfg.Offices.Get)
}
