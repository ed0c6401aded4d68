package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Staff          *handlers.StaffHandler
	Catalog        *handlers.CatalogHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role checks live in the services;
// the router only distinguishes public from authenticated.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())

	protected.Post("/auth/logout", cfg.Users.Logout)
	protected.Get("/me", cfg.Users.Me)

	catalog := protected.Group("/catalog")
	catalog.Get("/issues", cfg.Catalog.ListIssues)
	catalog.Post("/issues", cfg.Catalog.CreateIssue)
	catalog.Get("/sub-issues", cfg.Catalog.ListSubIssues)
	catalog.Post("/sub-issues", cfg.Catalog.CreateSubIssue)
	catalog.Get("/company-types", cfg.Catalog.ListCompanyTypes)
	catalog.Post("/company-types", cfg.Catalog.CreateCompanyType)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Get("/:id/transitions", cfg.Tickets.AllowedTransitions)
	tickets.Get("/:id/activity", cfg.Tickets.ListActivity)
	tickets.Get("/:id/eligible-staff", cfg.Tickets.EligibleStaff)

	staff := protected.Group("/staff")
	staff.Post("", cfg.Staff.CreateStaff)
	staff.Get("", cfg.Staff.ListStaff)
	staff.Patch("/:id", cfg.Staff.UpdateStaff)

	reports := protected.Group("/reports")
	reports.Get("/status", cfg.Reports.StatusCounts)
	reports.Get("/monthly", cfg.Reports.MonthlyCounts)
	reports.Get("/clients", cfg.Reports.ClientCounts)
	reports.Get("/staff", cfg.Reports.StaffCounts)
}
