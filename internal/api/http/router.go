package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-api/internal/api/http/handlers"
	"github.com/spec-kit/crm-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Customers *handlers.CustomersHandler
	Tickets   *handlers.TicketsHandler
	Notes     *handlers.NotesHandler
	Pipeline  *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The auth pipeline wraps every route, so
// each response carries the latency header; enforcement happens inside the
// handlers.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Pipeline.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/customers/:id", cfg.Customers.GetCustomer)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Patch("/tickets/:id", cfg.Tickets.UpdateTicket)
	api.Post("/notes/:ticket_id", cfg.Notes.AddNote)
}
