package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-api/internal/api/dto"
	"github.com/spec-kit/crm-api/internal/auth"
	"github.com/spec-kit/crm-api/internal/domain"
	"github.com/spec-kit/crm-api/internal/events"
	"github.com/spec-kit/crm-api/internal/store"
	apperrors "github.com/spec-kit/crm-api/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	store      *store.Store
	dispatcher events.Dispatcher
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(entityStore *store.Store, dispatcher events.Dispatcher) *TicketsHandler {
	return &TicketsHandler{store: entityStore, dispatcher: dispatcher}
}

// ListTickets GET /api/tickets. Listing is read-only and requires no role.
// A customer_id query parameter that is present always filters, including
// customer_id=0.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	var customerID *int64
	if raw := c.Query("customer_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return err
		}
		customerID = &id
	}

	tickets := h.store.ListTickets(customerID)
	items := make([]dto.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, ticketResponse(ticket))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateTicket POST /api/tickets. The role check runs before the customer
// existence check so unauthorized callers cannot probe customer ids.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	role := auth.RoleFromContext(c)
	if err := auth.CheckRole(role, domain.RoleAgent, domain.RoleAdmin); err != nil {
		return err
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.store.GetCustomer(req.CustomerID); err != nil {
		return err
	}

	ticket := h.store.CreateTicket(req.CustomerID, req.Subject, req.Description)

	h.publish(c, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    role,
		Payload:  events.TicketCreatedPayload{CustomerID: ticket.CustomerID, Subject: ticket.Subject},
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PATCH /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	role := auth.RoleFromContext(c)
	if err := auth.CheckRole(role, domain.RoleAgent, domain.RoleAdmin); err != nil {
		return err
	}

	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.store.UpdateTicket(id, store.TicketUpdate{
		Subject:     req.Subject,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	h.publish(c, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Actor:    role,
		Payload:  events.TicketUpdatedPayload{Subject: req.Subject, Description: req.Description, Status: req.Status},
	})
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func (h *TicketsHandler) publish(c *fiber.Ctx, event events.Event) {
	if h.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = h.dispatcher.Publish(c.UserContext(), event)
}

func ticketResponse(ticket domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:          ticket.ID,
		CustomerID:  ticket.CustomerID,
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}
