package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-api/internal/api/dto"
	"github.com/spec-kit/crm-api/internal/auth"
	"github.com/spec-kit/crm-api/internal/domain"
	"github.com/spec-kit/crm-api/internal/events"
	"github.com/spec-kit/crm-api/internal/store"
	apperrors "github.com/spec-kit/crm-api/pkg/util"
)

// NotesHandler manages ticket note endpoints.
type NotesHandler struct {
	store      *store.Store
	dispatcher events.Dispatcher
}

// NewNotesHandler constructs handler.
func NewNotesHandler(entityStore *store.Store, dispatcher events.Dispatcher) *NotesHandler {
	return &NotesHandler{store: entityStore, dispatcher: dispatcher}
}

// AddNote POST /api/notes/:ticket_id. Role check first, ticket existence
// second, so unauthorized callers cannot probe ticket ids.
func (h *NotesHandler) AddNote(c *fiber.Ctx) error {
	role := auth.RoleFromContext(c)
	if err := auth.CheckRole(role, domain.RoleAgent, domain.RoleAdmin); err != nil {
		return err
	}

	ticketID, err := parseID(c.Params("ticket_id"))
	if err != nil {
		return err
	}
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("text must not be empty", nil)
	}

	if _, err := h.store.GetTicket(ticketID); err != nil {
		return err
	}

	note := h.store.AddNote(ticketID, req.Text)

	if h.dispatcher != nil {
		_ = h.dispatcher.Publish(c.UserContext(), events.Event{
			Type:      events.EventNoteAdded,
			TicketID:  ticketID,
			Actor:     role,
			Timestamp: time.Now(),
			Payload:   events.NoteAddedPayload{NoteID: note.ID},
		})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": noteResponse(note)})
}

func noteResponse(note domain.TicketNote) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        note.ID,
		TicketID:  note.TicketID,
		Text:      note.Text,
		CreatedAt: note.CreatedAt,
	}
}
