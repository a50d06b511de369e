package events

import (
	"time"

	"github.com/spec-kit/crm-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventNoteAdded     EventType = "note_added"
)

// Event represents a domain event emitted after a successful write.
type Event struct {
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	Actor     domain.Role `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CustomerID int64  `json:"customer_id"`
	Subject    string `json:"subject"`
}

// TicketUpdatedPayload payload. Only fields present in the update request
// are set.
type TicketUpdatedPayload struct {
	Subject     *string `json:"subject,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// NoteAddedPayload payload.
type NoteAddedPayload struct {
	NoteID int64 `json:"note_id"`
}
