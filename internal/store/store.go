package store

import (
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/crm-api/internal/domain"
	apperrors "github.com/spec-kit/crm-api/pkg/util"
)

// Store is the sole authority over customer, ticket and note state and over
// identifier assignment. All state lives in process memory; a single mutex
// covers the three collections and their id counters, so every read is
// mutually exclusive with concurrent writes.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	customers map[int64]domain.Customer
	tickets   map[int64]domain.Ticket
	notes     map[int64]domain.TicketNote

	// Ticket listing order is insertion order, which Go maps do not keep.
	ticketOrder []int64

	nextCustomerID int64
	nextTicketID   int64
	nextNoteID     int64
}

// New returns an empty store using the wall clock.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock returns an empty store reading timestamps from now. Tests
// inject a stepping clock to observe timestamp ordering without sleeping.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		now:            now,
		customers:      make(map[int64]domain.Customer),
		tickets:        make(map[int64]domain.Ticket),
		notes:          make(map[int64]domain.TicketNote),
		nextCustomerID: 1,
		nextTicketID:   1,
		nextNoteID:     1,
	}
}

// CreateCustomer stores a new customer record. Name must be non-empty and
// email syntactically valid; ids are assigned from a monotonic counter
// starting at 1.
func (s *Store) CreateCustomer(name, email string) (domain.Customer, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Customer{}, apperrors.NewValidationError("name must not be empty", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Customer{}, apperrors.NewValidationError("invalid email address", map[string]any{"email": email})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer := domain.Customer{
		ID:        s.nextCustomerID,
		Name:      name,
		Email:     email,
		CreatedAt: s.now(),
	}
	s.customers[customer.ID] = customer
	s.nextCustomerID++
	return customer, nil
}

// GetCustomer fetches a customer by id.
func (s *Store) GetCustomer(id int64) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return domain.Customer{}, apperrors.NewNotFound("customer", map[string]any{"id": id})
	}
	return customer, nil
}

// CreateTicket stores a new ticket with status "open". The caller is
// responsible for having validated that customerID exists; this operation
// does not re-check it.
func (s *Store) CreateTicket(customerID int64, subject, description string) domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.now()
	ticket := domain.Ticket{
		ID:          s.nextTicketID,
		CustomerID:  customerID,
		Subject:     subject,
		Description: description,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	s.tickets[ticket.ID] = ticket
	s.ticketOrder = append(s.ticketOrder, ticket.ID)
	s.nextTicketID++
	return ticket
}

// GetTicket fetches a ticket by id.
func (s *Store) GetTicket(id int64) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return ticket, nil
}

// TicketUpdate is a sparse set of ticket fields; nil fields are untouched.
type TicketUpdate struct {
	Subject     *string
	Description *string
	Status      *string
}

// UpdateTicket applies the supplied fields to a ticket. UpdatedAt is bumped
// on every call, including a call that supplies no fields at all.
func (s *Store) UpdateTicket(id int64, update TicketUpdate) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}

	if update.Subject != nil {
		ticket.Subject = *update.Subject
	}
	if update.Description != nil {
		ticket.Description = *update.Description
	}
	if update.Status != nil {
		ticket.Status = *update.Status
	}
	ticket.UpdatedAt = s.now()

	s.tickets[id] = ticket
	return ticket, nil
}

// ListTickets returns tickets in insertion order. A non-nil customerID is
// always treated as a filter, including customerID 0 (which matches nothing,
// since assigned ids start at 1).
func (s *Store) ListTickets(customerID *int64) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := make([]domain.Ticket, 0, len(s.ticketOrder))
	for _, id := range s.ticketOrder {
		ticket := s.tickets[id]
		if customerID != nil && ticket.CustomerID != *customerID {
			continue
		}
		tickets = append(tickets, ticket)
	}
	return tickets
}

// AddNote attaches a note to a ticket. The caller is responsible for having
// validated that ticketID exists and that text is non-empty; no
// back-reference is maintained on the ticket.
func (s *Store) AddNote(ticketID int64, text string) domain.TicketNote {
	s.mu.Lock()
	defer s.mu.Unlock()

	note := domain.TicketNote{
		ID:        s.nextNoteID,
		TicketID:  ticketID,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.notes[note.ID] = note
	s.nextNoteID++
	return note
}

// TicketCount reports how many tickets exist. Tests use it to assert that
// rejected operations left the collection untouched.
func (s *Store) TicketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}
