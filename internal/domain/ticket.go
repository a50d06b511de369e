package domain

import "time"

// Default ticket status. Status is free-form text; the store enforces no
// enumeration, so these are conventions rather than constraints.
const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)

// Ticket is the aggregate for support requests raised against a customer.
// CustomerID is validated against the customer collection at creation time
// only; there is no cascading delete to keep it consistent afterwards.
type Ticket struct {
	ID          int64
	CustomerID  int64
	Subject     string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
