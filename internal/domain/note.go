package domain

import "time"

// TicketNote is a free-text annotation attached to a ticket. Notes carry no
// back-reference on the ticket itself.
type TicketNote struct {
	ID        int64
	TicketID  int64
	Text      string
	CreatedAt time.Time
}
