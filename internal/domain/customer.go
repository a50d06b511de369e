package domain

import "time"

// Customer is the domain model for CRM customer records.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}
