package dto

import "time"

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CustomerID  int64  `json:"customer_id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// UpdateTicketRequest is a sparse update; absent fields are left untouched.
type UpdateTicketRequest struct {
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// TicketResponse payload.
type TicketResponse struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
