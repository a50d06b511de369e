package dto

import "time"

// CreateNoteRequest payload.
type CreateNoteRequest struct {
	Text string `json:"text"`
}

// NoteResponse payload.
type NoteResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
