package models

import "time"

// Ticket is a support request raised by a user. The core stores tickets
// unchanged; rendering and replies are presentation concerns.
type Ticket struct {
	// ID is the unique identifier of the ticket (UUID).
	ID string `json:"id"`

	// UserID is the ID of the user who opened the ticket.
	UserID string `json:"user_id"`

	// Title is the short subject of the ticket.
	Title string `json:"title"`

	// Description is the free-form body of the ticket.
	Description string `json:"description"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Ticket model.
func (t Ticket) TableName() string {
	return "tickets"
}
