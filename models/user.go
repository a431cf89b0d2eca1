package models

import "time"

// Role classifies a user account and controls which flows the presentation
// layer offers and how entry discounts are resolved.
type Role string

const (
	// RoleAdmin marks the administrator account. Admins may pass an
	// arbitrary discount when creating entries.
	RoleAdmin Role = "admin"

	// RoleRepresentative marks a representative account. Entries created by
	// a representative use the representative's default discount.
	RoleRepresentative Role = "representative"

	// RoleSeller marks a seller account. Entries created by a seller use
	// the seller's individual discount.
	RoleSeller Role = "seller"
)

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user (UUID).
	ID string `json:"id"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Email is the contact address of the user.
	Email string `json:"email"`

	// Username is the unique login identifier, enforced by a unique index
	// on the users collection.
	Username string `json:"username"`

	// Role is the account role. One of RoleAdmin, RoleRepresentative,
	// RoleSeller.
	Role Role `json:"role"`

	// PassHash stores the user's password representation.
	// This value MUST be a derived value (KDF output), never plaintext.
	PassHash string `json:"-"`

	// Phone is the contact phone number of the user.
	Phone string `json:"phone"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
