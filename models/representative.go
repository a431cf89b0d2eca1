package models

// Representative links a user account to its representative profile. The
// user_id column carries a unique index: a user has at most one profile.
type Representative struct {
	// ID is the unique identifier of the profile (UUID).
	ID string `json:"id"`

	// UserID is the ID of the linked user account.
	UserID string `json:"user_id"`

	// DefaultDiscount is applied to every entry created by this
	// representative.
	DefaultDiscount float64 `json:"default_discount"`
}

// TableName returns the name of the database table
// associated with the Representative model.
func (r Representative) TableName() string {
	return "representatives"
}
