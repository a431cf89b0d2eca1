package models

// Seller links a user account to its seller profile. The user_id column is
// unique; representative_id is a non-unique index, one representative may
// manage many sellers.
type Seller struct {
	// ID is the unique identifier of the profile (UUID).
	ID string `json:"id"`

	// UserID is the ID of the linked user account.
	UserID string `json:"user_id"`

	// RepresentativeID is the ID of the managing representative profile.
	RepresentativeID string `json:"representative_id"`

	// SellerDiscount is applied to every entry created by this seller.
	SellerDiscount float64 `json:"seller_discount"`
}

// TableName returns the name of the database table
// associated with the Seller model.
func (s Seller) TableName() string {
	return "sellers"
}
