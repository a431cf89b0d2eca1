// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package models

import "time"

// EntryType identifies the kind of service a business record represents.
type EntryType string

const (
	// EntryTypeCleaning is a credit-cleaning service request.
	EntryTypeCleaning EntryType = "cleaning"

	// EntryTypeRating is a rating-recovery service request.
	EntryTypeRating EntryType = "rating"
)

// EntryStatus is the derived lifecycle status of an entry. It is recomputed
// from the entry's age by the reconciliation scheduler, but direct writes
// from other flows are legal and will be overwritten on the next pass.
type EntryStatus string

const (
	// StatusRestricted is the initial status of an entry younger than 30 days.
	StatusRestricted EntryStatus = "Restricted"

	// StatusFinalized applies to entries aged 30 days or more.
	StatusFinalized EntryStatus = "Finalized"

	// StatusReprotocol applies to entries aged 180 days or more.
	StatusReprotocol EntryStatus = "Reprotocol"
)

// Entry is a business record for a single service request, with monetary
// amounts and a time-derived status.
type Entry struct {
	// ID is the unique identifier of the entry (UUID).
	ID string `json:"id"`

	// Type is the service kind, EntryTypeCleaning or EntryTypeRating.
	Type EntryType `json:"type"`

	// Document is the customer's CPF/CNPJ document number. Formatting and
	// validation are presentation concerns; the core stores it verbatim.
	Document string `json:"document"`

	// Name is the customer's name.
	Name string `json:"name"`

	// Phone is the customer's contact phone number.
	Phone string `json:"phone"`

	// OwnerLabel is the free-form label of the selling party shown on the
	// record (historically the seller's display name).
	OwnerLabel string `json:"owner_label"`

	// GrossAmount is the contracted gross value of the service.
	GrossAmount float64 `json:"gross_amount"`

	// DiscountAmount is the discount applied to the gross value.
	DiscountAmount float64 `json:"discount_amount"`

	// NetAmount is always max(0, GrossAmount-DiscountAmount). It is
	// recomputed whenever either amount changes; see RecalculateNet.
	NetAmount float64 `json:"net_amount"`

	// Status is derived from CreatedAt by the scheduler.
	Status EntryStatus `json:"status"`

	// Done marks a rating entry as completed.
	Done bool `json:"done"`

	// CreatedAt is the creation timestamp. The scheduler derives Status
	// from this value; it never changes after creation.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is bumped on every mutation, including scheduler writes.
	UpdatedAt time.Time `json:"updated_at"`

	// CreatedBy is the ID of the user who created the entry.
	CreatedBy string `json:"created_by"`
}

// RecalculateNet recomputes NetAmount from the current gross and discount
// amounts, clamping the result at zero.
func (e *Entry) RecalculateNet() {
	net := e.GrossAmount - e.DiscountAmount
	if net < 0 {
		net = 0
	}
	e.NetAmount = net
}

// TableName returns the name of the database table
// associated with the Entry model.
func (e Entry) TableName() string {
	return "entries"
}
