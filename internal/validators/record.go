package validators

import (
	"context"
	"fmt"

	"github.com/limitclean/limitclean/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldID       = "id"
	FieldUsername = "username"
	FieldPassHash = "pass_hash"
	FieldRole     = "role"
	FieldType     = "type"
	FieldStatus   = "status"
	FieldAmounts  = "amounts"
	FieldUserID   = "user_id"
	FieldTitle    = "title"
	FieldName     = "name"
	FieldLink     = "link"
)

// recordValidator validates the typed records of every collection.
type recordValidator struct{}

// NewRecordValidator returns a [Validator] covering models.User,
// models.Entry, models.Ticket and models.FileRecord.
func NewRecordValidator() Validator {
	return &recordValidator{}
}

// Validate dispatches on the record type. With no field names given, every
// rule for that type is checked.
func (v *recordValidator) Validate(_ context.Context, value any, fields ...string) error {
	switch record := value.(type) {
	case models.User:
		return v.validateUser(record, fields...)
	case models.Entry:
		return v.validateEntry(record, fields...)
	case models.Ticket:
		return v.validateTicket(record, fields...)
	case models.FileRecord:
		return v.validateFile(record, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}

func (v *recordValidator) validateUser(user models.User, fields ...string) error {
	for _, field := range defaultFields(fields, FieldID, FieldUsername, FieldPassHash, FieldRole) {
		switch field {
		case FieldID:
			if user.ID == "" {
				return ErrEmptyID
			}
		case FieldUsername:
			if user.Username == "" {
				return ErrEmptyUsername
			}
		case FieldPassHash:
			if user.PassHash == "" {
				return ErrEmptyPassHash
			}
		case FieldRole:
			switch user.Role {
			case models.RoleAdmin, models.RoleRepresentative, models.RoleSeller:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *recordValidator) validateEntry(entry models.Entry, fields ...string) error {
	for _, field := range defaultFields(fields, FieldID, FieldType, FieldStatus, FieldAmounts) {
		switch field {
		case FieldID:
			if entry.ID == "" {
				return ErrEmptyID
			}
		case FieldType:
			switch entry.Type {
			case models.EntryTypeCleaning, models.EntryTypeRating:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidEntryType, entry.Type)
			}
		case FieldStatus:
			switch entry.Status {
			case models.StatusRestricted, models.StatusFinalized, models.StatusReprotocol:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidEntryStatus, entry.Status)
			}
		case FieldAmounts:
			if entry.GrossAmount < 0 || entry.DiscountAmount < 0 {
				return ErrNegativeAmount
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *recordValidator) validateTicket(ticket models.Ticket, fields ...string) error {
	for _, field := range defaultFields(fields, FieldID, FieldUserID, FieldTitle) {
		switch field {
		case FieldID:
			if ticket.ID == "" {
				return ErrEmptyID
			}
		case FieldUserID:
			if ticket.UserID == "" {
				return ErrEmptyUserID
			}
		case FieldTitle:
			if ticket.Title == "" {
				return ErrEmptyTitle
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *recordValidator) validateFile(file models.FileRecord, fields ...string) error {
	for _, field := range defaultFields(fields, FieldID, FieldName, FieldLink) {
		switch field {
		case FieldID:
			if file.ID == "" {
				return ErrEmptyID
			}
		case FieldName:
			if file.Name == "" {
				return ErrEmptyFileName
			}
		case FieldLink:
			if file.EntryID == "" && file.TicketID == "" {
				return ErrMissingLink
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return nil
}

func defaultFields(fields []string, all ...string) []string {
	if len(fields) == 0 {
		return all
	}
	return fields
}
