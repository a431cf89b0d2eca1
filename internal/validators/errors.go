package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID       = errors.New("id is required")
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassHash = errors.New("password hash is required")
	ErrInvalidRole   = errors.New("invalid role")

	ErrInvalidEntryType   = errors.New("invalid entry type")
	ErrInvalidEntryStatus = errors.New("invalid entry status")
	ErrNegativeAmount     = errors.New("amounts cannot be negative")

	ErrEmptyUserID = errors.New("user id is required")
	ErrEmptyTitle  = errors.New("title is required")

	ErrEmptyFileName = errors.New("file name is required")
	ErrMissingLink   = errors.New("file must link to an entry or a ticket")
)
