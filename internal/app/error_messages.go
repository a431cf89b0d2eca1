// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package app

import (
	"errors"

	"github.com/limitclean/limitclean/internal/service"
	"github.com/limitclean/limitclean/internal/store"
)

// Human-readable message strings shown to the user when an operation
// fails. Keeping them in one place ensures consistent wording throughout
// the presentation layer.
const (
	// MsgInvalidDataProvided is shown when input fails basic validation
	// (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is shown for a bad username or password. The
	// wording never reveals which part was wrong.
	MsgInvalidCredentials = "invalid username or password"

	// MsgTooManyAttempts is shown while the login lockout window is
	// active.
	MsgTooManyAttempts = "too many failed attempts, wait a few seconds"

	// MsgUsernameTaken is shown when registration collides with an
	// existing username.
	MsgUsernameTaken = "username already exists"

	// MsgRecordNotFound is shown when an update targets a record that no
	// longer exists.
	MsgRecordNotFound = "record not found"

	// MsgStorageUnavailable is shown when the local database cannot be
	// opened.
	MsgStorageUnavailable = "local storage unavailable, try again"

	// MsgInternalError is the fallback for unexpected failures.
	MsgInternalError = "internal error"
)

// UserMessage maps a core error to the short human-readable message shown
// to the user. Unknown errors collapse into MsgInternalError so internal
// details never leak into the presentation layer.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrThrottled):
		return MsgTooManyAttempts
	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, service.ErrInvalidDataProvided):
		return MsgInvalidDataProvided
	case errors.Is(err, store.ErrConstraintViolation):
		return MsgUsernameTaken
	case errors.Is(err, store.ErrNotFound):
		return MsgRecordNotFound
	case errors.Is(err, store.ErrStorageUnavailable):
		return MsgStorageUnavailable
	default:
		return MsgInternalError
	}
}
