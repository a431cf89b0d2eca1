// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

// Package validators enforces record-shape rules at the persistence
// boundary. Every collection stores explicit typed records; a validator
// rejects malformed input with a typed error instead of letting a
// zero-valued field reach storage silently.
package validators

import "context"

// Validator validates arbitrary record values before they are persisted.
// Implementations may restrict validation to specific named fields.
type Validator interface {
	// Validate validates the provided input and optionally restricts
	// validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
