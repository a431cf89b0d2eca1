// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// isUniqueViolation reports whether err is an SQLite unique-index violation.
// The driver surfaces constraint failures as sqlite3.Error values carrying an
// extended result code; ErrConstraintUnique and ErrConstraintPrimaryKey both
// map to the engine's ErrConstraintViolation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
