// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// limitclean application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds token issuance settings used by the credential subsystem.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the local persistence engine and the
	// binary file directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Scheduler holds configuration for the background reconciliation
	// scheduler.
	Scheduler Scheduler `envPrefix:"SCHEDULER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds token lifecycle settings for the credential subsystem.
type Auth struct {
	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued session token and its
	// session remain valid (e.g. "1h", "30m").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system storage settings for binary payloads.
	Files Files `envPrefix:"FILES_"`

	// OpTimeout is the maximum duration allowed for a single storage
	// operation issued by the scheduler before it is abandoned as a
	// transient failure (e.g. "10s").
	// Env: STORAGE_OP_TIMEOUT
	OpTimeout time.Duration `env:"OP_TIMEOUT"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite database file path (e.g. "limitclean.db",
	// ":memory:" for tests).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the binary payload store.
type Files struct {
	// BinaryDataDir is the absolute or relative path to the directory
	// where exported binary payloads are written.
	// Env: STORAGE_FILES_BINARY_DATA_DIR
	BinaryDataDir string `env:"BINARY_DATA_DIR"`
}

// Scheduler holds configuration for the reconciliation scheduler.
type Scheduler struct {
	// ReconcileInterval defines how often the reconciliation pass runs
	// (e.g. "60s").
	// Env: SCHEDULER_RECONCILE_INTERVAL
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
