package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidDurationConfigs indicates that a duration setting was
	// negative in one of the configuration sources.
	ErrInvalidDurationConfigs = errors.New("invalid duration configuration")
	// ErrInvalidStorageConfigs indicates invalid persistence settings
	// (for example, an empty DSN after defaulting).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates invalid credential subsystem settings
	// (for example, a non-positive token duration).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidSchedulerConfigs indicates invalid scheduler settings
	// (for example, a non-positive reconcile interval).
	ErrInvalidSchedulerConfigs = errors.New("invalid scheduler configuration")
)
