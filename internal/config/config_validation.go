// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Negative durations are rejected here; absence is handled later by the
// defaults of [GetCoreConfig].
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenDuration < 0 || cfg.Scheduler.ReconcileInterval < 0 || cfg.Storage.OpTimeout < 0 {
		return ErrInvalidDurationConfigs
	}
	return nil
}

func (cfg *CoreConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.TokenIssuer == "" || cfg.Auth.TokenDuration <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Scheduler.ReconcileInterval <= 0 {
		return ErrInvalidSchedulerConfigs
	}

	return nil
}
