package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetCoreConfig] when a value is absent from every
// configuration source.
const (
	DefaultDSN               = "limitclean.db"
	DefaultTokenIssuer       = "limitclean"
	DefaultTokenDuration     = time.Hour
	DefaultReconcileInterval = 60 * time.Second
	DefaultOpTimeout         = 10 * time.Second
)

// CoreAuth holds token lifecycle settings consumed by the credential
// subsystem.
type CoreAuth struct {
	// TokenIssuer is the "iss" claim of every issued token.
	TokenIssuer string
	// TokenDuration is the session and token lifetime.
	TokenDuration time.Duration
}

// CoreStorage groups local persistence settings.
type CoreStorage struct {
	// DSN is the SQLite database file path.
	DSN string
	// BinaryDataDir is the directory for exported binary payloads.
	BinaryDataDir string
	// OpTimeout bounds a single scheduler-issued storage operation.
	OpTimeout time.Duration
}

// CoreScheduler groups reconciliation scheduler settings.
type CoreScheduler struct {
	// ReconcileInterval defines how often the reconciliation pass runs.
	ReconcileInterval time.Duration
}

// CoreConfig is the defaulted, validated configuration view consumed by the
// application runtime, assembled from [StructuredConfig].
type CoreConfig struct {
	// Auth contains credential subsystem settings.
	Auth CoreAuth
	// Storage contains persistence settings.
	Storage CoreStorage
	// Scheduler contains background scheduler settings.
	Scheduler CoreScheduler
}

// GetCoreConfig builds and validates the runtime config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the core runtime, applies defaults for absent values, and
// validates the resulting [CoreConfig].
func GetCoreConfig() (*CoreConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	coreCfg := &CoreConfig{
		Auth: CoreAuth{
			TokenIssuer:   cfg.Auth.TokenIssuer,
			TokenDuration: cfg.Auth.TokenDuration,
		},
		Storage: CoreStorage{
			DSN:           cfg.Storage.DB.DSN,
			BinaryDataDir: cfg.Storage.Files.BinaryDataDir,
			OpTimeout:     cfg.Storage.OpTimeout,
		},
		Scheduler: CoreScheduler{
			ReconcileInterval: cfg.Scheduler.ReconcileInterval,
		},
	}
	coreCfg.applyDefaults()

	return coreCfg, coreCfg.validate()
}

func (cfg *CoreConfig) applyDefaults() {
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = DefaultTokenDuration
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = DefaultDSN
	}
	if cfg.Storage.OpTimeout == 0 {
		cfg.Storage.OpTimeout = DefaultOpTimeout
	}
	if cfg.Scheduler.ReconcileInterval == 0 {
		cfg.Scheduler.ReconcileInterval = DefaultReconcileInterval
	}
}
