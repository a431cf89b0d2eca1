package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreConfig_ApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &CoreConfig{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultDSN, cfg.Storage.DSN)
	assert.Equal(t, DefaultTokenIssuer, cfg.Auth.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.Auth.TokenDuration)
	assert.Equal(t, DefaultReconcileInterval, cfg.Scheduler.ReconcileInterval)
	assert.Equal(t, DefaultOpTimeout, cfg.Storage.OpTimeout)
}

func TestCoreConfig_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &CoreConfig{
		Auth:      CoreAuth{TokenIssuer: "custom", TokenDuration: 2 * time.Hour},
		Storage:   CoreStorage{DSN: "custom.db", OpTimeout: time.Second},
		Scheduler: CoreScheduler{ReconcileInterval: 5 * time.Minute},
	}
	cfg.applyDefaults()

	assert.Equal(t, "custom", cfg.Auth.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "custom.db", cfg.Storage.DSN)
	assert.Equal(t, time.Second, cfg.Storage.OpTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.ReconcileInterval)
}

func TestCoreConfig_Validate(t *testing.T) {
	valid := func() *CoreConfig {
		cfg := &CoreConfig{}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *CoreConfig)
		wantErr error
	}{
		{"valid defaults", func(cfg *CoreConfig) {}, nil},
		{"empty dsn", func(cfg *CoreConfig) { cfg.Storage.DSN = "" }, ErrInvalidStorageConfigs},
		{"empty issuer", func(cfg *CoreConfig) { cfg.Auth.TokenIssuer = "" }, ErrInvalidAuthConfigs},
		{"zero token duration", func(cfg *CoreConfig) { cfg.Auth.TokenDuration = 0 }, ErrInvalidAuthConfigs},
		{"zero interval", func(cfg *CoreConfig) { cfg.Scheduler.ReconcileInterval = 0 }, ErrInvalidSchedulerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStructuredConfig_Validate_NegativeDuration(t *testing.T) {
	cfg := &StructuredConfig{Auth: Auth{TokenDuration: -time.Second}}
	assert.ErrorIs(t, cfg.validate(), ErrInvalidDurationConfigs)
}
