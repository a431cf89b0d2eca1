package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/limitclean/limitclean/internal/logger"
)

// settingsRepository is the SQLite-backed implementation of
// [SettingsRepository]. Each slot is a single row keyed by name; writes go
// through an upsert so a slot is created on first use.
type settingsRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSettingsRepository constructs a [SettingsRepository] backed by the
// provided database connection and logger.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating settings repository")
	return &settingsRepository{
		db:     db,
		logger: logger,
	}
}

// GetSetting returns the raw value of one slot, or [ErrNotFound] when the
// slot has never been written.
func (r *settingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	var value string
	row := r.db.QueryRowContext(ctx, getSetting, key)

	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		log.Err(err).Str("func", "*settingsRepository.GetSetting").Str("key", key).Msg("error scanning setting row")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

// SetSetting writes one slot, creating it on first use.
func (r *settingsRepository) SetSetting(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, setSetting, key, value); err != nil {
		log.Err(err).Str("func", "*settingsRepository.SetSetting").Str("key", key).Msg("error upserting setting")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteSetting removes one slot. Deleting an absent slot is a no-op.
func (r *settingsRepository) DeleteSetting(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSetting, key); err != nil {
		log.Err(err).Str("func", "*settingsRepository.DeleteSetting").Str("key", key).Msg("error deleting setting")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
