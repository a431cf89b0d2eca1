// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/limitclean/limitclean/internal/crypto"
	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/internal/utils"
	"github.com/limitclean/limitclean/models"
)

// Initial administrator account created on first run.
const (
	seedAdminName     = "Kaliel"
	seedAdminEmail    = "kaliel@example.com"
	seedAdminUsername = "Kaliel"
	seedAdminPassword = "kaskolk14"
	seedAdminPhone    = "+55 11 99999-9999"
)

// EnsureAdminSeed inserts the initial administrator account on the first
// run of an installation. The "seeded" settings flag guards repetition: a
// seeded installation is never touched again, even if the admin account
// was later modified or removed.
func EnsureAdminSeed(ctx context.Context, storages *store.Storages, log *logger.Logger) error {
	_, err := storages.Settings.GetSetting(ctx, models.SettingSeeded)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("error reading seed flag: %w", err)
	}

	passHash, err := crypto.NewPasswordHasher().Hash(seedAdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing seed admin password: %w", err)
	}

	admin := models.User{
		ID:        utils.NewUUIDGenerator().Generate(),
		Name:      seedAdminName,
		Email:     seedAdminEmail,
		Username:  seedAdminUsername,
		Role:      models.RoleAdmin,
		PassHash:  passHash,
		Phone:     seedAdminPhone,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := storages.Users.CreateUser(ctx, admin); err != nil {
		// a pre-existing admin account means a previous seed partially
		// completed; only the flag is missing
		if !errors.Is(err, store.ErrConstraintViolation) {
			return fmt.Errorf("error creating seed admin: %w", err)
		}
		log.Warn().Msg("seed admin already present, recording flag only")
	} else {
		log.Info().Str("username", seedAdminUsername).Msg("seed admin created")
	}

	if err := storages.Settings.SetSetting(ctx, models.SettingSeeded, "true"); err != nil {
		return fmt.Errorf("error recording seed flag: %w", err)
	}

	return nil
}
