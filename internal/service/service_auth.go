// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/limitclean/limitclean/internal/config"
	"github.com/limitclean/limitclean/internal/crypto"
	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/internal/utils"
	"github.com/limitclean/limitclean/internal/validators"
	"github.com/limitclean/limitclean/models"
)

const (
	// maxFailedAttempts is how many consecutive failed logins arm the
	// lockout window.
	maxFailedAttempts = 5

	// lockoutWindow is how long further attempts are rejected after the
	// limit is reached. The counter resets when the window is armed.
	lockoutWindow = 15 * time.Second
)

// authState is the mutable session and throttling state owned by one
// authService instance. Guarded by mu; never package-level.
type authState struct {
	mu             sync.Mutex
	session        *models.Session
	failedAttempts int
	lockedUntil    time.Time
	signKey        []byte
}

// authService is the concrete implementation of [AuthService].
//
// All durable state lives in the storage layer: the user accounts, the
// session mirror (settings slot "session") and the signing key (settings
// slot "signing_key"). The lockout counters are volatile and reset on
// restart.
type authService struct {
	users    store.UserRepository
	settings store.SettingsRepository

	hasher    crypto.PasswordHasher
	uuidGen   *utils.UUIDGenerator
	validator validators.Validator

	tokenIssuer   string
	tokenDuration time.Duration

	state authState

	// now is the clock; replaceable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given storages
// and populated with token parameters from cfg.
func NewAuthService(storages *store.Storages, cfg config.CoreAuth, logger *logger.Logger) AuthService {
	return &authService{
		users:         storages.Users,
		settings:      storages.Settings,
		hasher:        crypto.NewPasswordHasher(),
		uuidGen:       utils.NewUUIDGenerator(),
		validator:     validators.NewRecordValidator(),
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           time.Now,
		logger:        logger,
	}
}

// Register creates a new user account with a freshly hashed password.
//
// Returns ErrInvalidDataProvided if the username or password is empty or
// the role is unknown, or store.ErrConstraintViolation (wrapped) if the
// username is taken.
func (a *authService) Register(ctx context.Context, data RegistrationData) (models.User, error) {
	log := logger.FromContext(ctx)

	if data.Username == "" || data.Password == "" {
		log.Error().Str("username", data.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passHash, err := a.hasher.Hash(data.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{
		ID:        a.uuidGen.Generate(),
		Name:      data.Name,
		Email:     data.Email,
		Username:  data.Username,
		Role:      data.Role,
		PassHash:  passHash,
		Phone:     data.Phone,
		CreatedAt: a.now().UTC(),
	}

	if err = a.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", data.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// Login authenticates a user and establishes a session.
//
// The lockout window is checked before anything else; while it is active
// the password is never inspected. An unknown username and a wrong
// password both count as a failed attempt and both surface as
// ErrInvalidCredentials. The fifth consecutive failure arms the window
// and resets the counter. Success resets the throttling state, issues a
// signed token expiring after the configured duration, holds the session
// in memory and mirrors it to durable storage.
func (a *authService) Login(ctx context.Context, username, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	a.state.mu.Lock()
	defer a.state.mu.Unlock()

	now := a.now()

	if now.Before(a.state.lockedUntil) {
		log.Warn().Str("username", username).Time("lockedUntil", a.state.lockedUntil).Msg("login throttled")
		return models.Session{}, ErrThrottled
	}

	if username == "" || password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	user, err := a.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.recordFailedAttempt(now)
			log.Warn().Str("username", username).Msg("login failed: unknown username")
			return models.Session{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.Session{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.Verify(password, user.PassHash) {
		a.recordFailedAttempt(now)
		log.Warn().Str("username", username).Msg("login failed: wrong password")
		return models.Session{}, ErrInvalidCredentials
	}

	a.state.failedAttempts = 0
	a.state.lockedUntil = time.Time{}

	signKey, err := a.loadSigningKeyLocked(ctx)
	if err != nil {
		return models.Session{}, err
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Role, a.tokenDuration, signKey)
	if err != nil {
		log.Err(err).Str("username", username).Msg("token issuance failed")
		return models.Session{}, fmt.Errorf("token issuance failed: %w", err)
	}

	session := models.Session{
		Token:     token.SignedString,
		User:      user,
		ExpiresAt: now.Add(a.tokenDuration),
	}

	if err := a.persistSession(ctx, session); err != nil {
		return models.Session{}, err
	}
	a.state.session = &session

	log.Info().Str("username", username).Time("expiresAt", session.ExpiresAt).Msg("login successful")
	return session, nil
}

// recordFailedAttempt implements the failed-attempt policy. Caller holds
// the state mutex.
func (a *authService) recordFailedAttempt(now time.Time) {
	a.state.failedAttempts++
	if a.state.failedAttempts >= maxFailedAttempts {
		a.state.lockedUntil = now.Add(lockoutWindow)
		a.state.failedAttempts = 0
	}
}

// Logout clears the in-memory session and its durable mirror. Safe to call
// without an active session.
func (a *authService) Logout(ctx context.Context) error {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()

	a.state.session = nil

	if err := a.settings.DeleteSetting(ctx, models.SettingSession); err != nil {
		return fmt.Errorf("error clearing session mirror: %w", err)
	}

	return nil
}

// RestoreSession reads the durable session mirror and reinstates the
// in-memory session. The mirrored token is re-verified against the
// persisted signing key, so a tampered or expired mirror is discarded the
// same way as an orphaned one.
func (a *authService) RestoreSession(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	a.state.mu.Lock()
	defer a.state.mu.Unlock()

	raw, err := a.settings.GetSetting(ctx, models.SettingSession)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Session{}, ErrNoSession
		}
		return models.Session{}, fmt.Errorf("error reading session mirror: %w", err)
	}

	var stored models.StoredSession
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Err(err).Msg("session mirror corrupted, discarding")
		return models.Session{}, a.discardMirror(ctx)
	}

	signKey, err := a.loadSigningKeyLocked(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if _, err := utils.ValidateAndParseJWTToken(stored.Token, signKey, a.tokenIssuer); err != nil {
		log.Warn().Err(err).Msg("mirrored token failed verification, discarding")
		return models.Session{}, a.discardMirror(ctx)
	}

	if !a.now().Before(stored.ExpiresAt) {
		log.Info().Time("expiresAt", stored.ExpiresAt).Msg("mirrored session expired, discarding")
		return models.Session{}, a.discardMirror(ctx)
	}

	user, err := a.users.FindUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn().Str("userID", stored.UserID).Msg("mirrored session user missing, discarding")
			return models.Session{}, a.discardMirror(ctx)
		}
		return models.Session{}, fmt.Errorf("error fetching session user: %w", err)
	}

	session := models.Session{
		Token:     stored.Token,
		User:      user,
		ExpiresAt: stored.ExpiresAt,
	}
	a.state.session = &session

	log.Info().Str("username", user.Username).Msg("session restored")
	return session, nil
}

// IsAuthenticated reports whether an in-memory session is active.
func (a *authService) IsAuthenticated() bool {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()
	return a.state.session != nil
}

// CurrentUser returns the cached user of the active session.
func (a *authService) CurrentUser() (models.User, bool) {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()

	if a.state.session == nil {
		return models.User{}, false
	}
	return a.state.session.User, true
}

// HasAnyRole reports whether the active session's user holds one of the
// given roles. With no roles given, any active session qualifies.
func (a *authService) HasAnyRole(roles ...models.Role) bool {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()

	if a.state.session == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if a.state.session.User.Role == role {
			return true
		}
	}
	return false
}

// UpdateSessionUser replaces the cached user inside the current session
// and re-persists the mirror. No-op without a session.
func (a *authService) UpdateSessionUser(ctx context.Context, user models.User) error {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()

	if a.state.session == nil {
		return nil
	}

	a.state.session.User = user
	return a.persistSession(ctx, *a.state.session)
}

// persistSession writes the durable mirror. Caller holds the state mutex.
func (a *authService) persistSession(ctx context.Context, session models.Session) error {
	stored := models.StoredSession{
		Token:     session.Token,
		UserID:    session.User.ID,
		ExpiresAt: session.ExpiresAt,
	}

	encoded, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("error encoding session mirror: %w", err)
	}

	if err := a.settings.SetSetting(ctx, models.SettingSession, string(encoded)); err != nil {
		return fmt.Errorf("error persisting session mirror: %w", err)
	}

	return nil
}

// discardMirror drops a stale or invalid mirror and reports ErrNoSession.
// Caller holds the state mutex.
func (a *authService) discardMirror(ctx context.Context) error {
	if err := a.settings.DeleteSetting(ctx, models.SettingSession); err != nil {
		return fmt.Errorf("error clearing stale session mirror: %w", err)
	}
	return ErrNoSession
}

// loadSigningKeyLocked returns the installation's signing key, generating
// and persisting it on first use. Regenerating the key would invalidate
// every previously issued token, so the persisted value is authoritative.
// Caller holds the state mutex.
func (a *authService) loadSigningKeyLocked(ctx context.Context) ([]byte, error) {
	if a.state.signKey != nil {
		return a.state.signKey, nil
	}

	encoded, err := a.settings.GetSetting(ctx, models.SettingSigningKey)
	if err == nil {
		key, decodeErr := crypto.DecodeSigningKey(encoded)
		if decodeErr != nil {
			return nil, fmt.Errorf("error decoding persisted signing key: %w", decodeErr)
		}
		a.state.signKey = key
		return key, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("error reading signing key: %w", err)
	}

	key, err := crypto.GenerateSigningKey()
	if err != nil {
		return nil, fmt.Errorf("error generating signing key: %w", err)
	}
	if err := a.settings.SetSetting(ctx, models.SettingSigningKey, crypto.EncodeSigningKey(key)); err != nil {
		return nil, fmt.Errorf("error persisting signing key: %w", err)
	}

	a.state.signKey = key
	return key, nil
}
