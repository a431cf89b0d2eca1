package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitclean/limitclean/internal/config"
	"github.com/limitclean/limitclean/internal/crypto"
	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/internal/utils"
	"github.com/limitclean/limitclean/models"
)

func openTestStorages(t *testing.T) *store.Storages {
	t.Helper()

	st := store.NewStore(config.CoreStorage{
		DSN: filepath.Join(t.TempDir(), "limitclean_test.db"),
	}, logger.Nop())

	storages, err := st.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return storages
}

func testAuthConfig() config.CoreAuth {
	return config.CoreAuth{TokenIssuer: "limitclean", TokenDuration: time.Hour}
}

func newTestAuthService(t *testing.T, storages *store.Storages) *authService {
	t.Helper()
	return NewAuthService(storages, testAuthConfig(), logger.Nop()).(*authService)
}

func registerTestUser(t *testing.T, auth *authService, username, password string) models.User {
	t.Helper()
	user, err := auth.Register(context.Background(), RegistrationData{
		Name:     "Test User",
		Username: username,
		Password: password,
		Role:     models.RoleSeller,
	})
	require.NoError(t, err)
	return user
}

func TestAuth_RegisterLoginRoundTrip(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	ctx := context.Background()

	loginTime := time.Now()
	auth.now = func() time.Time { return loginTime }

	registered := registerTestUser(t, auth, "maria", "s3cret-pass")
	require.NotEmpty(t, registered.ID)
	assert.NotEqual(t, "s3cret-pass", registered.PassHash)

	session, err := auth.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	assert.Equal(t, registered.ID, session.User.ID)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.Equal(loginTime.Add(time.Hour)), "session must expire exactly one hour after login")

	assert.True(t, auth.IsAuthenticated())
	current, ok := auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "maria", current.Username)
}

func TestAuth_Register_InvalidData(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)

	_, err := auth.Register(context.Background(), RegistrationData{Username: "", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = auth.Register(context.Background(), RegistrationData{Username: "x", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = auth.Register(context.Background(), RegistrationData{Username: "x", Password: "y", Role: "intern"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuth_Register_DuplicateUsername(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)

	registerTestUser(t, auth, "maria", "pass-1")

	_, err := auth.Register(context.Background(), RegistrationData{Username: "maria", Password: "pass-2", Role: models.RoleSeller})
	assert.ErrorIs(t, err, store.ErrConstraintViolation)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	ctx := context.Background()

	registerTestUser(t, auth, "maria", "right-pass")

	// unknown username and wrong password must be indistinguishable
	_, err := auth.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "maria", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.False(t, auth.IsAuthenticated())
}

func TestAuth_Login_LockoutAfterFiveFailures(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	ctx := context.Background()

	current := time.Now()
	auth.now = func() time.Time { return current }

	registerTestUser(t, auth, "maria", "right-pass")

	for i := 0; i < 5; i++ {
		_, err := auth.Login(ctx, "maria", "wrong-pass")
		// the fifth failure arms the window but still reports bad credentials
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// correct credentials are rejected without a password check while locked
	_, err := auth.Login(ctx, "maria", "right-pass")
	assert.ErrorIs(t, err, ErrThrottled)

	current = current.Add(14 * time.Second)
	_, err = auth.Login(ctx, "maria", "right-pass")
	assert.ErrorIs(t, err, ErrThrottled)

	current = current.Add(2 * time.Second)
	_, err = auth.Login(ctx, "maria", "right-pass")
	assert.NoError(t, err, "window must open again after 15 seconds")
}

func TestAuth_Login_SuccessResetsCounter(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	ctx := context.Background()

	registerTestUser(t, auth, "maria", "right-pass")

	for i := 0; i < 4; i++ {
		_, err := auth.Login(ctx, "maria", "wrong-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := auth.Login(ctx, "maria", "right-pass")
	require.NoError(t, err)

	// the counter restarted from zero: four more failures stay unlocked
	for i := 0; i < 4; i++ {
		_, err := auth.Login(ctx, "maria", "wrong-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err = auth.Login(ctx, "maria", "right-pass")
	assert.NoError(t, err)
}

func TestAuth_LogoutClearsSessionAndMirror(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	ctx := context.Background()

	registerTestUser(t, auth, "maria", "s3cret-pass")
	_, err := auth.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx))

	assert.False(t, auth.IsAuthenticated())
	_, err = storages.Settings.GetSetting(ctx, models.SettingSession)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// logout without a session is fine
	assert.NoError(t, auth.Logout(ctx))
}

func TestAuth_RestoreSession(t *testing.T) {
	storages := openTestStorages(t)
	ctx := context.Background()

	first := newTestAuthService(t, storages)
	registerTestUser(t, first, "maria", "s3cret-pass")
	issued, err := first.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	// a fresh instance over the same storage simulates restart
	second := newTestAuthService(t, storages)
	restored, err := second.RestoreSession(ctx)
	require.NoError(t, err)

	assert.Equal(t, issued.Token, restored.Token)
	assert.Equal(t, "maria", restored.User.Username)
	assert.True(t, second.IsAuthenticated())
}

func TestAuth_RestoreSession_NoMirror(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)

	_, err := auth.RestoreSession(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAuth_RestoreSession_ExpiredMirrorDiscarded(t *testing.T) {
	storages := openTestStorages(t)
	ctx := context.Background()

	first := newTestAuthService(t, storages)
	registerTestUser(t, first, "maria", "s3cret-pass")
	_, err := first.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	second := newTestAuthService(t, storages)
	second.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = second.RestoreSession(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = storages.Settings.GetSetting(ctx, models.SettingSession)
	assert.ErrorIs(t, err, store.ErrNotFound, "stale mirror must be cleared")
}

func TestAuth_RestoreSession_CorruptMirrorDiscarded(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	ctx := context.Background()

	require.NoError(t, storages.Settings.SetSetting(ctx, models.SettingSession, "{not json"))

	_, err := auth.RestoreSession(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = storages.Settings.GetSetting(ctx, models.SettingSession)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAuth_RestoreSession_TamperedTokenDiscarded(t *testing.T) {
	storages := openTestStorages(t)
	ctx := context.Background()

	first := newTestAuthService(t, storages)
	registerTestUser(t, first, "maria", "s3cret-pass")
	session, err := first.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	stored := models.StoredSession{
		Token:     session.Token + "x",
		UserID:    session.User.ID,
		ExpiresAt: session.ExpiresAt,
	}
	encoded, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, storages.Settings.SetSetting(ctx, models.SettingSession, string(encoded)))

	second := newTestAuthService(t, storages)
	_, err = second.RestoreSession(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAuth_RestoreSession_OrphanedUserDiscarded(t *testing.T) {
	storages := openTestStorages(t)
	ctx := context.Background()

	first := newTestAuthService(t, storages)
	registerTestUser(t, first, "maria", "s3cret-pass")
	_, err := first.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	// forge a mirror for a user that does not exist, signed with the real
	// installation key so only the user lookup can reject it
	encodedKey, err := storages.Settings.GetSetting(ctx, models.SettingSigningKey)
	require.NoError(t, err)
	key, err := crypto.DecodeSigningKey(encodedKey)
	require.NoError(t, err)

	token, err := utils.GenerateJWTToken("limitclean", "ghost", models.RoleAdmin, time.Hour, key)
	require.NoError(t, err)

	stored := models.StoredSession{
		Token:     token.SignedString,
		UserID:    "ghost",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	encoded, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, storages.Settings.SetSetting(ctx, models.SettingSession, string(encoded)))

	second := newTestAuthService(t, storages)
	_, err = second.RestoreSession(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAuth_HasAnyRole(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	ctx := context.Background()

	assert.False(t, auth.HasAnyRole(models.RoleAdmin))

	registerTestUser(t, auth, "maria", "s3cret-pass")
	_, err := auth.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	assert.True(t, auth.HasAnyRole())
	assert.True(t, auth.HasAnyRole(models.RoleSeller))
	assert.True(t, auth.HasAnyRole(models.RoleAdmin, models.RoleSeller))
	assert.False(t, auth.HasAnyRole(models.RoleAdmin))
}

func TestAuth_UpdateSessionUser(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	ctx := context.Background()

	// no-op without a session
	require.NoError(t, auth.UpdateSessionUser(ctx, models.User{ID: "u-1"}))

	user := registerTestUser(t, auth, "maria", "s3cret-pass")
	_, err := auth.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	user.Name = "Maria Updated"
	require.NoError(t, auth.UpdateSessionUser(ctx, user))

	current, ok := auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Maria Updated", current.Name)
}

func TestAuth_SigningKeyStableAcrossInstances(t *testing.T) {
	storages := openTestStorages(t)
	ctx := context.Background()

	first := newTestAuthService(t, storages)
	registerTestUser(t, first, "maria", "s3cret-pass")
	_, err := first.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	keyAfterFirst, err := storages.Settings.GetSetting(ctx, models.SettingSigningKey)
	require.NoError(t, err)

	second := newTestAuthService(t, storages)
	_, err = second.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	keyAfterSecond, err := storages.Settings.GetSetting(ctx, models.SettingSigningKey)
	require.NoError(t, err)
	assert.Equal(t, keyAfterFirst, keyAfterSecond, "signing key is generated once per installation")
}
