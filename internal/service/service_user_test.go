package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/models"
)

func newTestUserService(t *testing.T, storages *store.Storages, auth AuthService) *userService {
	t.Helper()
	return NewUserService(storages, auth, logger.Nop()).(*userService)
}

func TestUserService_UpdateProfile_RehashesPassword(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	svc := newTestUserService(t, storages, auth)
	ctx := context.Background()

	user := registerTestUser(t, auth, "maria", "old-pass")

	newPass := "new-pass"
	updated, err := svc.UpdateUserProfile(ctx, user.ID, ProfileUpdate{Password: &newPass})
	require.NoError(t, err)
	assert.NotEqual(t, user.PassHash, updated.PassHash)
	assert.NotEqual(t, "new-pass", updated.PassHash)

	_, err = auth.Login(ctx, "maria", "old-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "maria", "new-pass")
	assert.NoError(t, err)
}

func TestUserService_UpdateProfile_RefreshesSessionUser(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	svc := newTestUserService(t, storages, auth)
	ctx := context.Background()

	user := registerTestUser(t, auth, "maria", "s3cret-pass")
	_, err := auth.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	name := "Maria Renamed"
	_, err = svc.UpdateUserProfile(ctx, user.ID, ProfileUpdate{Name: &name})
	require.NoError(t, err)

	current, ok := auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Maria Renamed", current.Name)
}

func TestUserService_UpdateProfile_OtherUserLeavesSessionAlone(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	svc := newTestUserService(t, storages, auth)
	ctx := context.Background()

	registerTestUser(t, auth, "maria", "s3cret-pass")
	other := registerTestUser(t, auth, "joao", "other-pass")
	_, err := auth.Login(ctx, "maria", "s3cret-pass")
	require.NoError(t, err)

	name := "Joao Renamed"
	_, err = svc.UpdateUserProfile(ctx, other.ID, ProfileUpdate{Name: &name})
	require.NoError(t, err)

	current, ok := auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "maria", current.Username)
}

func TestUserService_UpdateProfile_Missing(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	svc := newTestUserService(t, storages, auth)

	name := "x"
	_, err := svc.UpdateUserProfile(context.Background(), "missing", ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserService_SaveProfiles_AssignsIDs(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	svc := newTestUserService(t, storages, auth)
	ctx := context.Background()

	rep, err := svc.SaveRepresentative(ctx, models.Representative{UserID: "u-1", DefaultDiscount: 120})
	require.NoError(t, err)
	assert.NotEmpty(t, rep.ID)

	seller, err := svc.SaveSeller(ctx, models.Seller{UserID: "u-2", RepresentativeID: rep.ID, SellerDiscount: 60})
	require.NoError(t, err)
	assert.NotEmpty(t, seller.ID)

	reps, err := svc.ListRepresentatives(ctx)
	require.NoError(t, err)
	assert.Len(t, reps, 1)

	sellers, err := svc.ListSellers(ctx)
	require.NoError(t, err)
	assert.Len(t, sellers, 1)
}

func TestUserService_UsersWithRoles(t *testing.T) {
	storages := openTestStorages(t)
	auth := newTestAuthService(t, storages)
	svc := newTestUserService(t, storages, auth)
	ctx := context.Background()

	repUser := registerTestUser(t, auth, "rep", "pass-rep")
	sellerUser := registerTestUser(t, auth, "seller", "pass-seller")
	plainUser := registerTestUser(t, auth, "plain", "pass-plain")

	_, err := svc.SaveRepresentative(ctx, models.Representative{UserID: repUser.ID, DefaultDiscount: 100})
	require.NoError(t, err)
	_, err = svc.SaveSeller(ctx, models.Seller{UserID: sellerUser.ID, SellerDiscount: 50})
	require.NoError(t, err)

	joined, err := svc.UsersWithRoles(ctx)
	require.NoError(t, err)
	require.Len(t, joined, 3)

	byUsername := make(map[string]UserWithRoles, len(joined))
	for _, row := range joined {
		byUsername[row.Username] = row
	}

	require.NotNil(t, byUsername["rep"].Representative)
	assert.Equal(t, float64(100), byUsername["rep"].Representative.DefaultDiscount)
	assert.Nil(t, byUsername["rep"].Seller)

	require.NotNil(t, byUsername["seller"].Seller)
	assert.Nil(t, byUsername["seller"].Representative)

	assert.Nil(t, byUsername[plainUser.Username].Representative)
	assert.Nil(t, byUsername[plainUser.Username].Seller)
}
