package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitclean/limitclean/models"
)

func TestProfileRepository_RepresentativeRoundTrip(t *testing.T) {
	storages := newTestStorages(t)
	ctx := context.Background()

	rep := models.Representative{ID: "r-1", UserID: "u-1", DefaultDiscount: 150}
	require.NoError(t, storages.Profiles.PutRepresentative(ctx, rep))

	got, err := storages.Profiles.GetRepresentativeByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, rep, got)

	_, err = storages.Profiles.GetRepresentativeByUserID(ctx, "u-2")
	assert.ErrorIs(t, err, ErrNotFound)

	rep.DefaultDiscount = 200
	require.NoError(t, storages.Profiles.PutRepresentative(ctx, rep))

	got, err = storages.Profiles.GetRepresentativeByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, float64(200), got.DefaultDiscount)
}

func TestProfileRepository_RepresentativeUserIDUnique(t *testing.T) {
	storages := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, storages.Profiles.PutRepresentative(ctx, models.Representative{ID: "r-1", UserID: "u-1"}))

	err := storages.Profiles.PutRepresentative(ctx, models.Representative{ID: "r-2", UserID: "u-1"})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestProfileRepository_SellersByRepresentative(t *testing.T) {
	storages := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, storages.Profiles.PutSeller(ctx, models.Seller{ID: "s-1", UserID: "u-1", RepresentativeID: "r-1", SellerDiscount: 50}))
	require.NoError(t, storages.Profiles.PutSeller(ctx, models.Seller{ID: "s-2", UserID: "u-2", RepresentativeID: "r-1"}))
	require.NoError(t, storages.Profiles.PutSeller(ctx, models.Seller{ID: "s-3", UserID: "u-3", RepresentativeID: "r-2"}))

	mine, err := storages.Profiles.GetSellersByRepresentativeID(ctx, "r-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := storages.Profiles.GetSellersByRepresentativeID(ctx, "r-9")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := storages.Profiles.GetAllSellers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProfileRepository_DeleteSeller(t *testing.T) {
	storages := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, storages.Profiles.PutSeller(ctx, models.Seller{ID: "s-1", UserID: "u-1"}))
	require.NoError(t, storages.Profiles.DeleteSeller(ctx, "s-1"))
	require.NoError(t, storages.Profiles.DeleteSeller(ctx, "s-1"))

	_, err := storages.Profiles.GetSellerByUserID(ctx, "u-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
