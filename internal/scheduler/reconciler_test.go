package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitclean/limitclean/internal/config"
	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/models"
)

func TestDeriveStatus_Boundaries(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      models.EntryStatus
	}{
		{"brand new", now, models.StatusRestricted},
		{"29 days old", now.AddDate(0, 0, -29), models.StatusRestricted},
		{"exactly 30 days old", now.AddDate(0, 0, -30), models.StatusFinalized},
		{"179 days old", now.AddDate(0, 0, -179), models.StatusFinalized},
		{"exactly 180 days old", now.AddDate(0, 0, -180), models.StatusReprotocol},
		{"365 days old", now.AddDate(0, 0, -365), models.StatusReprotocol},
		{"created in the future", now.Add(time.Hour), models.StatusRestricted},
		{"just under 30 days", now.AddDate(0, 0, -30).Add(time.Minute), models.StatusRestricted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.createdAt, now))
		})
	}
}

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

func newTestReconciler(t *testing.T, storages *store.Storages, interval time.Duration) *Reconciler {
	t.Helper()
	return NewReconciler(storages, config.CoreScheduler{ReconcileInterval: interval}, time.Second, logger.Nop())
}

func seedEntry(t *testing.T, storages *store.Storages, id string, status models.EntryStatus, ageDays int) models.Entry {
	t.Helper()

	created := time.Now().UTC().AddDate(0, 0, -ageDays).Truncate(time.Second)
	entry := models.Entry{
		ID:        id,
		Type:      models.EntryTypeCleaning,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, storages.Entries.PutEntry(context.Background(), entry))
	return entry
}

func TestRunPass_WritesOnlyDeltas(t *testing.T) {
	storages := openTestStorages(t)
	r := newTestReconciler(t, storages, time.Minute)
	ctx := context.Background()

	fresh := seedEntry(t, storages, "fresh", models.StatusRestricted, 5)
	stale := seedEntry(t, storages, "stale", models.StatusRestricted, 45)
	old := seedEntry(t, storages, "old", models.StatusRestricted, 200)

	changed, err := r.RunPass(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	got, err := storages.Entries.GetEntry(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRestricted, got.Status)
	assert.True(t, fresh.UpdatedAt.Equal(got.UpdatedAt), "unchanged entries are never rewritten")

	got, err = storages.Entries.GetEntry(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinalized, got.Status)
	assert.True(t, got.UpdatedAt.After(stale.UpdatedAt))

	got, err = storages.Entries.GetEntry(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReprotocol, got.Status)
	assert.True(t, old.CreatedAt.Equal(got.CreatedAt), "createdAt never changes")
}

func TestRunPass_SecondPassIsIdempotent(t *testing.T) {
	storages := openTestStorages(t)
	r := newTestReconciler(t, storages, time.Minute)
	ctx := context.Background()

	seedEntry(t, storages, "e-1", models.StatusRestricted, 45)
	seedEntry(t, storages, "e-2", models.StatusRestricted, 200)

	changed, err := r.RunPass(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, changed)

	afterFirst, err := storages.Entries.GetEntry(ctx, "e-1")
	require.NoError(t, err)

	changed, err = r.RunPass(ctx)
	require.NoError(t, err)
	assert.Zero(t, changed, "immediate rerun must produce zero writes")

	afterSecond, err := storages.Entries.GetEntry(ctx, "e-1")
	require.NoError(t, err)
	assert.True(t, afterFirst.UpdatedAt.Equal(afterSecond.UpdatedAt))
}

func TestRunPass_OverwritesDirectStatusWrites(t *testing.T) {
	storages := openTestStorages(t)
	r := newTestReconciler(t, storages, time.Minute)
	ctx := context.Background()

	// a direct write put the wrong status on an old record; the pass
	// brings it back in line with its age
	seedEntry(t, storages, "e-1", models.StatusReprotocol, 5)

	changed, err := r.RunPass(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err := storages.Entries.GetEntry(ctx, "e-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRestricted, got.Status)
}

func TestRunPass_EmptyStore(t *testing.T) {
	storages := openTestStorages(t)
	r := newTestReconciler(t, storages, time.Minute)

	changed, err := r.RunPass(context.Background())
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestReconciler_TriggerRunsPassAndNotifies(t *testing.T) {
	storages := openTestStorages(t)
	// interval long enough that only the trigger can fire during the test
	r := newTestReconciler(t, storages, time.Hour)
	ctx := context.Background()

	seedEntry(t, storages, "e-1", models.StatusRestricted, 45)

	r.Start(ctx)
	defer r.Stop()

	r.Trigger()

	select {
	case n := <-r.Notifications():
		assert.Equal(t, 1, n.ChangedCount)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for pass notification")
	}

	got, err := storages.Entries.GetEntry(ctx, "e-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinalized, got.Status)
}

func TestReconciler_TriggerNeverBlocks(t *testing.T) {
	storages := openTestStorages(t)
	r := newTestReconciler(t, storages, time.Hour)

	// queued triggers coalesce even with no loop running
	for i := 0; i < 10; i++ {
		r.Trigger()
	}
}

func TestReconciler_StopWithoutStart(t *testing.T) {
	storages := openTestStorages(t)
	r := newTestReconciler(t, storages, time.Hour)

	r.Stop()
}
