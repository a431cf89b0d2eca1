// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

// Package scheduler keeps every entry's status consistent with its age.
// A reconciliation pass scans all entries, derives the target status from
// the creation timestamp and writes back only the changed records, so an
// unchanged entry never sees updatedAt churn.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/limitclean/limitclean/internal/config"
	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/models"
)

// Notification is emitted after a completed reconciliation pass. It is
// the scheduler's only observable output besides the persisted mutations.
type Notification struct {
	// ChangedCount is how many entries were rewritten during the pass.
	ChangedCount int
}

// DeriveStatus computes the status an entry of the given age must carry.
// Age is measured in whole elapsed days:
//
//	>= 180 days  Reprotocol
//	>=  30 days  Finalized
//	otherwise    Restricted
func DeriveStatus(createdAt, now time.Time) models.EntryStatus {
	ageDays := int(now.Sub(createdAt).Hours() / 24)
	switch {
	case ageDays >= 180:
		return models.StatusReprotocol
	case ageDays >= 30:
		return models.StatusFinalized
	default:
		return models.StatusRestricted
	}
}

// Reconciler runs the reconciliation pass on a fixed interval and on
// explicit trigger. It is meant to run over its own storage connection,
// isolated from the interactive flow; concurrent writes to the same entry
// resolve by last-write-wins.
type Reconciler struct {
	entries store.EntryRepository

	interval  time.Duration
	opTimeout time.Duration

	// trigger is buffered with capacity 1: a trigger arriving during an
	// active pass is queued, further ones are coalesced into it.
	trigger       chan struct{}
	notifications chan Notification

	now func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewReconciler constructs an idle Reconciler over the given storages.
// Nothing runs until Start is called.
func NewReconciler(storages *store.Storages, cfg config.CoreScheduler, opTimeout time.Duration, logger *logger.Logger) *Reconciler {
	return &Reconciler{
		entries:       storages.Entries,
		interval:      cfg.ReconcileInterval,
		opTimeout:     opTimeout,
		trigger:       make(chan struct{}, 1),
		notifications: make(chan Notification, 16),
		now:           time.Now,
		logger:        logger,
	}
}

// Start launches the background loop: one pass per interval tick and one
// per queued trigger, never concurrently. It stops any previously running
// loop first. The loop exits when ctx is cancelled or Stop is called.
func (r *Reconciler) Start(ctx context.Context) {
	r.Stop()

	r.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		t := time.NewTicker(r.interval)
		defer t.Stop()

		r.logger.Info().Dur("interval", r.interval).Msg("reconciliation scheduler started")

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
			case <-r.trigger:
			}

			r.runOnce(loopCtx)
		}
	}()
}

// Stop cancels the background loop and blocks until it has exited. Safe to
// call when the loop is not running.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

// Trigger requests an extra pass outside the regular interval. Never
// blocks: a trigger arriving while one is already queued is coalesced.
func (r *Reconciler) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Notifications returns the stream of pass-completion notifications. The
// channel is buffered; when no one is draining it, notifications are
// dropped rather than stalling the scheduler.
func (r *Reconciler) Notifications() <-chan Notification {
	return r.notifications
}

// runOnce executes a pass and publishes its notification. Failures are
// logged and swallowed; an abandoned pass emits nothing and the next tick
// retries wholesale.
func (r *Reconciler) runOnce(ctx context.Context) {
	changed, err := r.RunPass(ctx)
	if err != nil {
		r.logger.Err(err).Msg("reconciliation pass abandoned")
		return
	}

	select {
	case r.notifications <- Notification{ChangedCount: changed}:
	default:
	}
}

// RunPass performs one reconciliation pass: read every entry, derive the
// target status, rewrite only the records whose status changed. A failed
// record is skipped and the pass continues; the count of rewritten records
// is returned. Each storage call is bounded by the configured timeout.
func (r *Reconciler) RunPass(ctx context.Context) (int, error) {
	log := r.logger

	readCtx, cancel := r.opContext(ctx)
	entries, err := r.entries.GetAllEntries(readCtx)
	cancel()
	if err != nil {
		return 0, err
	}

	now := r.now()
	changed := 0
	for _, entry := range entries {
		target := DeriveStatus(entry.CreatedAt, now)
		if target == entry.Status {
			continue
		}

		writeCtx, cancel := r.opContext(ctx)
		err := r.entries.UpdateEntryStatus(writeCtx, entry.ID, target, now.UTC())
		cancel()
		if err != nil {
			log.Err(err).Str("id", entry.ID).Str("status", string(target)).Msg("skipping entry, status update failed")
			continue
		}
		changed++
	}

	log.Debug().Int("total", len(entries)).Int("changed", changed).Msg("reconciliation pass finished")
	return changed, nil
}

func (r *Reconciler) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opTimeout)
}
