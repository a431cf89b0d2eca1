// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

// Package app wires the application runtime: it opens the local storage,
// seeds the initial administrator, restores the previous session and runs
// the background reconciliation scheduler until shutdown.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/limitclean/limitclean/internal/config"
	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/scheduler"
	"github.com/limitclean/limitclean/internal/service"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/internal/workers"
)

// App owns the full process lifecycle. The interactive flow and the
// scheduler run over separate storage connections to the same database
// file; concurrent writes to the same entry resolve by last-write-wins.
type App struct {
	cfg *config.CoreConfig
	log *logger.Logger

	store      *store.Store
	schedStore *store.Store

	Services   *service.Services
	Reconciler *scheduler.Reconciler

	workers *workers.Workers
}

// NewApp opens the storage layer, seeds the initial administrator account
// and wires the service layer and the reconciliation scheduler. Nothing
// runs in the background until Run is called.
func NewApp(ctx context.Context, cfg *config.CoreConfig, log *logger.Logger) (*App, error) {
	mainStore := store.NewStore(cfg.Storage, log)
	storages, err := mainStore.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	if err := service.EnsureAdminSeed(ctx, storages, log); err != nil {
		return nil, fmt.Errorf("admin seed: %w", err)
	}

	// the scheduler gets its own connection, isolated from the
	// interactive flow
	schedStore := store.NewStore(cfg.Storage, log.GetChildLogger())
	schedStorages, err := schedStore.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open scheduler storage: %w", err)
	}

	services := service.NewServices(storages, cfg, log)
	reconciler := scheduler.NewReconciler(schedStorages, cfg.Scheduler, cfg.Storage.OpTimeout, log)

	return &App{
		cfg:        cfg,
		log:        log,
		store:      mainStore,
		schedStore: schedStore,
		Services:   services,
		Reconciler: reconciler,
		workers:    workers.NewWorkers(reconciler),
	}, nil
}

// Run restores the previous session, starts the background workers and
// blocks until ctx is cancelled, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.Services.Auth.RestoreSession(ctx); err != nil {
		if !errors.Is(err, service.ErrNoSession) {
			return fmt.Errorf("restore session: %w", err)
		}
		a.log.Info().Msg("no previous session to restore")
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	<-ctx.Done()
	a.log.Info().Msg("shutting down")

	return a.Close()
}

// Close releases both storage connections.
func (a *App) Close() error {
	var errs []error
	if err := a.schedStore.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close scheduler storage: %w", err))
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}
