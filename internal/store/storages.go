// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package store

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/limitclean/limitclean/internal/config"
	"github.com/limitclean/limitclean/internal/logger"
)

// Storages groups all local storage repositories into a single value that
// can be passed around the service layer.
type Storages struct {
	Users    UserRepository
	Entries  EntryRepository
	Profiles ProfileRepository
	Tickets  TicketRepository
	Files    FileRepository
	Settings SettingsRepository
}

// Store owns the local database lifecycle. Opening is idempotent: the
// first call connects and migrates, later calls return the same
// [Storages] value, and concurrent callers share a single in-flight
// initialization instead of racing on the file.
type Store struct {
	logger *logger.Logger
	cfg    config.CoreStorage

	group    singleflight.Group
	mu       sync.RWMutex
	db       *DB
	storages *Storages
}

// NewStore constructs a closed Store. No connection is made until Open.
func NewStore(cfg config.CoreStorage, logger *logger.Logger) *Store {
	return &Store{
		cfg:    cfg,
		logger: logger,
	}
}

// Open connects to the local SQLite database, runs pending schema
// migrations and wires every repository. It is safe to call from multiple
// goroutines; all callers observe the same result. A failed attempt leaves
// the Store closed so the next call retries from scratch.
func (s *Store) Open(ctx context.Context) (*Storages, error) {
	s.mu.RLock()
	if s.storages != nil {
		defer s.mu.RUnlock()
		return s.storages, nil
	}
	s.mu.RUnlock()

	res, err, _ := s.group.Do("open", func() (any, error) {
		s.mu.RLock()
		opened := s.storages
		s.mu.RUnlock()
		if opened != nil {
			return opened, nil
		}

		s.logger.Info().Str("dsn", s.cfg.DSN).Msg("opening local storage...")

		db, err := NewConnectSQLite(ctx, s.cfg.DSN, s.logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}

		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		storages := &Storages{
			Users:    NewUserRepository(db, s.logger),
			Entries:  NewEntryRepository(db, s.logger),
			Profiles: NewProfileRepository(db, s.logger),
			Tickets:  NewTicketRepository(db, s.logger),
			Files:    NewFileRepository(db, s.logger),
			Settings: NewSettingsRepository(db, s.logger),
		}

		s.mu.Lock()
		s.db = db
		s.storages = storages
		s.mu.Unlock()

		return storages, nil
	})
	if err != nil {
		return nil, err
	}

	return res.(*Storages), nil
}

// Close releases the database handle. After Close the Store can be opened
// again.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	s.storages = nil
	return err
}
