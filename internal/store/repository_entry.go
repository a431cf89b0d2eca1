package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/models"
)

// entryColumns is the scan order shared by every entry query.
const entryColumns = "id, type, document, name, phone, owner_label, gross_amount, discount_amount, net_amount, status, done, created_at, updated_at, created_by"

// entryRepository is the SQLite-backed implementation of [EntryRepository].
// Fixed queries live in sql_queries.go; the dynamic listing queries are
// built with squirrel.
type entryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewEntryRepository constructs an [EntryRepository] backed by the provided
// database connection and logger.
func NewEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	logger.Debug().Msg("creating entry repository")
	return &entryRepository{
		db:     db,
		logger: logger,
	}
}

// PutEntry inserts-or-replaces an entry keyed by its ID. created_at is only
// written on insert; replacement keeps the original creation timestamp in
// place and overwrites everything else.
func (r *entryRepository) PutEntry(ctx context.Context, entry models.Entry) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, putEntry,
		entry.ID,
		entry.Type,
		entry.Document,
		entry.Name,
		entry.Phone,
		entry.OwnerLabel,
		entry.GrossAmount,
		entry.DiscountAmount,
		entry.NetAmount,
		entry.Status,
		entry.Done,
		entry.CreatedAt.UTC(),
		entry.UpdatedAt.UTC(),
		entry.CreatedBy,
	)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.PutEntry").Str("id", entry.ID).Msg("error upserting entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetEntry retrieves one entry by its primary key.
func (r *entryRepository) GetEntry(ctx context.Context, id string) (models.Entry, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getEntry, id)

	entry, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, ErrNotFound
		}
		log.Err(err).Str("func", "*entryRepository.GetEntry").Str("id", id).Msg("error scanning entry row")
		return models.Entry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

// GetAllEntries returns every entry record. This is the scheduler's read
// path: one full scan per reconciliation pass.
func (r *entryRepository) GetAllEntries(ctx context.Context) ([]models.Entry, error) {
	return r.queryEntries(ctx, getAllEntries)
}

// GetRecentEntries returns up to limit entries, newest first, using the
// created_at index.
func (r *entryRepository) GetRecentEntries(ctx context.Context, limit uint64) ([]models.Entry, error) {
	query, args, err := sq.Select(entryColumns).
		From("entries").
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEntries(ctx, query, args...)
}

// GetEntriesByPeriod returns entries created within [start, end].
func (r *entryRepository) GetEntriesByPeriod(ctx context.Context, start, end time.Time) ([]models.Entry, error) {
	query, args, err := sq.Select(entryColumns).
		From("entries").
		Where(sq.GtOrEq{"created_at": start.UTC()}).
		Where(sq.LtOrEq{"created_at": end.UTC()}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEntries(ctx, query, args...)
}

// UpdateEntryStatus rewrites only the status and updated_at columns of one
// entry. This is the scheduler's write path: unchanged entries are never
// rewritten, so the statement targets a single row by primary key.
func (r *entryRepository) UpdateEntryStatus(ctx context.Context, id string, status models.EntryStatus, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updateEntryStatus, status, updatedAt.UTC(), id)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.UpdateEntryStatus").Str("id", id).Msg("error updating entry status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteEntry removes one entry by its primary key. Deleting an absent key
// is a no-op, matching the collection contract.
func (r *entryRepository) DeleteEntry(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteEntry, id); err != nil {
		log.Err(err).Str("func", "*entryRepository.DeleteEntry").Str("id", id).Msg("error deleting entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ClearEntries removes every record from the entries collection.
func (r *entryRepository) ClearEntries(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, clearEntries); err != nil {
		log.Err(err).Str("func", "*entryRepository.ClearEntries").Msg("error clearing entries")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *entryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.queryEntries").Msg("error querying entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			log.Err(err).Str("func", "*entryRepository.queryEntries").Msg("error scanning entry rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return entries, nil
}

func scanEntry(scan func(dest ...any) error) (models.Entry, error) {
	var entry models.Entry
	err := scan(
		&entry.ID,
		&entry.Type,
		&entry.Document,
		&entry.Name,
		&entry.Phone,
		&entry.OwnerLabel,
		&entry.GrossAmount,
		&entry.DiscountAmount,
		&entry.NetAmount,
		&entry.Status,
		&entry.Done,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&entry.CreatedBy,
	)
	return entry, err
}
