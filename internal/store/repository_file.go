package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/models"
)

// fileRepository is the SQLite-backed implementation of [FileRepository].
// Payloads are stored inline as blobs; lookups go through the non-unique
// entry_id and ticket_id indexes.
type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFileRepository constructs a [FileRepository] backed by the provided
// database connection and logger.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

// PutFile inserts-or-replaces a file record keyed by its ID.
func (r *fileRepository) PutFile(ctx context.Context, file models.FileRecord) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, putFile,
		file.ID, file.EntryID, file.TicketID, file.Name, file.Mime, file.Size, file.Blob)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.PutFile").Str("id", file.ID).Msg("error upserting file")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetAllFiles returns every file record, payloads included.
func (r *fileRepository) GetAllFiles(ctx context.Context) ([]models.FileRecord, error) {
	return r.queryFiles(ctx, getAllFiles)
}

// GetFilesByEntryID returns the files attached to one entry.
func (r *fileRepository) GetFilesByEntryID(ctx context.Context, entryID string) ([]models.FileRecord, error) {
	return r.queryFiles(ctx, getFilesByEntryID, entryID)
}

// GetFilesByTicketID returns the files attached to one ticket.
func (r *fileRepository) GetFilesByTicketID(ctx context.Context, ticketID string) ([]models.FileRecord, error) {
	return r.queryFiles(ctx, getFilesByTicketID, ticketID)
}

// GetFile returns one file record with its payload. Returns ErrNotFound
// when no record has the given id.
func (r *fileRepository) GetFile(ctx context.Context, id string) (models.FileRecord, error) {
	log := logger.FromContext(ctx)

	var file models.FileRecord
	err := r.db.QueryRowContext(ctx, getFile, id).
		Scan(&file.ID, &file.EntryID, &file.TicketID, &file.Name, &file.Mime, &file.Size, &file.Blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FileRecord{}, fmt.Errorf("%w: file %q", ErrNotFound, id)
		}
		log.Err(err).Str("func", "*fileRepository.GetFile").Str("id", id).Msg("error querying file")
		return models.FileRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return file, nil
}

// DeleteFile removes one file record. Deleting an absent id is a no-op.
func (r *fileRepository) DeleteFile(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteFile, id); err != nil {
		log.Err(err).Str("func", "*fileRepository.DeleteFile").Str("id", id).Msg("error deleting file")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *fileRepository) queryFiles(ctx context.Context, query string, args ...any) ([]models.FileRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.queryFiles").Msg("error querying files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var files []models.FileRecord
	for rows.Next() {
		var file models.FileRecord
		if err := rows.Scan(&file.ID, &file.EntryID, &file.TicketID, &file.Name, &file.Mime, &file.Size, &file.Blob); err != nil {
			log.Err(err).Str("func", "*fileRepository.queryFiles").Msg("error scanning file rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file rows: %w", err)
	}

	return files, nil
}
