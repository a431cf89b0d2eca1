package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/internal/utils"
	"github.com/limitclean/limitclean/internal/validators"
	"github.com/limitclean/limitclean/models"
)

// fileService is the concrete implementation of [FileService]. Payloads
// are stored opaque; the service only records metadata and the linkage to
// an entry or ticket.
type fileService struct {
	files store.FileRepository

	uuidGen   *utils.UUIDGenerator
	validator validators.Validator

	// binaryDataDir is where ExportFile writes payloads.
	binaryDataDir string

	logger *logger.Logger
}

// NewFileService constructs a [FileService] wired to the given storages.
// Exported payloads are written under binaryDataDir.
func NewFileService(storages *store.Storages, binaryDataDir string, logger *logger.Logger) FileService {
	return &fileService{
		files:         storages.Files,
		uuidGen:       utils.NewUUIDGenerator(),
		validator:     validators.NewRecordValidator(),
		binaryDataDir: binaryDataDir,
		logger:        logger,
	}
}

// SaveFile stores an opaque payload with its metadata. A file must be
// linked to an entry or a ticket.
func (s *fileService) SaveFile(ctx context.Context, payload FilePayload) (models.FileRecord, error) {
	record := models.FileRecord{
		ID:       s.uuidGen.Generate(),
		EntryID:  payload.EntryID,
		TicketID: payload.TicketID,
		Name:     payload.Name,
		Mime:     payload.Mime,
		Size:     payload.Size,
		Blob:     payload.Blob,
	}

	if err := s.validator.Validate(ctx, record); err != nil {
		return models.FileRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.files.PutFile(ctx, record); err != nil {
		return models.FileRecord{}, fmt.Errorf("error persisting file record: %w", err)
	}

	return record, nil
}

// ListFiles returns every file record.
func (s *fileService) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	return s.files.GetAllFiles(ctx)
}

// FilesByEntry returns the files attached to one entry.
func (s *fileService) FilesByEntry(ctx context.Context, entryID string) ([]models.FileRecord, error) {
	return s.files.GetFilesByEntryID(ctx, entryID)
}

// FilesByTicket returns the files attached to one ticket.
func (s *fileService) FilesByTicket(ctx context.Context, ticketID string) ([]models.FileRecord, error) {
	return s.files.GetFilesByTicketID(ctx, ticketID)
}

// ExportFile writes the payload of one stored file into the binary data
// directory, creating it if needed. The file is named after the record's
// id to avoid collisions between equally named uploads.
func (s *fileService) ExportFile(ctx context.Context, id string) (string, error) {
	log := logger.FromContext(ctx)

	record, err := s.files.GetFile(ctx, id)
	if err != nil {
		return "", fmt.Errorf("error fetching file for export: %w", err)
	}

	if err := os.MkdirAll(s.binaryDataDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating binary data dir: %w", err)
	}

	path := filepath.Join(s.binaryDataDir, record.ID+"_"+filepath.Base(record.Name))
	if err := os.WriteFile(path, record.Blob, 0o644); err != nil {
		log.Err(err).Str("id", id).Str("path", path).Msg("error writing exported payload")
		return "", fmt.Errorf("error writing exported payload: %w", err)
	}

	return path, nil
}

// DeleteFile removes one file record. Deleting an absent id is a no-op.
func (s *fileService) DeleteFile(ctx context.Context, id string) error {
	return s.files.DeleteFile(ctx, id)
}
