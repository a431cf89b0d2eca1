package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/internal/utils"
	"github.com/limitclean/limitclean/internal/validators"
	"github.com/limitclean/limitclean/models"
)

// entryService is the concrete implementation of [EntryService].
type entryService struct {
	entries  store.EntryRepository
	profiles store.ProfileRepository

	uuidGen   *utils.UUIDGenerator
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

// NewEntryService constructs an [EntryService] wired to the given storages.
func NewEntryService(storages *store.Storages, logger *logger.Logger) EntryService {
	return &entryService{
		entries:   storages.Entries,
		profiles:  storages.Profiles,
		uuidGen:   utils.NewUUIDGenerator(),
		validator: validators.NewRecordValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

// CreateEntry builds and persists a new entry for the given creator. The
// applied discount is resolved from the creator's role and profiles, the
// net amount is derived, and a missing status defaults to Restricted.
func (s *entryService) CreateEntry(ctx context.Context, payload EntryPayload, creator models.User) (models.Entry, error) {
	log := logger.FromContext(ctx)

	rep, err := s.representativeProfile(ctx, creator.ID)
	if err != nil {
		return models.Entry{}, err
	}
	seller, err := s.sellerProfile(ctx, creator.ID)
	if err != nil {
		return models.Entry{}, err
	}

	discount := EffectiveDiscount(creator, payload.DiscountAmount, rep, seller)

	status := payload.Status
	if status == "" {
		status = models.StatusRestricted
	}

	now := s.now().UTC()
	id := payload.ID
	if id == "" {
		id = s.uuidGen.Generate()
	}

	entry := models.Entry{
		ID:             id,
		Type:           payload.Type,
		Document:       payload.Document,
		Name:           payload.Name,
		Phone:          payload.Phone,
		OwnerLabel:     payload.OwnerLabel,
		GrossAmount:    payload.GrossAmount,
		DiscountAmount: discount,
		Status:         status,
		Done:           payload.Done,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      creator.ID,
	}
	entry.RecalculateNet()

	if err := s.validator.Validate(ctx, entry); err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.entries.PutEntry(ctx, entry); err != nil {
		log.Err(err).Str("id", entry.ID).Msg("error persisting new entry")
		return models.Entry{}, fmt.Errorf("error persisting new entry: %w", err)
	}

	return entry, nil
}

// UpdateEntry applies a partial update to one entry. The net amount is
// recomputed when either monetary amount changes; updatedAt is always
// bumped. Returns store.ErrNotFound when no entry has the given id.
func (s *entryService) UpdateEntry(ctx context.Context, id string, changes EntryUpdate) (models.Entry, error) {
	log := logger.FromContext(ctx)

	entry, err := s.entries.GetEntry(ctx, id)
	if err != nil {
		return models.Entry{}, fmt.Errorf("error fetching entry for update: %w", err)
	}

	amountsChanged := false
	if changes.Type != nil {
		entry.Type = *changes.Type
	}
	if changes.Document != nil {
		entry.Document = *changes.Document
	}
	if changes.Name != nil {
		entry.Name = *changes.Name
	}
	if changes.Phone != nil {
		entry.Phone = *changes.Phone
	}
	if changes.OwnerLabel != nil {
		entry.OwnerLabel = *changes.OwnerLabel
	}
	if changes.GrossAmount != nil {
		entry.GrossAmount = *changes.GrossAmount
		amountsChanged = true
	}
	if changes.DiscountAmount != nil {
		entry.DiscountAmount = *changes.DiscountAmount
		amountsChanged = true
	}
	if changes.Status != nil {
		entry.Status = *changes.Status
	}
	if changes.Done != nil {
		entry.Done = *changes.Done
	}

	if amountsChanged {
		entry.RecalculateNet()
	}
	entry.UpdatedAt = s.now().UTC()

	if err := s.validator.Validate(ctx, entry); err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.entries.PutEntry(ctx, entry); err != nil {
		log.Err(err).Str("id", id).Msg("error persisting entry update")
		return models.Entry{}, fmt.Errorf("error persisting entry update: %w", err)
	}

	return entry, nil
}

// UpdateEntryStatus sets the status of one entry directly. The next
// reconciliation pass may overwrite it; direct writes are legal but not
// protected.
func (s *entryService) UpdateEntryStatus(ctx context.Context, id string, status models.EntryStatus) (models.Entry, error) {
	return s.UpdateEntry(ctx, id, EntryUpdate{Status: &status})
}

// ListEntries returns every entry.
func (s *entryService) ListEntries(ctx context.Context) ([]models.Entry, error) {
	return s.entries.GetAllEntries(ctx)
}

// RecentEntries returns up to limit entries, newest first.
func (s *entryService) RecentEntries(ctx context.Context, limit uint64) ([]models.Entry, error) {
	return s.entries.GetRecentEntries(ctx, limit)
}

// FilterEntriesByPeriod returns entries created within [start, end].
func (s *entryService) FilterEntriesByPeriod(ctx context.Context, start, end time.Time) ([]models.Entry, error) {
	return s.entries.GetEntriesByPeriod(ctx, start, end)
}

// CalculateStats aggregates the dashboard figures over all entries.
func (s *entryService) CalculateStats(ctx context.Context) (EntryStats, error) {
	entries, err := s.entries.GetAllEntries(ctx)
	if err != nil {
		return EntryStats{}, fmt.Errorf("error reading entries for stats: %w", err)
	}

	stats := EntryStats{
		StatusCounts: map[models.EntryStatus]int{
			models.StatusRestricted: 0,
			models.StatusFinalized:  0,
			models.StatusReprotocol: 0,
		},
	}

	for _, entry := range entries {
		stats.GrossTotal += entry.GrossAmount
		stats.NetTotal += entry.NetAmount

		switch entry.Type {
		case models.EntryTypeCleaning:
			stats.CleaningCount++
		case models.EntryTypeRating:
			stats.RatingCount++
			if entry.Done {
				stats.RatingDone++
			}
		}

		if _, known := stats.StatusCounts[entry.Status]; known {
			stats.StatusCounts[entry.Status]++
		}
	}
	stats.RatingPending = stats.RatingCount - stats.RatingDone

	return stats, nil
}

// DeleteEntry removes one entry. Deleting an absent id is a no-op.
func (s *entryService) DeleteEntry(ctx context.Context, id string) error {
	return s.entries.DeleteEntry(ctx, id)
}

func (s *entryService) representativeProfile(ctx context.Context, userID string) (*models.Representative, error) {
	rep, err := s.profiles.GetRepresentativeByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching representative profile: %w", err)
	}
	return &rep, nil
}

func (s *entryService) sellerProfile(ctx context.Context, userID string) (*models.Seller, error) {
	seller, err := s.profiles.GetSellerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching seller profile: %w", err)
	}
	return &seller, nil
}
