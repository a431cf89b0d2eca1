package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/models"
)

// profileRepository is the SQLite-backed implementation of
// [ProfileRepository], covering both the representatives and sellers
// tables.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository] backed by the
// provided database connection and logger.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// PutRepresentative inserts-or-replaces a representative profile keyed by
// its ID. A user_id collision with a different profile surfaces as
// [ErrConstraintViolation].
func (r *profileRepository) PutRepresentative(ctx context.Context, rep models.Representative) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, putRepresentative, rep.ID, rep.UserID, rep.DefaultDiscount)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.PutRepresentative").Str("id", rep.ID).Msg("error upserting representative")

		if isUniqueViolation(err) {
			return ErrConstraintViolation
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetRepresentativeByUserID resolves the unique user_id index.
func (r *profileRepository) GetRepresentativeByUserID(ctx context.Context, userID string) (models.Representative, error) {
	log := logger.FromContext(ctx)

	var rep models.Representative
	row := r.db.QueryRowContext(ctx, getRepresentativeByUserID, userID)

	err := row.Scan(&rep.ID, &rep.UserID, &rep.DefaultDiscount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Representative{}, ErrNotFound
		}
		log.Err(err).Str("func", "*profileRepository.GetRepresentativeByUserID").Msg("error scanning representative row")
		return models.Representative{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rep, nil
}

// GetAllRepresentatives returns every representative profile.
func (r *profileRepository) GetAllRepresentatives(ctx context.Context) ([]models.Representative, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllRepresentatives)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.GetAllRepresentatives").Msg("error querying representatives")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var reps []models.Representative
	for rows.Next() {
		var rep models.Representative
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.DefaultDiscount); err != nil {
			log.Err(err).Str("func", "*profileRepository.GetAllRepresentatives").Msg("error scanning representative rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		reps = append(reps, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating representative rows: %w", err)
	}

	return reps, nil
}

// DeleteRepresentative removes one representative profile by its primary
// key. Deleting an absent key is a no-op.
func (r *profileRepository) DeleteRepresentative(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteRepresentative, id); err != nil {
		log.Err(err).Str("func", "*profileRepository.DeleteRepresentative").Str("id", id).Msg("error deleting representative")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// PutSeller inserts-or-replaces a seller profile keyed by its ID. A user_id
// collision with a different profile surfaces as [ErrConstraintViolation].
func (r *profileRepository) PutSeller(ctx context.Context, seller models.Seller) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, putSeller, seller.ID, seller.UserID, seller.RepresentativeID, seller.SellerDiscount)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.PutSeller").Str("id", seller.ID).Msg("error upserting seller")

		if isUniqueViolation(err) {
			return ErrConstraintViolation
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetSellerByUserID resolves the unique user_id index.
func (r *profileRepository) GetSellerByUserID(ctx context.Context, userID string) (models.Seller, error) {
	log := logger.FromContext(ctx)

	var seller models.Seller
	row := r.db.QueryRowContext(ctx, getSellerByUserID, userID)

	err := row.Scan(&seller.ID, &seller.UserID, &seller.RepresentativeID, &seller.SellerDiscount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Seller{}, ErrNotFound
		}
		log.Err(err).Str("func", "*profileRepository.GetSellerByUserID").Msg("error scanning seller row")
		return models.Seller{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return seller, nil
}

// GetSellersByRepresentativeID resolves the non-unique representative_id
// index: zero or more sellers per representative.
func (r *profileRepository) GetSellersByRepresentativeID(ctx context.Context, representativeID string) ([]models.Seller, error) {
	return r.querySellers(ctx, getSellersByRepresentativeID, representativeID)
}

// GetAllSellers returns every seller profile.
func (r *profileRepository) GetAllSellers(ctx context.Context) ([]models.Seller, error) {
	return r.querySellers(ctx, getAllSellers)
}

// DeleteSeller removes one seller profile by its primary key. Deleting an
// absent key is a no-op.
func (r *profileRepository) DeleteSeller(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSeller, id); err != nil {
		log.Err(err).Str("func", "*profileRepository.DeleteSeller").Str("id", id).Msg("error deleting seller")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *profileRepository) querySellers(ctx context.Context, query string, args ...any) ([]models.Seller, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.querySellers").Msg("error querying sellers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var sellers []models.Seller
	for rows.Next() {
		var seller models.Seller
		if err := rows.Scan(&seller.ID, &seller.UserID, &seller.RepresentativeID, &seller.SellerDiscount); err != nil {
			log.Err(err).Str("func", "*profileRepository.querySellers").Msg("error scanning seller rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		sellers = append(sellers, seller)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seller rows: %w", err)
	}

	return sellers, nil
}
