package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/models"
)

// userRepository is the SQLite-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record.
//
// Error handling:
//   - SQLite unique violation on the username index → [ErrConstraintViolation].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createUser,
		user.ID, user.Name, user.Email, user.Username, user.Role, user.PassHash, user.Phone, user.CreatedAt.UTC())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error creating user")

		if isUniqueViolation(err) {
			return models.User{}, ErrConstraintViolation
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// PutUser inserts-or-replaces a user record keyed by its ID. A username
// collision with a different user surfaces as [ErrConstraintViolation].
func (r *userRepository) PutUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, putUser,
		user.ID, user.Name, user.Email, user.Username, user.Role, user.PassHash, user.Phone, user.CreatedAt.UTC())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.PutUser").Str("id", user.ID).Msg("error upserting user")

		if isUniqueViolation(err) {
			return ErrConstraintViolation
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindUserByID retrieves one user record by its primary key.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, findUserByID, id)
}

// FindUserByUsername retrieves one user record through the unique username
// index.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, findUserByUsername, username)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Username, &user.Role, &user.PassHash, &user.Phone, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error scanning user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// GetAllUsers returns every user record.
func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetAllUsers").Msg("error querying users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Username, &user.Role, &user.PassHash, &user.Phone, &user.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.GetAllUsers").Msg("error scanning user rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}
