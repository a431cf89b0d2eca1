package service

import (
	"context"
	"fmt"

	"github.com/limitclean/limitclean/internal/crypto"
	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/internal/utils"
	"github.com/limitclean/limitclean/internal/validators"
	"github.com/limitclean/limitclean/models"
)

// userService is the concrete implementation of [UserService].
type userService struct {
	users    store.UserRepository
	profiles store.ProfileRepository

	auth      AuthService
	hasher    crypto.PasswordHasher
	uuidGen   *utils.UUIDGenerator
	validator validators.Validator

	logger *logger.Logger
}

// NewUserService constructs a [UserService]. The auth service is used to
// refresh the cached session user after a profile edit.
func NewUserService(storages *store.Storages, auth AuthService, logger *logger.Logger) UserService {
	return &userService{
		users:     storages.Users,
		profiles:  storages.Profiles,
		auth:      auth,
		hasher:    crypto.NewPasswordHasher(),
		uuidGen:   utils.NewUUIDGenerator(),
		validator: validators.NewRecordValidator(),
		logger:    logger,
	}
}

// ListUsers returns every user account.
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.GetAllUsers(ctx)
}

// FindUserByID returns store.ErrNotFound when no user has the given id.
func (s *userService) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return s.users.FindUserByID(ctx, id)
}

// FindUserByUsername resolves the unique username index.
func (s *userService) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.users.FindUserByUsername(ctx, username)
}

// UpdateUserProfile applies a partial profile update. A new password is
// re-hashed before storage; the plaintext never reaches the repository.
// When the edited account is the one currently logged in, the session's
// cached user is refreshed as well.
func (s *userService) UpdateUserProfile(ctx context.Context, id string, changes ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("error fetching user for update: %w", err)
	}

	if changes.Name != nil {
		user.Name = *changes.Name
	}
	if changes.Email != nil {
		user.Email = *changes.Email
	}
	if changes.Username != nil {
		user.Username = *changes.Username
	}
	if changes.Phone != nil {
		user.Phone = *changes.Phone
	}
	if changes.Role != nil {
		user.Role = *changes.Role
	}
	if changes.Password != nil {
		passHash, err := s.hasher.Hash(*changes.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("error hashing new password: %w", err)
		}
		user.PassHash = passHash
	}

	if err := s.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.users.PutUser(ctx, user); err != nil {
		log.Err(err).Str("id", id).Msg("error persisting profile update")
		return models.User{}, fmt.Errorf("error persisting profile update: %w", err)
	}

	if current, ok := s.auth.CurrentUser(); ok && current.ID == user.ID {
		if err := s.auth.UpdateSessionUser(ctx, user); err != nil {
			return models.User{}, fmt.Errorf("error refreshing session user: %w", err)
		}
	}

	return user, nil
}

// SaveRepresentative persists a representative profile, assigning an id on
// first save.
func (s *userService) SaveRepresentative(ctx context.Context, rep models.Representative) (models.Representative, error) {
	if rep.ID == "" {
		rep.ID = s.uuidGen.Generate()
	}

	if err := s.profiles.PutRepresentative(ctx, rep); err != nil {
		return models.Representative{}, fmt.Errorf("error persisting representative: %w", err)
	}

	return rep, nil
}

// ListRepresentatives returns every representative profile.
func (s *userService) ListRepresentatives(ctx context.Context) ([]models.Representative, error) {
	return s.profiles.GetAllRepresentatives(ctx)
}

// DeleteRepresentative removes one representative profile.
func (s *userService) DeleteRepresentative(ctx context.Context, id string) error {
	return s.profiles.DeleteRepresentative(ctx, id)
}

// SaveSeller persists a seller profile, assigning an id on first save.
func (s *userService) SaveSeller(ctx context.Context, seller models.Seller) (models.Seller, error) {
	if seller.ID == "" {
		seller.ID = s.uuidGen.Generate()
	}

	if err := s.profiles.PutSeller(ctx, seller); err != nil {
		return models.Seller{}, fmt.Errorf("error persisting seller: %w", err)
	}

	return seller, nil
}

// ListSellers returns every seller profile.
func (s *userService) ListSellers(ctx context.Context) ([]models.Seller, error) {
	return s.profiles.GetAllSellers(ctx)
}

// DeleteSeller removes one seller profile.
func (s *userService) DeleteSeller(ctx context.Context, id string) error {
	return s.profiles.DeleteSeller(ctx, id)
}

// UsersWithRoles joins every user with its optional representative and
// seller profiles in one pass.
func (s *userService) UsersWithRoles(ctx context.Context) ([]UserWithRoles, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	reps, err := s.profiles.GetAllRepresentatives(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing representatives: %w", err)
	}
	sellers, err := s.profiles.GetAllSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing sellers: %w", err)
	}

	repsByUser := make(map[string]models.Representative, len(reps))
	for _, rep := range reps {
		repsByUser[rep.UserID] = rep
	}
	sellersByUser := make(map[string]models.Seller, len(sellers))
	for _, seller := range sellers {
		sellersByUser[seller.UserID] = seller
	}

	joined := make([]UserWithRoles, 0, len(users))
	for _, user := range users {
		row := UserWithRoles{User: user}
		if rep, ok := repsByUser[user.ID]; ok {
			row.Representative = &rep
		}
		if seller, ok := sellersByUser[user.ID]; ok {
			row.Seller = &seller
		}
		joined = append(joined, row)
	}

	return joined, nil
}
