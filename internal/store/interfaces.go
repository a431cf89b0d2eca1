package store

import (
	"context"
	"time"

	"github.com/limitclean/limitclean/models"
)

// UserRepository is the keyed users collection with its unique username
// index. Users are never hard-deleted by the core.
type UserRepository interface {
	// CreateUser inserts a new user. Returns ErrConstraintViolation if the
	// username is already taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// PutUser inserts-or-replaces a user keyed by ID. Returns
	// ErrConstraintViolation if the username would duplicate another
	// user's.
	PutUser(ctx context.Context, user models.User) error
	// FindUserByID returns ErrNotFound when no user has the given ID.
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// FindUserByUsername looks the user up through the unique username
	// index. Returns ErrNotFound when absent.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

// EntryRepository is the keyed entries collection with its created_at index.
type EntryRepository interface {
	// PutEntry inserts-or-replaces an entry keyed by ID.
	PutEntry(ctx context.Context, entry models.Entry) error
	// GetEntry returns ErrNotFound when no entry has the given ID.
	GetEntry(ctx context.Context, id string) (models.Entry, error)
	GetAllEntries(ctx context.Context) ([]models.Entry, error)
	// GetRecentEntries returns up to limit entries ordered by created_at
	// descending.
	GetRecentEntries(ctx context.Context, limit uint64) ([]models.Entry, error)
	// GetEntriesByPeriod returns entries whose created_at lies in
	// [start, end].
	GetEntriesByPeriod(ctx context.Context, start, end time.Time) ([]models.Entry, error)
	// UpdateEntryStatus rewrites only the status and updated_at columns.
	// Returns ErrNotFound when no entry has the given ID.
	UpdateEntryStatus(ctx context.Context, id string, status models.EntryStatus, updatedAt time.Time) error
	DeleteEntry(ctx context.Context, id string) error
	ClearEntries(ctx context.Context) error
}

// ProfileRepository holds the representative and seller profile collections.
// Both carry a unique index on user_id; sellers additionally carry a
// non-unique index on representative_id.
type ProfileRepository interface {
	PutRepresentative(ctx context.Context, rep models.Representative) error
	// GetRepresentativeByUserID returns ErrNotFound when the user has no
	// representative profile.
	GetRepresentativeByUserID(ctx context.Context, userID string) (models.Representative, error)
	GetAllRepresentatives(ctx context.Context) ([]models.Representative, error)
	DeleteRepresentative(ctx context.Context, id string) error

	PutSeller(ctx context.Context, seller models.Seller) error
	// GetSellerByUserID returns ErrNotFound when the user has no seller
	// profile.
	GetSellerByUserID(ctx context.Context, userID string) (models.Seller, error)
	// GetSellersByRepresentativeID resolves the non-unique index: zero or
	// more sellers per representative.
	GetSellersByRepresentativeID(ctx context.Context, representativeID string) ([]models.Seller, error)
	GetAllSellers(ctx context.Context) ([]models.Seller, error)
	DeleteSeller(ctx context.Context, id string) error
}

// TicketRepository is the keyed support ticket collection.
type TicketRepository interface {
	PutTicket(ctx context.Context, ticket models.Ticket) error
	GetAllTickets(ctx context.Context) ([]models.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

// FileRepository stores opaque binary payloads with metadata.
type FileRepository interface {
	PutFile(ctx context.Context, file models.FileRecord) error
	// GetFile returns ErrNotFound when no record has the given id.
	GetFile(ctx context.Context, id string) (models.FileRecord, error)
	GetAllFiles(ctx context.Context) ([]models.FileRecord, error)
	GetFilesByEntryID(ctx context.Context, entryID string) ([]models.FileRecord, error)
	GetFilesByTicketID(ctx context.Context, ticketID string) ([]models.FileRecord, error)
	// DeleteFile is a no-op for an absent id.
	DeleteFile(ctx context.Context, id string) error
}

// SettingsRepository is the durable key/value slot collection holding the
// session mirror, the signing key, and the seed flag.
type SettingsRepository interface {
	// GetSetting returns ErrNotFound when the slot has never been written.
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}
