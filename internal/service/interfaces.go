package service

import (
	"context"
	"time"

	"github.com/limitclean/limitclean/models"
)

// RegistrationData is the input for creating a new user account. The
// password is hashed before anything is persisted.
type RegistrationData struct {
	Name     string
	Email    string
	Username string
	Password string
	Role     models.Role
	Phone    string
}

// AuthService handles the full credential and session lifecycle: account
// registration, login with attempt throttling, session restoration on
// startup, and the in-memory session queries used by the presentation
// layer.
type AuthService interface {
	// Register creates a new user account. A duplicate username surfaces
	// as store.ErrConstraintViolation.
	Register(ctx context.Context, data RegistrationData) (models.User, error)

	// Login authenticates a user and establishes a session, held in
	// memory and mirrored to durable storage. Returns ErrThrottled while
	// the lockout window is active and ErrInvalidCredentials for an
	// unknown username or a wrong password.
	Login(ctx context.Context, username, password string) (models.Session, error)

	// Logout drops the in-memory session and its durable mirror.
	Logout(ctx context.Context) error

	// RestoreSession reinstates the session from its durable mirror,
	// called once at startup. A missing, corrupt, expired or orphaned
	// mirror is discarded and ErrNoSession returned.
	RestoreSession(ctx context.Context) (models.Session, error)

	IsAuthenticated() bool
	CurrentUser() (models.User, bool)
	HasAnyRole(roles ...models.Role) bool

	// UpdateSessionUser replaces the cached user inside the current
	// session and re-persists the mirror. No-op without a session.
	UpdateSessionUser(ctx context.Context, user models.User) error
}

// EntryPayload is the input for creating an entry. The discount actually
// applied is resolved from the creator's role; see EffectiveDiscount.
type EntryPayload struct {
	ID             string
	Type           models.EntryType
	Document       string
	Name           string
	Phone          string
	OwnerLabel     string
	GrossAmount    float64
	DiscountAmount float64
	Status         models.EntryStatus
	Done           bool
}

// EntryUpdate is a partial update: nil fields keep their stored value.
type EntryUpdate struct {
	Type           *models.EntryType
	Document       *string
	Name           *string
	Phone          *string
	OwnerLabel     *string
	GrossAmount    *float64
	DiscountAmount *float64
	Status         *models.EntryStatus
	Done           *bool
}

// EntryStats aggregates the dashboard figures over all entries.
type EntryStats struct {
	GrossTotal    float64
	NetTotal      float64
	CleaningCount int
	RatingCount   int
	StatusCounts  map[models.EntryStatus]int
	RatingDone    int
	RatingPending int
}

// EntryService manages business records: creation with role-based discount
// resolution, partial updates with net-amount recomputation, listings and
// aggregate statistics.
type EntryService interface {
	CreateEntry(ctx context.Context, payload EntryPayload, creator models.User) (models.Entry, error)
	// UpdateEntry applies a partial update. Returns store.ErrNotFound
	// when no entry has the given id.
	UpdateEntry(ctx context.Context, id string, changes EntryUpdate) (models.Entry, error)
	UpdateEntryStatus(ctx context.Context, id string, status models.EntryStatus) (models.Entry, error)
	ListEntries(ctx context.Context) ([]models.Entry, error)
	RecentEntries(ctx context.Context, limit uint64) ([]models.Entry, error)
	FilterEntriesByPeriod(ctx context.Context, start, end time.Time) ([]models.Entry, error)
	CalculateStats(ctx context.Context) (EntryStats, error)
	DeleteEntry(ctx context.Context, id string) error
}

// ProfileUpdate is a partial user profile update: nil fields keep their
// stored value. A non-nil Password is re-hashed before storage.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Username *string
	Password *string
	Phone    *string
	Role     *models.Role
}

// UserWithRoles joins a user account with its optional profiles.
type UserWithRoles struct {
	models.User
	Representative *models.Representative
	Seller         *models.Seller
}

// UserService manages user accounts and their representative/seller
// profiles.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// UpdateUserProfile applies a partial profile update and refreshes
	// the active session's cached user when the edited account is the
	// one logged in.
	UpdateUserProfile(ctx context.Context, id string, changes ProfileUpdate) (models.User, error)

	SaveRepresentative(ctx context.Context, rep models.Representative) (models.Representative, error)
	ListRepresentatives(ctx context.Context) ([]models.Representative, error)
	DeleteRepresentative(ctx context.Context, id string) error

	SaveSeller(ctx context.Context, seller models.Seller) (models.Seller, error)
	ListSellers(ctx context.Context) ([]models.Seller, error)
	DeleteSeller(ctx context.Context, id string) error

	UsersWithRoles(ctx context.Context) ([]UserWithRoles, error)
}

// TicketService manages support tickets.
type TicketService interface {
	CreateTicket(ctx context.Context, userID, title, description string) (models.Ticket, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

// FilePayload is the input for storing an opaque binary payload.
type FilePayload struct {
	EntryID  string
	TicketID string
	Name     string
	Mime     string
	Size     int64
	Blob     []byte
}

// FileService stores opaque payloads with metadata, linked to entries or
// tickets.
type FileService interface {
	SaveFile(ctx context.Context, payload FilePayload) (models.FileRecord, error)
	ListFiles(ctx context.Context) ([]models.FileRecord, error)
	FilesByEntry(ctx context.Context, entryID string) ([]models.FileRecord, error)
	FilesByTicket(ctx context.Context, ticketID string) ([]models.FileRecord, error)
	// ExportFile writes the payload of one stored file into the configured
	// binary data directory and returns the written path. Returns
	// store.ErrNotFound when no record has the given id.
	ExportFile(ctx context.Context, id string) (string, error)
	// DeleteFile removes one file record. Deleting an absent id is a no-op.
	DeleteFile(ctx context.Context, id string) error
}
