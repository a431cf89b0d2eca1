package service

import (
	"github.com/limitclean/limitclean/internal/config"
	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
)

// Services groups the service layer into a single value passed to the
// presentation layer.
type Services struct {
	Auth    AuthService
	Entries EntryService
	Users   UserService
	Tickets TicketService
	Files   FileService
}

// NewServices wires the service layer on top of an opened storage layer.
func NewServices(storages *store.Storages, cfg *config.CoreConfig, logger *logger.Logger) *Services {
	authSvc := NewAuthService(storages, cfg.Auth, logger)

	return &Services{
		Auth:    authSvc,
		Entries: NewEntryService(storages, logger),
		Users:   NewUserService(storages, authSvc, logger),
		Tickets: NewTicketService(storages, logger),
		Files:   NewFileService(storages, cfg.Storage.BinaryDataDir, logger),
	}
}
