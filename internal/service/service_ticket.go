package service

import (
	"context"
	"fmt"
	"time"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/internal/store"
	"github.com/limitclean/limitclean/internal/utils"
	"github.com/limitclean/limitclean/internal/validators"
	"github.com/limitclean/limitclean/models"
)

// ticketService is the concrete implementation of [TicketService].
type ticketService struct {
	tickets store.TicketRepository

	uuidGen   *utils.UUIDGenerator
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

// NewTicketService constructs a [TicketService] wired to the given storages.
func NewTicketService(storages *store.Storages, logger *logger.Logger) TicketService {
	return &ticketService{
		tickets:   storages.Tickets,
		uuidGen:   utils.NewUUIDGenerator(),
		validator: validators.NewRecordValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

// CreateTicket persists a new support ticket for the given user.
func (s *ticketService) CreateTicket(ctx context.Context, userID, title, description string) (models.Ticket, error) {
	ticket := models.Ticket{
		ID:          s.uuidGen.Generate(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.validator.Validate(ctx, ticket); err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.tickets.PutTicket(ctx, ticket); err != nil {
		return models.Ticket{}, fmt.Errorf("error persisting ticket: %w", err)
	}

	return ticket, nil
}

// ListTickets returns every ticket.
func (s *ticketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return s.tickets.GetAllTickets(ctx)
}

// DeleteTicket removes one ticket. Deleting an absent id is a no-op.
func (s *ticketService) DeleteTicket(ctx context.Context, id string) error {
	return s.tickets.DeleteTicket(ctx, id)
}
