package store

import (
	"context"
	"fmt"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/models"
)

// ticketRepository is the SQLite-backed implementation of [TicketRepository].
type ticketRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTicketRepository constructs a [TicketRepository] backed by the provided
// database connection and logger.
func NewTicketRepository(db *DB, logger *logger.Logger) TicketRepository {
	logger.Debug().Msg("creating ticket repository")
	return &ticketRepository{
		db:     db,
		logger: logger,
	}
}

// PutTicket inserts-or-replaces a ticket keyed by its ID. created_at is
// only written on insert.
func (r *ticketRepository) PutTicket(ctx context.Context, ticket models.Ticket) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, putTicket,
		ticket.ID, ticket.UserID, ticket.Title, ticket.Description, ticket.CreatedAt.UTC())
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.PutTicket").Str("id", ticket.ID).Msg("error upserting ticket")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetAllTickets returns every ticket record.
func (r *ticketRepository) GetAllTickets(ctx context.Context) ([]models.Ticket, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllTickets)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.GetAllTickets").Msg("error querying tickets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		if err := rows.Scan(&ticket.ID, &ticket.UserID, &ticket.Title, &ticket.Description, &ticket.CreatedAt); err != nil {
			log.Err(err).Str("func", "*ticketRepository.GetAllTickets").Msg("error scanning ticket rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket rows: %w", err)
	}

	return tickets, nil
}

// DeleteTicket removes one ticket by its primary key. Deleting an absent
// key is a no-op.
func (r *ticketRepository) DeleteTicket(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteTicket, id); err != nil {
		log.Err(err).Str("func", "*ticketRepository.DeleteTicket").Str("id", id).Msg("error deleting ticket")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
