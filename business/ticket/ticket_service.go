package ticket

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"myLaptopDesk/domain"
	"myLaptopDesk/pkg/logger"
	"myLaptopDesk/pkg/metrics"
)

// TicketRepository contract interface
type TicketRepository interface {
	Insert(ctx context.Context, ticket domain.Ticket) error
	// UpdateStatus reports false when no ticket has the given id.
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	FindAll(ctx context.Context) ([]domain.Ticket, error)
}

type ticketService struct {
	ticketRepo TicketRepository
	now        func() time.Time
}

func NewTicketService(ticketRepo TicketRepository) *ticketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		now:        time.Now,
	}
}

// Create opens a ticket in the Open status and returns its id.
func (s *ticketService) Create(ctx context.Context, description string) (string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating ticket")
		return "", fmt.Errorf("context error: %w", err)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		logger.Error("Invalid ticket data: description is required")
		return "", fmt.Errorf("%w: ticket description is required", domain.ErrInvalidInput)
	}

	t := domain.Ticket{
		ID:          uuid.NewString(),
		Description: description,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.ticketRepo.Insert(ctx, t); err != nil {
		logger.Error("failed to create ticket", "error", err)
		return "", fmt.Errorf("failed to create ticket: %w", err)
	}

	metrics.TicketsCreatedTotal.Inc()
	logger.Info("ticket created", "ticket_id", t.ID, "description", t.Description)

	return t.ID, nil
}

// Update sets the status of an existing ticket. It returns false, without
// error, when the id is unknown.
func (s *ticketService) Update(ctx context.Context, id, status string) (bool, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating ticket")
		return false, fmt.Errorf("context error: %w", err)
	}

	id = strings.TrimSpace(id)
	status = strings.TrimSpace(status)
	if id == "" || status == "" {
		logger.Error("Invalid ticket update: id and status are required")
		return false, fmt.Errorf("%w: ticket id and status are required", domain.ErrInvalidInput)
	}

	ok, err := s.ticketRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		logger.Error("failed to update ticket", "ticket_id", id, "error", err)
		return false, fmt.Errorf("failed to update ticket: %w", err)
	}
	if !ok {
		logger.Warn("ticket not found", "ticket_id", id)
		return false, nil
	}

	logger.Info("ticket updated", "ticket_id", id, "status", status)
	return true, nil
}

func (s *ticketService) List(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing tickets")
		return nil, fmt.Errorf("context error: %w", err)
	}

	tickets, err := s.ticketRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to list tickets", "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return tickets, nil
}
