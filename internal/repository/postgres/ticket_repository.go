package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"myLaptopDesk/domain"
)

type TicketRepository struct {
	DB *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		DB: db,
	}
}

func (r *TicketRepository) Insert(ctx context.Context, ticket domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&ticket).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Ticket{}).
		Where("ticket_id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *TicketRepository) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var tickets []domain.Ticket
	if err := r.DB.WithContext(ctx).Order("created_at, ticket_id").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to find tickets: %w", err)
	}

	return tickets, nil
}
