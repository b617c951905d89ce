package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"myLaptopDesk/domain"
	"myLaptopDesk/pkg/logger"
)

const StatusUpdated = "Maintenance status updated successfully."

// MaintenanceRepository contract interface
type MaintenanceRepository interface {
	FindByLaptop(ctx context.Context, laptop string) (domain.MaintenanceRecord, error)
	UpdateStatus(ctx context.Context, laptop, status string, at time.Time) (bool, error)
}

type maintenanceService struct {
	maintenanceRepo MaintenanceRepository
	now             func() time.Time
}

func NewMaintenanceService(maintenanceRepo MaintenanceRepository) *maintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		now:             time.Now,
	}
}

// Status returns the recorded maintenance status of laptop, or
// domain.MaintenanceNoData when nothing is recorded.
func (s *maintenanceService) Status(ctx context.Context, laptop string) (string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when reading maintenance status")
		return "", fmt.Errorf("context error: %w", err)
	}

	rec, err := s.maintenanceRepo.FindByLaptop(ctx, strings.TrimSpace(laptop))
	if err != nil {
		if errors.Is(err, domain.ErrMaintenanceNotFound) {
			return domain.MaintenanceNoData, nil
		}
		logger.Error("failed to find maintenance record", "laptop", laptop, "error", err)
		return "", fmt.Errorf("failed to find maintenance record: %w", err)
	}

	if rec.Status == "" {
		return domain.MaintenanceNoData, nil
	}
	return rec.Status, nil
}

// UpdateStatus changes the status of an existing record. Unknown laptops are
// not created.
func (s *maintenanceService) UpdateStatus(ctx context.Context, laptop, status string) (string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating maintenance status")
		return "", fmt.Errorf("context error: %w", err)
	}

	laptop, status = strings.TrimSpace(laptop), strings.TrimSpace(status)
	if laptop == "" || status == "" {
		logger.Error("Invalid maintenance update: laptop name and status are required")
		return "", fmt.Errorf("%w: laptop name and status are required", domain.ErrInvalidInput)
	}

	ok, err := s.maintenanceRepo.UpdateStatus(ctx, laptop, status, s.now().UTC())
	if err != nil {
		logger.Error("failed to update maintenance status", "laptop", laptop, "error", err)
		return "", fmt.Errorf("failed to update maintenance status: %w", err)
	}
	if !ok {
		logger.Warn("no maintenance record to update", "laptop", laptop)
		return "", domain.NewStatusError(domain.ErrMaintenanceNotFound, "Failed to update maintenance status.")
	}

	logger.Info("maintenance status updated", "laptop", laptop, "status", status)
	return StatusUpdated, nil
}
