package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"myLaptopDesk/domain"
	"myLaptopDesk/pkg/logger"
	"myLaptopDesk/pkg/metrics"
)

// LaptopRepository contract interface. Reserve and release are single
// compare-and-set operations; a false result means the condition did not
// hold.
type LaptopRepository interface {
	FindByName(ctx context.Context, name string) (domain.Laptop, error)
	ReserveIfUnowned(ctx context.Context, name, manager string, at time.Time) (bool, error)
	ReleaseIfOwnedBy(ctx context.Context, name, manager string) (bool, error)
}

type reservationService struct {
	laptopRepo LaptopRepository
	now        func() time.Time
}

func NewReservationService(laptopRepo LaptopRepository) *reservationService {
	return &reservationService{
		laptopRepo: laptopRepo,
		now:        time.Now,
	}
}

func (s *reservationService) Reserve(ctx context.Context, laptop, manager string) (string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when reserving laptop")
		return "", fmt.Errorf("context error: %w", err)
	}

	laptop, manager = strings.TrimSpace(laptop), strings.TrimSpace(manager)
	if laptop == "" || manager == "" {
		logger.Error("Invalid reservation: laptop name and manager name are required")
		return "", fmt.Errorf("%w: laptop name and manager name are required", domain.ErrInvalidInput)
	}

	ok, err := s.laptopRepo.ReserveIfUnowned(ctx, laptop, manager, s.now().UTC())
	if err != nil {
		logger.Error("failed to reserve laptop", "laptop", laptop, "error", err)
		return "", fmt.Errorf("failed to reserve laptop: %w", err)
	}

	if !ok {
		if _, err := s.laptopRepo.FindByName(ctx, laptop); err != nil {
			if errors.Is(err, domain.ErrLaptopNotFound) {
				metrics.ReservationOutcomesTotal.WithLabelValues("reserve", "not_found").Inc()
				logger.Warn("reservation for unknown laptop", "laptop", laptop, "manager", manager)
				return "", domain.NewStatusError(domain.ErrLaptopNotFound, "Laptop '%s' not found.", laptop)
			}
			logger.Error("failed to read laptop after reservation miss", "laptop", laptop, "error", err)
			return "", fmt.Errorf("failed to find laptop: %w", err)
		}

		metrics.ReservationOutcomesTotal.WithLabelValues("reserve", "conflict").Inc()
		logger.Warn("laptop already reserved", "laptop", laptop, "manager", manager)
		return "", domain.NewStatusError(domain.ErrReservationConflict,
			"Laptop '%s' is not available for reservation or already reserved.", laptop)
	}

	metrics.ReservationOutcomesTotal.WithLabelValues("reserve", "ok").Inc()
	logger.Info("laptop reserved", "laptop", laptop, "manager", manager)

	return fmt.Sprintf("Laptop '%s' reserved by '%s'.", laptop, manager), nil
}

// Check is read-only. The returned Reservation always carries the operator
// message, including for unreserved laptops.
func (s *reservationService) Check(ctx context.Context, laptop string) (domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when checking reservation")
		return domain.Reservation{}, fmt.Errorf("context error: %w", err)
	}

	laptop = strings.TrimSpace(laptop)
	if laptop == "" {
		logger.Error("Invalid reservation check: laptop name is required")
		return domain.Reservation{}, fmt.Errorf("%w: laptop name is required", domain.ErrInvalidInput)
	}

	l, err := s.laptopRepo.FindByName(ctx, laptop)
	if err != nil {
		if errors.Is(err, domain.ErrLaptopNotFound) {
			return domain.Reservation{}, domain.NewStatusError(domain.ErrLaptopNotFound, "Laptop '%s' not found.", laptop)
		}
		logger.Error("failed to find laptop", "laptop", laptop, "error", err)
		return domain.Reservation{}, fmt.Errorf("failed to find laptop: %w", err)
	}

	if !l.Reserved() {
		return domain.Reservation{
			LaptopName: l.Name,
			Message:    fmt.Sprintf("Laptop '%s' is not reserved.", l.Name),
		}, nil
	}

	return domain.Reservation{
		LaptopName: l.Name,
		ReservedBy: *l.ReservedBy,
		ReservedAt: l.ReservedAt,
		Message:    fmt.Sprintf("Laptop '%s' is reserved by '%s'.", l.Name, *l.ReservedBy),
	}, nil
}

// Release clears a reservation held by manager.
func (s *reservationService) Release(ctx context.Context, laptop, manager string) (string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when releasing laptop")
		return "", fmt.Errorf("context error: %w", err)
	}

	laptop, manager = strings.TrimSpace(laptop), strings.TrimSpace(manager)
	if laptop == "" || manager == "" {
		logger.Error("Invalid release: laptop name and manager name are required")
		return "", fmt.Errorf("%w: laptop name and manager name are required", domain.ErrInvalidInput)
	}

	ok, err := s.laptopRepo.ReleaseIfOwnedBy(ctx, laptop, manager)
	if err != nil {
		logger.Error("failed to release laptop", "laptop", laptop, "error", err)
		return "", fmt.Errorf("failed to release laptop: %w", err)
	}

	if !ok {
		if _, err := s.laptopRepo.FindByName(ctx, laptop); err != nil {
			if errors.Is(err, domain.ErrLaptopNotFound) {
				metrics.ReservationOutcomesTotal.WithLabelValues("release", "not_found").Inc()
				return "", domain.NewStatusError(domain.ErrLaptopNotFound, "Laptop '%s' not found.", laptop)
			}
			logger.Error("failed to read laptop after release miss", "laptop", laptop, "error", err)
			return "", fmt.Errorf("failed to find laptop: %w", err)
		}

		metrics.ReservationOutcomesTotal.WithLabelValues("release", "conflict").Inc()
		logger.Warn("release by non-owner", "laptop", laptop, "manager", manager)
		return "", domain.NewStatusError(domain.ErrReservationConflict,
			"Laptop '%s' is not reserved by '%s'.", laptop, manager)
	}

	metrics.ReservationOutcomesTotal.WithLabelValues("release", "ok").Inc()
	logger.Info("laptop reservation released", "laptop", laptop, "manager", manager)

	return fmt.Sprintf("Laptop '%s' released by '%s'.", laptop, manager), nil
}
