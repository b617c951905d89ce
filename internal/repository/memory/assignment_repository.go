package memory

import (
	"context"
	"fmt"
	"sync"

	"myLaptopDesk/domain"
)

type AssignmentRepository struct {
	mu      sync.Mutex
	records []*domain.Assignment
	nextID  uint64
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{}
}

func (r *AssignmentRepository) Insert(ctx context.Context, a *domain.Assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	a.ID = r.nextID
	rec := *a
	r.records = append(r.records, &rec)
	return nil
}

// Offboard moves the first active record matching employeeID and laptop to
// Offboarding, hands it to audit and removes it. The record is left untouched
// when audit fails.
func (r *AssignmentRepository) Offboard(ctx context.Context, employeeID, laptop, returnDate string, audit func(domain.Assignment) error) (domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Assignment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.records {
		if rec.EmployeeID != employeeID || rec.LaptopName != laptop || rec.Status != domain.StatusOnboarding {
			continue
		}

		returned := *rec
		returned.Status = domain.StatusOffboarding
		returned.ReturnDate = returnDate
		if audit != nil {
			if err := audit(returned); err != nil {
				return domain.Assignment{}, fmt.Errorf("audit offboarding: %w", err)
			}
		}

		r.records = append(r.records[:i], r.records[i+1:]...)
		return returned, nil
	}

	return domain.Assignment{}, fmt.Errorf("employee %q laptop %q: %w", employeeID, laptop, domain.ErrAssignmentNotFound)
}

func (r *AssignmentRepository) FindActive(ctx context.Context, employeeID string) ([]domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Assignment
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == domain.StatusOnboarding {
			out = append(out, *rec)
		}
	}
	return out, nil
}
