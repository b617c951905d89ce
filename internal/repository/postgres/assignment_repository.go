package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"myLaptopDesk/domain"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{
		DB: db,
	}
}

func (r *AssignmentRepository) Insert(ctx context.Context, assignment *domain.Assignment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// Offboard runs in one transaction: the oldest matching Onboarding row is
// locked, moved to Offboarding, audited and deleted. Any error rolls the
// whole return back.
func (r *AssignmentRepository) Offboard(ctx context.Context, employeeID, laptop, returnDate string, audit func(domain.Assignment) error) (domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Assignment{}, fmt.Errorf("context error: %w", err)
	}

	var returned domain.Assignment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row domain.Assignment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("employee_id = ? AND laptop_name = ? AND status = ?", employeeID, laptop, domain.StatusOnboarding).
			Order("id").
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("employee %q laptop %q: %w", employeeID, laptop, domain.ErrAssignmentNotFound)
			}
			return fmt.Errorf("failed to lock assignment: %w", err)
		}

		result := tx.Model(&domain.Assignment{}).
			Where("id = ? AND status = ?", row.ID, domain.StatusOnboarding).
			Updates(map[string]interface{}{
				"status":      domain.StatusOffboarding,
				"return_date": returnDate,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark assignment offboarding: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("assignment %d: %w", row.ID, domain.ErrAssignmentNotFound)
		}

		row.Status = domain.StatusOffboarding
		row.ReturnDate = returnDate
		if audit != nil {
			if err := audit(row); err != nil {
				return fmt.Errorf("audit offboarding: %w", err)
			}
		}

		result = tx.Where("id = ? AND status = ?", row.ID, domain.StatusOffboarding).Delete(&domain.Assignment{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete assignment: %w", result.Error)
		}

		returned = row
		return nil
	})
	if err != nil {
		return domain.Assignment{}, err
	}

	return returned, nil
}

func (r *AssignmentRepository) FindActive(ctx context.Context, employeeID string) ([]domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var assignments []domain.Assignment
	err := r.DB.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, domain.StatusOnboarding).
		Order("id").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find assignments: %w", err)
	}

	return assignments, nil
}
