package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"myLaptopDesk/domain"
)

type LaptopRepository struct {
	DB *gorm.DB
}

func NewLaptopRepository(db *gorm.DB) *LaptopRepository {
	return &LaptopRepository{
		DB: db,
	}
}

// Upsert inserts a catalog entry or refreshes its catalog columns. The
// reservation columns are never touched here.
func (r *LaptopRepository) Upsert(ctx context.Context, laptop *domain.Laptop) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "laptop_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"required_gpu"}),
		},
	).Create(laptop).Error; err != nil {
		return fmt.Errorf("failed to upsert laptop: %w", err)
	}

	return nil
}

func (r *LaptopRepository) FindByName(ctx context.Context, name string) (domain.Laptop, error) {
	if err := ctx.Err(); err != nil {
		return domain.Laptop{}, fmt.Errorf("context error: %w", err)
	}

	var laptop domain.Laptop
	err := r.DB.WithContext(ctx).Where("laptop_name = ?", name).First(&laptop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Laptop{}, fmt.Errorf("laptop %q: %w", name, domain.ErrLaptopNotFound)
		}
		return domain.Laptop{}, fmt.Errorf("failed to find laptop: %w", err)
	}

	return laptop, nil
}

func (r *LaptopRepository) FindAll(ctx context.Context) ([]domain.Laptop, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var laptops []domain.Laptop
	if err := r.DB.WithContext(ctx).Order("id").Find(&laptops).Error; err != nil {
		return nil, fmt.Errorf("failed to find laptops: %w", err)
	}

	return laptops, nil
}

// ReserveIfUnowned is a single conditional UPDATE; concurrent callers race on
// the row and at most one of them sees a row affected.
func (r *LaptopRepository) ReserveIfUnowned(ctx context.Context, name, manager string, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Laptop{}).
		Where("laptop_name = ? AND reserved_by IS NULL", name).
		Updates(map[string]interface{}{
			"reserved_by": manager,
			"reserved_at": at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to reserve laptop: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *LaptopRepository) ReleaseIfOwnedBy(ctx context.Context, name, manager string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Laptop{}).
		Where("laptop_name = ? AND reserved_by = ?", name, manager).
		Updates(map[string]interface{}{
			"reserved_by": nil,
			"reserved_at": nil,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to release laptop: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}
