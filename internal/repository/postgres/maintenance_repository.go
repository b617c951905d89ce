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

type MaintenanceRepository struct {
	DB *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{
		DB: db,
	}
}

func (r *MaintenanceRepository) FindByLaptop(ctx context.Context, laptop string) (domain.MaintenanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("context error: %w", err)
	}

	var rec domain.MaintenanceRecord
	err := r.DB.WithContext(ctx).First(&rec, "laptop_name = ?", laptop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MaintenanceRecord{}, fmt.Errorf("laptop %q: %w", laptop, domain.ErrMaintenanceNotFound)
		}
		return domain.MaintenanceRecord{}, fmt.Errorf("failed to find maintenance record: %w", err)
	}

	return rec, nil
}

func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, laptop, status string, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.MaintenanceRecord{}).
		Where("laptop_name = ?", laptop).
		Updates(map[string]interface{}{
			"status":       status,
			"last_updated": at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update maintenance status: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// InsertIfAbsent stores rec unless the laptop already has a record.
func (r *MaintenanceRepository) InsertIfAbsent(ctx context.Context, rec domain.MaintenanceRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "laptop_name"}},
			DoNothing: true,
		},
	).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to insert maintenance record: %w", err)
	}

	return nil
}
