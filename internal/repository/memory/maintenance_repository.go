package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"myLaptopDesk/domain"
)

type MaintenanceRepository struct {
	mu      sync.RWMutex
	records map[string]domain.MaintenanceRecord
}

func NewMaintenanceRepository(records ...domain.MaintenanceRecord) *MaintenanceRepository {
	r := &MaintenanceRepository{records: make(map[string]domain.MaintenanceRecord, len(records))}
	for _, rec := range records {
		r.records[rec.LaptopName] = rec
	}
	return r
}

func (r *MaintenanceRepository) FindByLaptop(ctx context.Context, laptop string) (domain.MaintenanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MaintenanceRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[laptop]
	if !ok {
		return domain.MaintenanceRecord{}, fmt.Errorf("laptop %q: %w", laptop, domain.ErrMaintenanceNotFound)
	}
	return rec, nil
}

// UpdateStatus changes an existing record only.
func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, laptop, status string, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[laptop]
	if !ok {
		return false, nil
	}
	rec.Status = status
	rec.LastUpdated = at
	r.records[laptop] = rec
	return true, nil
}

// InsertIfAbsent stores rec unless the laptop already has a record.
func (r *MaintenanceRepository) InsertIfAbsent(ctx context.Context, rec domain.MaintenanceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.LaptopName]; !ok {
		r.records[rec.LaptopName] = rec
	}
	return nil
}
