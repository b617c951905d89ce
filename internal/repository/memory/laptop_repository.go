// Package memory holds mutex-guarded in-process repositories. They offer the
// same compare-and-set semantics as the postgres repositories and back the
// default single-process deployment and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"myLaptopDesk/domain"
)

type LaptopRepository struct {
	mu      sync.RWMutex
	laptops map[string]*domain.Laptop
	nextID  uint64
}

func NewLaptopRepository(laptops ...domain.Laptop) *LaptopRepository {
	r := &LaptopRepository{laptops: make(map[string]*domain.Laptop, len(laptops))}
	for _, l := range laptops {
		r.put(l)
	}
	return r
}

func (r *LaptopRepository) put(l domain.Laptop) {
	r.nextID++
	if l.ID == 0 {
		l.ID = r.nextID
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	r.laptops[l.Name] = &l
}

// Upsert adds a laptop to the catalog or replaces the catalog fields of an
// existing one. Reservation state is kept.
func (r *LaptopRepository) Upsert(ctx context.Context, laptop *domain.Laptop) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.laptops[laptop.Name]; ok {
		cur.RequiredGPU = laptop.RequiredGPU
		*laptop = *cur
		return nil
	}
	r.put(*laptop)
	*laptop = *r.laptops[laptop.Name]
	return nil
}

func (r *LaptopRepository) FindByName(ctx context.Context, name string) (domain.Laptop, error) {
	if err := ctx.Err(); err != nil {
		return domain.Laptop{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.laptops[name]
	if !ok {
		return domain.Laptop{}, fmt.Errorf("laptop %q: %w", name, domain.ErrLaptopNotFound)
	}
	return *l, nil
}

func (r *LaptopRepository) FindAll(ctx context.Context) ([]domain.Laptop, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Laptop, 0, len(r.laptops))
	for _, l := range r.laptops {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ReserveIfUnowned sets the owner only while the laptop has none. It reports
// false when the laptop is missing or already reserved.
func (r *LaptopRepository) ReserveIfUnowned(ctx context.Context, name, manager string, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.laptops[name]
	if !ok || l.Reserved() {
		return false, nil
	}
	owner := manager
	l.ReservedBy = &owner
	l.ReservedAt = &at
	return true, nil
}

// ReleaseIfOwnedBy clears the reservation only when manager holds it.
func (r *LaptopRepository) ReleaseIfOwnedBy(ctx context.Context, name, manager string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.laptops[name]
	if !ok || !l.Reserved() || *l.ReservedBy != manager {
		return false, nil
	}
	l.ReservedBy = nil
	l.ReservedAt = nil
	return true, nil
}
