package memory

import (
	"context"
	"fmt"
	"sync"

	"myLaptopDesk/domain"
)

// TicketRepository keeps tickets for the lifetime of the process.
type TicketRepository struct {
	mu      sync.RWMutex
	order   []string
	tickets map[string]domain.Ticket
}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{tickets: make(map[string]domain.Ticket)}
}

func (r *TicketRepository) Insert(ctx context.Context, t domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[t.ID]; ok {
		return fmt.Errorf("ticket %q already exists", t.ID)
	}
	r.tickets[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tickets[id]
	if !ok {
		return false, nil
	}
	t.Status = status
	r.tickets[id] = t
	return true, nil
}

// FindAll returns tickets in creation order.
func (r *TicketRepository) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Ticket, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tickets[id])
	}
	return out, nil
}
