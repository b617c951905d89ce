package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"myLaptopDesk/domain"
)

const ticketIndexKey = "tickets"

// key format: "ticket:{ticket_id}"
func ticketKey(id string) string {
	return fmt.Sprintf("ticket:%s", id)
}

// insertTicket refuses to overwrite an existing id and appends new ids to the
// index in the same step.
var insertTicket = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], "description", ARGV[2], "status", ARGV[3], "created_at", ARGV[4])
redis.call("RPUSH", KEYS[2], ARGV[1])
return 1
`)

// updateTicketStatus only touches tickets that already exist.
var updateTicketStatus = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], "status", ARGV[1])
return 1
`)

var errTicketExists = errors.New("ticket already exists")

// TicketRepository stores each ticket as a hash plus an id list that keeps
// creation order.
type TicketRepository struct {
	client *redis.Client
}

func NewTicketRepository(client *redis.Client) *TicketRepository {
	return &TicketRepository{
		client: client,
	}
}

func (r *TicketRepository) Insert(ctx context.Context, ticket domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	created, err := insertTicket.Run(ctx, r.client,
		[]string{ticketKey(ticket.ID), ticketIndexKey},
		ticket.ID, ticket.Description, ticket.Status, ticket.CreatedAt.UTC().Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		return fmt.Errorf("failed to store ticket in Redis: %w", err)
	}
	if created == 0 {
		return fmt.Errorf("ticket %q: %w", ticket.ID, errTicketExists)
	}

	return nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	updated, err := updateTicketStatus.Run(ctx, r.client, []string{ticketKey(id)}, status).Int()
	if err != nil {
		return false, fmt.Errorf("failed to update ticket in Redis: %w", err)
	}

	return updated == 1, nil
}

func (r *TicketRepository) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ids, err := r.client.LRange(ctx, ticketIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets from Redis: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Ticket{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, ticketKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read tickets from Redis: %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// index entry without a hash, e.g. removed by hand
			continue
		}
		createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
		if err != nil {
			return nil, fmt.Errorf("ticket %q: invalid created_at: %w", ids[i], err)
		}
		tickets = append(tickets, domain.Ticket{
			ID:          ids[i],
			Description: fields["description"],
			Status:      fields["status"],
			CreatedAt:   createdAt,
		})
	}

	return tickets, nil
}
