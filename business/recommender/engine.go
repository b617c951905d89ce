package recommender

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"myLaptopDesk/domain"
	"myLaptopDesk/pkg/logger"
	"myLaptopDesk/pkg/requestid"
)

// CatalogRepository is the point lookup the engine needs from the laptop
// catalog. A missing laptop is reported as domain.ErrLaptopNotFound.
type CatalogRepository interface {
	FindByName(ctx context.Context, name string) (domain.Laptop, error)
}

// TicketCreator records a failure and returns the new ticket id.
type TicketCreator interface {
	Create(ctx context.Context, description string) (string, error)
}

const StatusSuccess = "Recommendation successful."

type Engine struct {
	model   *Model
	catalog CatalogRepository
	tickets TicketCreator
}

// NewEngine wires a trained model to its catalog and ticket sink. A nil
// model is a programming error.
func NewEngine(model *Model, catalog CatalogRepository, tickets TicketCreator) *Engine {
	if model == nil {
		panic("recommender: NewEngine called with nil model")
	}
	return &Engine{model: model, catalog: catalog, tickets: tickets}
}

func (e *Engine) Model() *Model { return e.model }

// Recommend predicts a laptop for role and confirms it is in the catalog.
// Every failure is ticketed exactly once and returned as a
// *domain.TicketedError.
func (e *Engine) Recommend(ctx context.Context, role string) (domain.Recommendation, error) {
	start := time.Now()
	defer func() { RecommendLatency.Observe(time.Since(start).Seconds()) }()

	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}

	traceID := requestid.FromContext(ctx)
	role = strings.TrimSpace(role)

	roleCode, ok := e.model.RoleCode(role)
	if !ok {
		return domain.Recommendation{}, e.fail(ctx, outcomeRoleNotFound, domain.ErrRoleNotFound, nil,
			fmt.Sprintf("Role '%s' not found in dataset.", role),
			"Role not found in dataset. Ticket ID: %s")
	}

	laptopCode, err := e.model.predictForRole(roleCode)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("predict for role %q: %w", role, err)
	}

	laptop, ok := e.model.LaptopName(laptopCode)
	if !ok {
		return domain.Recommendation{}, e.fail(ctx, outcomeDecodeFailure, domain.ErrDecodeFailure, nil,
			fmt.Sprintf("Recommended laptop code '%d' not found.", laptopCode),
			"Recommendation failed. Ticket ID: %s")
	}

	if _, err := e.catalog.FindByName(ctx, laptop); err != nil {
		if errors.Is(err, domain.ErrLaptopNotFound) {
			return domain.Recommendation{}, e.fail(ctx, outcomeLaptopUnavailable, domain.ErrLaptopUnavailable, nil,
				fmt.Sprintf("Laptop '%s' not available.", laptop),
				"Laptop not available. Ticket ID: %s")
		}
		return domain.Recommendation{}, e.fail(ctx, outcomeCatalogError, domain.ErrCatalogLookup, err,
			fmt.Sprintf("Laptop '%s' not available.", laptop),
			"Laptop not available. Ticket ID: %s")
	}

	RecommendOutcomesTotal.WithLabelValues(outcomeSuccess).Inc()
	logger.Info("laptop recommended",
		"trace_id", traceID,
		"role", role,
		"laptop", laptop,
	)

	return domain.Recommendation{Role: role, Laptop: laptop, Status: StatusSuccess}, nil
}

// fail opens the ticket for a failed recommendation and builds the error the
// caller sees. statusFormat receives the ticket id.
func (e *Engine) fail(ctx context.Context, outcome string, kind, cause error, description, statusFormat string) error {
	RecommendOutcomesTotal.WithLabelValues(outcome).Inc()

	ticketID, err := e.tickets.Create(ctx, description)
	if err != nil {
		logger.Error("failed to open ticket for recommendation failure",
			"trace_id", requestid.FromContext(ctx),
			"description", description,
			"error", err,
		)
		return fmt.Errorf("open ticket for %q: %w", description, errors.Join(kind, err))
	}

	logger.Warn("recommendation failed",
		"trace_id", requestid.FromContext(ctx),
		"outcome", outcome,
		"ticket_id", ticketID,
		"description", description,
		"cause", cause,
	)

	return &domain.TicketedError{
		Kind:     kind,
		TicketID: ticketID,
		Status:   fmt.Sprintf(statusFormat, ticketID),
		Cause:    cause,
	}
}
