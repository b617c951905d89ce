package assignment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"myLaptopDesk/domain"
	"myLaptopDesk/pkg/logger"
	"myLaptopDesk/pkg/metrics"
)

// AssignmentRepository contract interface. Offboard must run the whole
// return (lock, transition, audit, delete) as one unit and leave the record
// untouched when audit fails.
type AssignmentRepository interface {
	Insert(ctx context.Context, assignment *domain.Assignment) error
	Offboard(ctx context.Context, employeeID, laptop, returnDate string, audit func(domain.Assignment) error) (domain.Assignment, error)
	FindActive(ctx context.Context, employeeID string) ([]domain.Assignment, error)
}

// Recommender picks a laptop for a role.
type Recommender interface {
	Recommend(ctx context.Context, role string) (domain.Recommendation, error)
}

// MaintenanceReader reports the maintenance status of a laptop.
type MaintenanceReader interface {
	Status(ctx context.Context, laptop string) (string, error)
}

// AuditHook observes a record in the Offboarding state before it is
// deleted. Returning an error aborts the offboarding.
type AuditHook func(ctx context.Context, a domain.Assignment) error

type AssignInput struct {
	EmployeeID string `validate:"required"`
	Name       string `validate:"required"`
	Role       string `validate:"required"`
	LaptopName string `validate:"required"`
}

type assignmentService struct {
	assignmentRepo AssignmentRepository
	recommender    Recommender
	maintenance    MaintenanceReader
	audit          AuditHook
	validate       *validator.Validate
	now            func() time.Time
}

type Option func(*assignmentService)

func WithAuditHook(hook AuditHook) Option {
	return func(s *assignmentService) { s.audit = hook }
}

func WithClock(now func() time.Time) Option {
	return func(s *assignmentService) { s.now = now }
}

func NewAssignmentService(assignmentRepo AssignmentRepository, recommender Recommender, maintenance MaintenanceReader, opts ...Option) *assignmentService {
	s := &assignmentService{
		assignmentRepo: assignmentRepo,
		recommender:    recommender,
		maintenance:    maintenance,
		audit:          logAudit,
		validate:       validator.New(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// logAudit is the default hook: it records the returned laptop in the log.
func logAudit(_ context.Context, a domain.Assignment) error {
	logger.Info("laptop returned",
		"employee_id", a.EmployeeID,
		"laptop", a.LaptopName,
		"assigned_on", a.Date,
		"returned_on", a.ReturnDate,
	)
	return nil
}

// Assign records a new Onboarding assignment. Existing assignments of the
// same employee and laptop are not checked.
func (s *assignmentService) Assign(ctx context.Context, in AssignInput) (string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when assigning laptop")
		return "", fmt.Errorf("context error: %w", err)
	}

	in = AssignInput{
		EmployeeID: strings.TrimSpace(in.EmployeeID),
		Name:       strings.TrimSpace(in.Name),
		Role:       strings.TrimSpace(in.Role),
		LaptopName: strings.TrimSpace(in.LaptopName),
	}
	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid assignment data", "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	a := &domain.Assignment{
		EmployeeID: in.EmployeeID,
		Name:       in.Name,
		Role:       in.Role,
		LaptopName: in.LaptopName,
		Status:     domain.StatusOnboarding,
		Date:       domain.FormatDate(s.now()),
	}
	if err := s.assignmentRepo.Insert(ctx, a); err != nil {
		logger.Error("failed to create assignment", "employee_id", in.EmployeeID, "error", err)
		return "", fmt.Errorf("failed to create assignment: %w", err)
	}

	metrics.AssignmentEventsTotal.WithLabelValues("assigned").Inc()
	logger.Info("laptop assigned", "employee_id", a.EmployeeID, "laptop", a.LaptopName, "assignment_id", a.ID)

	return fmt.Sprintf("Laptop '%s' assigned to employee '%s'.", a.LaptopName, a.EmployeeID), nil
}

// Offboard returns a laptop: the active record moves to Offboarding, is
// audited and deleted in one step.
func (s *assignmentService) Offboard(ctx context.Context, employeeID, laptop string) (string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when offboarding laptop")
		return "", fmt.Errorf("context error: %w", err)
	}

	employeeID, laptop = strings.TrimSpace(employeeID), strings.TrimSpace(laptop)
	if employeeID == "" || laptop == "" {
		logger.Error("Invalid offboarding: employee id and laptop name are required")
		return "", fmt.Errorf("%w: employee id and laptop name are required", domain.ErrInvalidInput)
	}

	audit := func(a domain.Assignment) error {
		if !domain.CanTransition(domain.StatusOnboarding, a.Status) {
			return fmt.Errorf("assignment %d: unexpected status %q", a.ID, a.Status)
		}
		if s.audit == nil {
			return nil
		}
		return s.audit(ctx, a)
	}

	if _, err := s.assignmentRepo.Offboard(ctx, employeeID, laptop, domain.FormatDate(s.now()), audit); err != nil {
		if errors.Is(err, domain.ErrAssignmentNotFound) {
			logger.Warn("no active assignment", "employee_id", employeeID, "laptop", laptop)
			return "", domain.NewStatusError(domain.ErrAssignmentNotFound,
				"No active assignment found for laptop '%s' with employee '%s'.", laptop, employeeID)
		}
		logger.Error("failed to offboard laptop", "employee_id", employeeID, "laptop", laptop, "error", err)
		return "", fmt.Errorf("failed to offboard laptop: %w", err)
	}

	metrics.AssignmentEventsTotal.WithLabelValues("offboarded").Inc()

	return fmt.Sprintf("Laptop '%s' returned by employee '%s' and record deleted.", laptop, employeeID), nil
}

func (s *assignmentService) ListActive(ctx context.Context, employeeID string) ([]domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing assignments")
		return nil, fmt.Errorf("context error: %w", err)
	}

	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee id is required", domain.ErrInvalidInput)
	}

	assignments, err := s.assignmentRepo.FindActive(ctx, employeeID)
	if err != nil {
		logger.Error("failed to list assignments", "employee_id", employeeID, "error", err)
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}

// Onboard recommends a laptop for role and assigns it. Recommendation
// failures come back unchanged (ticketed) and nothing is assigned.
func (s *assignmentService) Onboard(ctx context.Context, employeeID, name, role string) (string, error) {
	if strings.TrimSpace(employeeID) == "" || strings.TrimSpace(name) == "" {
		logger.Error("Invalid onboarding: employee id and name are required")
		return "", fmt.Errorf("%w: employee id and name are required", domain.ErrInvalidInput)
	}

	rec, err := s.recommender.Recommend(ctx, role)
	if err != nil {
		return "", err
	}

	msg, err := s.Assign(ctx, AssignInput{
		EmployeeID: employeeID,
		Name:       name,
		Role:       role,
		LaptopName: rec.Laptop,
	})
	if err != nil {
		return "", err
	}

	status, err := s.maintenance.Status(ctx, rec.Laptop)
	if err != nil {
		logger.Warn("maintenance status unavailable", "laptop", rec.Laptop, "error", err)
		status = domain.MaintenanceNoData
	}

	return fmt.Sprintf("%s Maintenance status: %s", msg, status), nil
}
