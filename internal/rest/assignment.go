package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myLaptopDesk/domain"
	"myLaptopDesk/pkg/logger"
)

type (
	AssignmentHandler struct {
		assignmentService AssignmentService
		validator         *validator.Validate
		timeout           time.Duration
	}

	AssignmentService interface {
		Onboard(ctx context.Context, employeeID, name, role string) (string, error)
		Offboard(ctx context.Context, employeeID, laptop string) (string, error)
		ListActive(ctx context.Context, employeeID string) ([]domain.Assignment, error)
	}

	OnboardRequest struct {
		EmployeeID string `json:"employee_id" validate:"required"`
		Name       string `json:"name" validate:"required"`
		Role       string `json:"role" validate:"required"`
		RequireGPU *bool  `json:"require_gpu,omitempty"`
	}

	OffboardRequest struct {
		EmployeeID string `json:"employee_id" validate:"required"`
		LaptopName string `json:"laptop_name" validate:"required"`
	}
)

func NewAssignmentHandler(assignmentService AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

func (h *AssignmentHandler) Onboard(c echo.Context) error {
	var req OnboardRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate onboard request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	msg, err := h.assignmentService.Onboard(ctx, req.EmployeeID, req.Name, req.Role)
	if err != nil {
		return writeError(c, "Failed to onboard employee", err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(msg))
}

func (h *AssignmentHandler) Offboard(c echo.Context) error {
	var req OffboardRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate offboard request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	msg, err := h.assignmentService.Offboard(ctx, req.EmployeeID, req.LaptopName)
	if err != nil {
		return writeError(c, "Failed to offboard employee", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(msg))
}

func (h *AssignmentHandler) ListActive(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	assignments, err := h.assignmentService.ListActive(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, "Failed to list assignments", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(assignments))
}
