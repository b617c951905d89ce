package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myLaptopDesk/pkg/logger"
)

type MaintenanceService interface {
	Status(ctx context.Context, laptop string) (string, error)
	UpdateStatus(ctx context.Context, laptop, status string) (string, error)
}

type MaintenanceHandler struct {
	maintenanceService MaintenanceService
	validator          *validator.Validate
	timeout            time.Duration
}

func NewMaintenanceHandler(maintenanceService MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		validator:          validator.New(),
		timeout:            10 * time.Second,
	}
}

type UpdateMaintenanceRequest struct {
	Status string `json:"status" validate:"required"`
}

type MaintenanceStatus struct {
	LaptopName string `json:"laptop_name"`
	Status     string `json:"status"`
}

func (h *MaintenanceHandler) Get(c echo.Context) error {
	laptop := c.Param("laptop")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	status, err := h.maintenanceService.Status(ctx, laptop)
	if err != nil {
		return writeError(c, "Failed to get maintenance status", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(MaintenanceStatus{LaptopName: laptop, Status: status}))
}

func (h *MaintenanceHandler) Update(c echo.Context) error {
	laptop := c.Param("laptop")

	var req UpdateMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate maintenance request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	msg, err := h.maintenanceService.UpdateStatus(ctx, laptop, req.Status)
	if err != nil {
		return writeError(c, "Failed to update maintenance status", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(msg))
}
