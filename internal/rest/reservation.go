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
	ReservationHandler struct {
		reservationService ReservationService
		validator          *validator.Validate
		timeout            time.Duration
	}

	ReservationService interface {
		Reserve(ctx context.Context, laptop, manager string) (string, error)
		Check(ctx context.Context, laptop string) (domain.Reservation, error)
		Release(ctx context.Context, laptop, manager string) (string, error)
	}

	ReservationRequest struct {
		LaptopName  string `json:"laptop_name" validate:"required"`
		ManagerName string `json:"manager_name" validate:"required"`
	}

	CheckRequest struct {
		LaptopName string `json:"laptop_name" validate:"required"`
	}
)

func NewReservationHandler(reservationService ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		validator:          validator.New(),
		timeout:            10 * time.Second,
	}
}

func (h *ReservationHandler) Reserve(c echo.Context) error {
	var req ReservationRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate reserve request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	msg, err := h.reservationService.Reserve(ctx, req.LaptopName, req.ManagerName)
	if err != nil {
		return writeError(c, "Failed to reserve laptop", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(msg))
}

func (h *ReservationHandler) Release(c echo.Context) error {
	var req ReservationRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate release request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	msg, err := h.reservationService.Release(ctx, req.LaptopName, req.ManagerName)
	if err != nil {
		return writeError(c, "Failed to release laptop", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(msg))
}

func (h *ReservationHandler) Check(c echo.Context) error {
	var req CheckRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate check request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Laptop name is required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.reservationService.Check(ctx, req.LaptopName)
	if err != nil {
		return writeError(c, "Failed to check reservation", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}
