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

type TicketService interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	Update(ctx context.Context, id, status string) (bool, error)
}

type TicketHandler struct {
	ticketService TicketService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewTicketHandler(ticketService TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type UpdateTicketRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *TicketHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tickets, err := h.ticketService.List(ctx)
	if err != nil {
		return writeError(c, "Failed to list tickets", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(tickets))
}

func (h *TicketHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var req UpdateTicketRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate ticket request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ok, err := h.ticketService.Update(ctx, id, req.Status)
	if err != nil {
		return writeError(c, "Failed to update ticket", err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "ticket not found"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Ticket updated successfully"))
}
