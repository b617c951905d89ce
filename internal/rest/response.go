package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"myLaptopDesk/domain"
	"myLaptopDesk/pkg/logger"
)

type ResponseError struct {
	Message string `json:"message"`
}

// StatusCode maps a service error to its HTTP status. Ticketed recommendation
// failures are client errors: the ticket id is part of the message.
func StatusCode(err error) int {
	var ticketed *domain.TicketedError
	switch {
	case errors.As(err, &ticketed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLaptopNotFound),
		errors.Is(err, domain.ErrAssignmentNotFound),
		errors.Is(err, domain.ErrMaintenanceNotFound),
		errors.Is(err, domain.ErrTicketNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReservationConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, msg string, err error) error {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		logger.Error(msg, "path", c.Path(), "error", err)
		return c.JSON(code, ResponseError{Message: http.StatusText(code)})
	}

	logger.Warn(msg, "path", c.Path(), "error", err)
	return c.JSON(code, ResponseError{Message: domain.StatusMessage(err)})
}
