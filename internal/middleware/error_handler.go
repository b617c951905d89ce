package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"myLaptopDesk/pkg/logger"
)

type errorResponse struct {
	Message string `json:"message"`
}

// ErrorHandler renders errors that escape the handlers: routing errors,
// binder errors and panics recovered by echo.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
		if he.Internal != nil {
			logger.Debug("http error", "code", code, "internal", he.Internal)
		}
	} else {
		logger.Error("unhandled error", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorResponse{Message: message})
	}
	if err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
