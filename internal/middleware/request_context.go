package middleware

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"myLaptopDesk/pkg/logger"
	"myLaptopDesk/pkg/metrics"
	"myLaptopDesk/pkg/requestid"
)

// RequestContext tags each request with a trace id (the incoming
// X-Request-ID or a new uuid), echoes it back, and records the HTTP metrics.
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.SetRequest(req.WithContext(requestid.NewContext(req.Context(), id)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			metrics.HTTPRequestsTotal.WithLabelValues(req.Method, route, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(req.Method, route, status).Observe(time.Since(start).Seconds())

			logger.Debug("request served",
				"trace_id", id,
				"method", req.Method,
				"route", route,
				"status", c.Response().Status,
				"duration", time.Since(start),
			)
			return nil
		}
	}
}
