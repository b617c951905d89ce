package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"myLaptopDesk/internal/rest"
)

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	api.POST("/recommend", handler.Recommend)
}

func SetAssignmentRoutes(api *echo.Group, handler *rest.AssignmentHandler) {
	api.POST("/onboard", handler.Onboard)
	api.POST("/offboard", handler.Offboard)
	api.GET("/employees/:id/assignments", handler.ListActive)
}

func SetReservationRoutes(api *echo.Group, handler *rest.ReservationHandler) {
	api.POST("/reserve", handler.Reserve)
	api.POST("/check", handler.Check)
	api.POST("/release", handler.Release)
}

func SetTicketRoutes(api *echo.Group, handler *rest.TicketHandler) {
	tickets := api.Group("/tickets")
	tickets.GET("", handler.List)
	tickets.PUT("/:id", handler.Update)
}

func SetMaintenanceRoutes(api *echo.Group, handler *rest.MaintenanceHandler) {
	maintenance := api.Group("/maintenance")
	maintenance.GET("/:laptop", handler.Get)
	maintenance.PUT("/:laptop", handler.Update)
}

func SetMetricsRoute(api *echo.Group) {
	api.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
