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

type RecommendationService interface {
	Recommend(ctx context.Context, role string) (domain.Recommendation, error)
}

type RecommendationHandler struct {
	recommendationService RecommendationService
	validator             *validator.Validate
	timeout               time.Duration
}

func NewRecommendationHandler(recommendationService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		validator:             validator.New(),
		timeout:               10 * time.Second,
	}
}

// RecommendRequest carries require_gpu for compatibility; it does not
// influence the recommendation.
type RecommendRequest struct {
	Role       string `json:"role" validate:"required"`
	RequireGPU *bool  `json:"require_gpu,omitempty"`
}

func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate recommend request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rec, err := h.recommendationService.Recommend(ctx, req.Role)
	if err != nil {
		return writeError(c, "Failed to recommend laptop", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rec))
}
