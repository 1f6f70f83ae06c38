package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ai-quiz-app/quiz-api/internal/api/metrics"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// AIHandler proxies recommendation and explanation-enhancement requests to
// the AI service. Upstream failures never surface: the service returns
// canned fallbacks instead.
type AIHandler struct {
	ai ports.AIService
}

func NewAIHandler(ai ports.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

// Recommend returns personalized study recommendations based on the user's
// attempt history. Self or manager only.
func (h *AIHandler) Recommend(c echo.Context) error {
	var req recommendationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireSelfOrManager(c, req.UserID); err != nil {
		return err
	}

	metrics.AIRequestsTotal.WithLabelValues("recommendation").Inc()
	timer := time.Now()

	recommendation, err := h.ai.Recommend(c.Request().Context(), req.UserID)
	metrics.AIRequestDuration.WithLabelValues("recommendation").Observe(time.Since(timer).Seconds())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, recommendation)
}

// EnhanceExplanation rewrites a question explanation in the context of the
// user's wrong answer.
func (h *AIHandler) EnhanceExplanation(c echo.Context) error {
	var req enhanceExplanationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	metrics.AIRequestsTotal.WithLabelValues("enhance_explanation").Inc()
	timer := time.Now()

	enhanced, err := h.ai.EnhanceExplanation(c.Request().Context(), ports.EnhanceExplanationInput{
		Question:            req.Question,
		UserAnswer:          req.UserAnswer,
		CorrectAnswer:       req.CorrectAnswer,
		OriginalExplanation: req.OriginalExplanation,
	})
	metrics.AIRequestDuration.WithLabelValues("enhance_explanation").Observe(time.Since(timer).Seconds())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, enhanced)
}
