package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-quiz-app/quiz-api/internal/api/metrics"
	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// AttemptHandler starts, completes, and serves quiz attempts for the
// authenticated user.
type AttemptHandler struct {
	attempts ports.AttemptService
}

func NewAttemptHandler(attempts ports.AttemptService) *AttemptHandler {
	return &AttemptHandler{attempts: attempts}
}

// Start opens a new attempt on a quiz for the caller.
func (h *AttemptHandler) Start(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req startAttemptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	attempt, err := h.attempts.Start(c.Request().Context(), userID, req.QuizID)
	if err != nil {
		return err
	}

	metrics.AttemptsStartedTotal.Inc()
	return respondMessage(c, http.StatusCreated, attempt, "Attempt started")
}

// Complete scores the attempt and returns the full result with per-answer
// feedback.
func (h *AttemptHandler) Complete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req completeAttemptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	answers := make([]ports.SubmitAnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, ports.SubmitAnswerInput{
			QuestionID: a.QuestionID,
			UserAnswer: a.UserAnswer,
		})
	}

	result, err := h.attempts.Complete(c.Request().Context(), userID, req.AttemptID, answers)
	if err != nil {
		return err
	}

	metrics.AttemptsCompletedTotal.WithLabelValues(feedbackBand(result.Percentage)).Inc()
	return respondMessage(c, http.StatusOK, result, "Attempt completed")
}

// Get returns an attempt with its answers. Owner or manager only; the
// service enforces that.
func (h *AttemptHandler) Get(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	attempt, err := h.attempts.Get(c.Request().Context(), userID, role, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, attempt)
}

// feedbackBand maps a score percentage onto the metric band label.
func feedbackBand(percentage float64) string {
	switch {
	case percentage >= domain.ThresholdExcellent:
		return "excellent"
	case percentage >= domain.ThresholdGood:
		return "good"
	case percentage >= domain.ThresholdAverage:
		return "average"
	default:
		return "needs_improvement"
	}
}
