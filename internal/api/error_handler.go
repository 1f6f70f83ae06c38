package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to deterministic HTTP status codes.
//   - Collapses every credential failure to one indistinguishable message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent envelope: {"success":false,"error":"<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Success: false, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		// One message whatever the root cause; never reveal which factor failed.
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, domain.ErrRateLimited.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "insufficient permissions"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, domain.ErrUserExists.Error()
	case errors.Is(err, domain.ErrAttemptCompleted):
		return http.StatusBadRequest, domain.ErrAttemptCompleted.Error()
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrAttemptNotFound):
		return http.StatusNotFound, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
