package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/api/metrics"
	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

const (
	loginWindow      = 15 * time.Minute
	loginMaxAttempts = 5

	// maxPeekBytes caps how much of the body is read when extracting the
	// claimed username.
	maxPeekBytes = 4 << 10
)

// LoginRateLimit guards the login endpoint with two independent fixed
// windows: one keyed by client address, one by the claimed username taken
// from the body before any credential work. Both counters advance on every
// attempt, success or failure. Address limiting alone is defeated by
// spreading attempts across addresses against one account; the username key
// closes that gap.
//
// The counter store is shared (Redis), so the limit holds across instances.
// A store failure permits the request rather than locking out logins.
func LoginRateLimit(counters ports.CounterStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if tripped(ctx, counters, "ratelimit:login:ip:"+c.RealIP(), "ip", log) {
				metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
				return domain.ErrRateLimited
			}

			if username := peekUsername(c); username != "" {
				if tripped(ctx, counters, "ratelimit:login:user:"+username, "username", log) {
					metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
					return domain.ErrRateLimited
				}
			}

			return next(c)
		}
	}
}

// tripped atomically advances the counter for key and reports whether the
// window's budget is exhausted. Which key tripped is recorded in metrics and
// logs only, never revealed to the client.
func tripped(ctx context.Context, counters ports.CounterStore, key, kind string, log zerolog.Logger) bool {
	count, err := counters.Incr(ctx, key, loginWindow)
	if err != nil {
		log.Warn().Err(err).Str("key_kind", kind).Msg("rate limit store unavailable, allowing request")
		return false
	}
	if count > loginMaxAttempts {
		metrics.RateLimitTripsTotal.WithLabelValues(kind).Inc()
		log.Info().Str("key_kind", kind).Int64("count", count).Msg("login rate limit tripped")
		return true
	}
	return false
}

// peekUsername extracts the claimed username from the JSON body without
// consuming it for the handler's own bind.
func peekUsername(c echo.Context) string {
	req := c.Request()
	if req.Body == nil {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxPeekBytes))
	if err != nil {
		return ""
	}
	rest, _ := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(append(body, rest...)))

	var payload struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Username
}
