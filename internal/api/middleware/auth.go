package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// AuthCookieName is the session cookie carrying the signed token.
const AuthCookieName = "authToken"

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// TokenVersionLookup is the slice of the user repository the middleware
// needs to cross-check revocation state.
type TokenVersionLookup interface {
	TokenVersion(ctx context.Context, id string) (int64, error)
}

// Auth validates the session cookie and injects the resolved identity into
// the request context. The client-facing message is identical for invalid,
// expired, and revoked tokens; internal logs keep the distinction.
func Auth(tokens ports.TokenService, versions TokenVersionLookup, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication token")
			}

			claims, ok, err := tokens.Verify(cookie.Value)
			if err != nil {
				// Configuration defect, not a bad token. Let the error
				// handler surface a 500 and log the cause.
				return err
			}
			if !ok {
				log.Debug().Str("reason", "invalid_token").Msg("authentication rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			stored, err := versions.TokenVersion(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					log.Debug().Str("reason", "unknown_user").Msg("authentication rejected")
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
				}
				return err
			}
			if stored != claims.TokenVersion {
				// All sessions were invalidated after this token was issued.
				// Same client-facing outcome as an invalid token.
				log.Debug().Str("reason", "stale_token_version").Str("user_id", claims.UserID).Msg("authentication rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, string(claims.Role))

			return next(c)
		}
	}
}
