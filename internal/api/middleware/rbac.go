package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// RBAC permits the request only when the authenticated role is in the
// allow-list. It fails closed: an absent role means Auth never ran, which is
// an authentication failure (401), distinct from an authorization failure
// (403) so clients can tell "log in" from "not allowed".
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, _ := c.Get(ContextRole).(string)
			role, ok := domain.ParseRole(roleStr)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication token")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
