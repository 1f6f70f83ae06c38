package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-quiz-app/quiz-api/internal/api/middleware"
	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fails closed when it is absent or malformed.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get(middleware.ContextUserID).(string)
	roleStr, _ := c.Get(middleware.ContextRole).(string)

	role, ok := domain.ParseRole(roleStr)
	if userID == "" || !ok {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// requireSelfOrManager allows access to a user-scoped resource only to its
// owner or a manager.
func requireSelfOrManager(c echo.Context, ownerID string) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if userID != ownerID && role != domain.RoleManager {
		return domain.ErrForbidden
	}
	return nil
}
