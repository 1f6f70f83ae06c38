package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-quiz-app/quiz-api/internal/api/metrics"
	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// UserHandler handles registration, login, logout, session invalidation,
// and user-scoped reads.
type UserHandler struct {
	users   ports.UserService
	cookies *CookieManager
}

func NewUserHandler(users ports.UserService, cookies *CookieManager) *UserHandler {
	return &UserHandler{users: users, cookies: cookies}
}

// Register creates an account and logs it in (cookie set on success).
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.users.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Set(c, session.Token)
	return respondMessage(c, http.StatusCreated, session.User, "User created successfully")
}

// Login authenticates and sets the session cookie. Rate limiting runs in
// middleware before this handler; credential failures surface as one
// generic message.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.cookies.Set(c, session.Token)
	return respondMessage(c, http.StatusOK, session.User, "Login successful")
}

// Logout clears the session cookie. Idempotent; requires no auth.
func (h *UserHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return respondMessage(c, http.StatusOK, nil, "Logged out")
}

// InvalidateSessions revokes every session for the caller and swaps in a
// fresh one.
func (h *UserHandler) InvalidateSessions(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	session, err := h.users.InvalidateSessions(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	metrics.SessionsInvalidatedTotal.Inc()
	h.cookies.Set(c, session.Token)
	return respondMessage(c, http.StatusOK, session.User, "All sessions invalidated")
}

// Get returns a user profile. Self or manager only.
func (h *UserHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := requireSelfOrManager(c, id); err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// Stats returns the dashboard aggregate. Self or manager only.
func (h *UserHandler) Stats(c echo.Context) error {
	id := c.Param("id")
	if err := requireSelfOrManager(c, id); err != nil {
		return err
	}

	stats, err := h.users.Stats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats)
}

// Attempts returns the user's attempt history. Self or manager only.
func (h *UserHandler) Attempts(c echo.Context) error {
	id := c.Param("id")
	if err := requireSelfOrManager(c, id); err != nil {
		return err
	}

	attempts, err := h.users.Attempts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, attempts)
}
