package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %v (%s)", err, rec.Body.String())
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid username or password"},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, domain.ErrRateLimited.Error()},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "insufficient permissions"},
		{"duplicate user", domain.ErrUserExists, http.StatusBadRequest, domain.ErrUserExists.Error()},
		{"attempt completed", domain.ErrAttemptCompleted, http.StatusBadRequest, domain.ErrAttemptCompleted.Error()},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, domain.ErrUserNotFound.Error()},
		{"quiz not found", domain.ErrQuizNotFound, http.StatusNotFound, domain.ErrQuizNotFound.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, code)
			}
			if body.Success {
				t.Fatalf("error envelope must have success=false")
			}
			if body.Error != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, body.Error)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrQuizNotFound)
	code, _ := renderError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("wrapped domain error must still map, got %d", code)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication token"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if body.Error != "missing authentication token" {
		t.Fatalf("unexpected message: %q", body.Error)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	code, body := renderError(t, errors.New("database exploded"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	// The real cause must never reach the client.
	if body.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Error)
	}
}
