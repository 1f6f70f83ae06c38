package ports

import (
	"context"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// Session pairs a user with a freshly issued token.
type Session struct {
	User  *domain.User
	Token string
}

// UserService implements registration, login, and account queries.
type UserService interface {
	// Register creates an ORDINARY user and returns a session for it.
	Register(ctx context.Context, username, password string) (*Session, error)

	// Login verifies credentials. Every failure cause collapses to
	// domain.ErrInvalidCredentials, and the call always pays one hash
	// comparison plus a randomized delay regardless of outcome.
	Login(ctx context.Context, username, password string) (*Session, error)

	// InvalidateSessions bumps the user's token version, revoking every
	// outstanding token, and returns a replacement session issued from the
	// fresh post-increment version.
	InvalidateSessions(ctx context.Context, userID string) (*Session, error)

	Get(ctx context.Context, id string) (*domain.User, error)
	Stats(ctx context.Context, userID string) (*domain.UserStats, error)
	Attempts(ctx context.Context, userID string) ([]domain.Attempt, error)
}
