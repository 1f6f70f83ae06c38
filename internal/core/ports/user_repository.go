package ports

import (
	"context"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// UserRepository defines user persistence. Username uniqueness is enforced
// here (unique index), surfaced as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// TokenVersion returns the current stored token version for the user.
	TokenVersion(ctx context.Context, id string) (int64, error)

	// BumpTokenVersion atomically increments the user's token version and
	// returns the post-increment value. A stale read here would issue a
	// token that is immediately self-invalidating.
	BumpTokenVersion(ctx context.Context, id string) (int64, error)

	// UpdateRole changes a user's role. Used only by startup bootstrap.
	UpdateRole(ctx context.Context, id string, role domain.Role) error
}
