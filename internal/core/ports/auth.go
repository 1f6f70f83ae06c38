package ports

import (
	"context"
	"time"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// PasswordHasher wraps the slow adaptive hash used for credential storage.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A malformed digest is
	// a non-match, never an error.
	Verify(plaintext, digest string) bool

	// VerifyDummy runs a full verification against a precomputed digest of a
	// fixed, never-real password. Called when a username lookup misses so
	// that login always pays one hash comparison.
	VerifyDummy(plaintext string)
}

// TokenClaims is the verified payload of a session token.
type TokenClaims struct {
	UserID       string
	Role         domain.Role
	TokenVersion int64
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	// Issue returns a signed token with the configured absolute expiry.
	// Fails with domain.ErrMissingSecret when the signing secret is unset.
	Issue(userID string, role domain.Role, tokenVersion int64) (string, error)

	// Verify checks signature and expiry. ok is false for any malformed,
	// expired, or mis-signed token; callers cannot distinguish those cases.
	// err is non-nil only for configuration defects.
	Verify(token string) (claims TokenClaims, ok bool, err error)
}

// CounterStore is the shared fixed-window counter backing the rate limiter.
// Incr must be atomic so concurrent attempts cannot both slip under a limit.
type CounterStore interface {
	// Incr advances the counter for key, starting a new window of the given
	// duration on the window's first hit, and returns the post-increment
	// count.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
