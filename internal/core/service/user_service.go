package service

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

const recentAttemptsLimit = 10

// UserService implements registration, login, session invalidation, and the
// per-user stats dashboard.
type UserService struct {
	users    ports.UserRepository
	attempts ports.AttemptRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	logger   zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	attempts ports.AttemptRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		attempts: attempts,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates an ORDINARY account and logs it in. Manager accounts are
// never created through this path.
func (s *UserService) Register(ctx context.Context, username, password string) (*ports.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleOrdinary,
		TokenVersion: 0,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Role, created.TokenVersion)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return &ports.Session{User: created, Token: token}, nil
}

// Login verifies credentials. Whatever the root cause — unknown username or
// wrong password — the caller sees domain.ErrInvalidCredentials, the request
// pays exactly one bcrypt comparison, and a randomized delay flattens
// residual timing variance.
func (s *UserService) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)

	verified := false
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		// Burn a comparison against the dummy digest so an absent account
		// costs the same as a wrong password.
		s.hasher.VerifyDummy(password)
	case err != nil:
		return nil, err
	default:
		verified = s.hasher.Verify(password, user.PasswordHash)
	}

	loginDelay()

	if user == nil || !verified {
		s.logger.Debug().Str("username", username).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role, user.TokenVersion)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	return &ports.Session{User: user, Token: token}, nil
}

// InvalidateSessions revokes every outstanding token for the user by bumping
// the stored token version, then issues a replacement from the fresh value.
func (s *UserService) InvalidateSessions(ctx context.Context, userID string) (*ports.Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	version, err := s.users.BumpTokenVersion(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.TokenVersion = version

	token, err := s.tokens.Issue(user.ID, user.Role, version)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Int64("token_version", version).Msg("sessions invalidated")
	return &ports.Session{User: user, Token: token}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Stats aggregates the user's completed attempts into dashboard totals.
func (s *UserService) Stats(ctx context.Context, userID string) (*domain.UserStats, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	completed, err := s.attempts.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.UserStats{
		RecentAttempts:      []domain.Attempt{},
		CategoryPerformance: []domain.CategoryPerformance{},
	}

	quizzes := make(map[string]struct{})
	type catAgg struct {
		category domain.Category
		attempts int
		total    float64
	}
	perCategory := make(map[string]*catAgg)
	var order []string

	for _, a := range completed {
		stats.TotalAttempts++
		quizzes[a.QuizID] = struct{}{}
		stats.AverageScore += a.Percentage
		if a.Percentage > stats.BestScore {
			stats.BestScore = a.Percentage
		}

		if a.Quiz == nil || a.Quiz.Category == nil {
			continue
		}
		cat := *a.Quiz.Category
		agg, ok := perCategory[cat.ID]
		if !ok {
			agg = &catAgg{category: cat}
			perCategory[cat.ID] = agg
			order = append(order, cat.ID)
		}
		agg.attempts++
		agg.total += a.Percentage
	}

	stats.TotalQuizzes = len(quizzes)
	if stats.TotalAttempts > 0 {
		stats.AverageScore /= float64(stats.TotalAttempts)
	}
	if len(completed) > recentAttemptsLimit {
		stats.RecentAttempts = completed[:recentAttemptsLimit]
	} else {
		stats.RecentAttempts = completed
	}

	for _, id := range order {
		agg := perCategory[id]
		stats.CategoryPerformance = append(stats.CategoryPerformance, domain.CategoryPerformance{
			Category:     agg.category,
			Attempts:     agg.attempts,
			AverageScore: agg.total / float64(agg.attempts),
		})
	}

	return stats, nil
}

// Attempts returns the user's full attempt history, newest first.
func (s *UserService) Attempts(ctx context.Context, userID string) ([]domain.Attempt, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.attempts.ListByUser(ctx, userID)
}

// loginDelay sleeps a uniformly random 10–50ms.
func loginDelay() {
	var b [1]byte
	jitter := time.Duration(20)
	if _, err := rand.Read(b[:]); err == nil {
		jitter = time.Duration(b[0]) % 41
	}
	time.Sleep((10 + jitter) * time.Millisecond)
}
