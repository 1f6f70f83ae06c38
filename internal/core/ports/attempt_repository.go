package ports

import (
	"context"
	"time"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// AttemptRepository persists quiz attempts and their answers.
type AttemptRepository interface {
	Create(ctx context.Context, a *domain.Attempt) (*domain.Attempt, error)
	FindByID(ctx context.Context, id string) (*domain.Attempt, error)

	// Complete sets the final score fields on the attempt.
	Complete(ctx context.Context, id string, score int, percentage float64, completedAt time.Time) (*domain.Attempt, error)

	// ListByUser returns all attempts for a user, newest first, with quiz
	// and category attached.
	ListByUser(ctx context.Context, userID string) ([]domain.Attempt, error)

	// ListCompletedByUser returns completed attempts only, newest first.
	ListCompletedByUser(ctx context.Context, userID string) ([]domain.Attempt, error)

	InsertAnswers(ctx context.Context, answers []domain.Answer) error
	ListAnswers(ctx context.Context, attemptID string) ([]domain.Answer, error)
}
