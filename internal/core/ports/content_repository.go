package ports

import (
	"context"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// CategoryRepository persists quiz categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// QuizRepository persists quizzes. List attaches the category and the
// question count to each quiz; categoryID is an optional filter.
type QuizRepository interface {
	List(ctx context.Context, categoryID string) ([]domain.Quiz, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Quiz, error)
	FindByID(ctx context.Context, id string) (*domain.Quiz, error)
	Create(ctx context.Context, q *domain.Quiz) (*domain.Quiz, error)
	Update(ctx context.Context, q *domain.Quiz) (*domain.Quiz, error)
	Delete(ctx context.Context, id string) error
}

// QuestionRepository persists questions. ListByQuiz returns questions in
// ascending order.
type QuestionRepository interface {
	ListByQuiz(ctx context.Context, quizID string) ([]domain.Question, error)
	FindByID(ctx context.Context, id string) (*domain.Question, error)
	Create(ctx context.Context, q *domain.Question) (*domain.Question, error)
	Update(ctx context.Context, q *domain.Question) (*domain.Question, error)
	Delete(ctx context.Context, id string) error
}
