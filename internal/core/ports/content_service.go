package ports

import (
	"context"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// CreateCategoryInput carries the fields for a new category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Icon        string
}

// UpdateCategoryInput carries optional category updates; nil means unchanged.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Icon        *string
}

// CategoryService manages quiz categories.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// CreateQuizInput carries the fields for a new quiz.
type CreateQuizInput struct {
	CategoryID  string
	Title       string
	Description string
	Difficulty  string
}

// UpdateQuizInput carries optional quiz updates; nil means unchanged.
type UpdateQuizInput struct {
	Title       *string
	Description *string
	Difficulty  *string
}

// QuizService manages quizzes and serves taker-facing question lists.
type QuizService interface {
	List(ctx context.Context, categoryID string) ([]domain.Quiz, error)
	Get(ctx context.Context, id string) (*domain.Quiz, error)

	// Questions returns the quiz's questions sanitized for takers: correct
	// answers and explanations are withheld.
	Questions(ctx context.Context, quizID string) ([]domain.Question, error)

	Create(ctx context.Context, in CreateQuizInput) (*domain.Quiz, error)
	Update(ctx context.Context, id string, in UpdateQuizInput) (*domain.Quiz, error)
	Delete(ctx context.Context, id string) error
}

// OptionInput is one answer option on a question being created or updated.
type OptionInput struct {
	ID          string
	Text        string
	Explanation string
}

// CreateQuestionInput carries the fields for a new question.
type CreateQuestionInput struct {
	QuizID        string
	Text          string
	Difficulty    string
	Options       []OptionInput
	CorrectAnswer string
	Explanation   string
	Order         int
}

// UpdateQuestionInput carries optional question updates; nil means unchanged.
type UpdateQuestionInput struct {
	Text          *string
	Difficulty    *string
	Options       []OptionInput
	CorrectAnswer *string
	Explanation   *string
	Order         *int
}

// QuestionService manages questions. All operations are manager-only and
// return unsanitized questions including correct answers.
type QuestionService interface {
	ListByQuiz(ctx context.Context, quizID string) ([]domain.Question, error)
	Get(ctx context.Context, id string) (*domain.Question, error)
	Create(ctx context.Context, in CreateQuestionInput) (*domain.Question, error)
	Update(ctx context.Context, id string, in UpdateQuestionInput) (*domain.Question, error)
	Delete(ctx context.Context, id string) error
}
