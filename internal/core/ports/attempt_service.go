package ports

import (
	"context"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// SubmitAnswerInput is one answer in a completion request.
type SubmitAnswerInput struct {
	QuestionID string
	UserAnswer string
}

// AnswerResult explains the outcome of one submitted answer.
type AnswerResult struct {
	Question      domain.Question `json:"question"`
	UserAnswer    string          `json:"user_answer"`
	CorrectAnswer string          `json:"correct_answer"`
	IsCorrect     bool            `json:"is_correct"`
	Explanation   string          `json:"explanation"`
}

// QuizResult is the full scoring outcome of a completed attempt.
type QuizResult struct {
	Attempt          *domain.Attempt `json:"attempt"`
	Score            int             `json:"score"`
	Percentage       float64         `json:"percentage"`
	TotalQuestions   int             `json:"total_questions"`
	CorrectAnswers   int             `json:"correct_answers"`
	IncorrectAnswers int             `json:"incorrect_answers"`
	Feedback         string          `json:"feedback"`
	Answers          []AnswerResult  `json:"answers"`
}

// AttemptService starts, scores, and serves quiz attempts.
type AttemptService interface {
	// Start opens a new attempt for the authenticated user.
	Start(ctx context.Context, userID, quizID string) (*domain.Attempt, error)

	// Complete scores the attempt against the stored correct answers.
	// Only the attempt owner may complete it; a second completion fails
	// with domain.ErrAttemptCompleted.
	Complete(ctx context.Context, userID, attemptID string, answers []SubmitAnswerInput) (*QuizResult, error)

	// Get returns an attempt with its answers. Callers other than the owner
	// must hold the MANAGER role.
	Get(ctx context.Context, callerID string, callerRole domain.Role, id string) (*domain.Attempt, error)
}
