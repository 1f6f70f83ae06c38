package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// QuizService manages quizzes and serves taker-facing question lists.
type QuizService struct {
	quizzes    ports.QuizRepository
	categories ports.CategoryRepository
	questions  ports.QuestionRepository
	logger     zerolog.Logger
}

func NewQuizService(
	quizzes ports.QuizRepository,
	categories ports.CategoryRepository,
	questions ports.QuestionRepository,
	logger zerolog.Logger,
) *QuizService {
	return &QuizService{quizzes: quizzes, categories: categories, questions: questions, logger: logger}
}

func (s *QuizService) List(ctx context.Context, categoryID string) ([]domain.Quiz, error) {
	return s.quizzes.List(ctx, categoryID)
}

func (s *QuizService) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	return s.quizzes.FindByID(ctx, id)
}

// Questions returns the quiz's questions in order, sanitized for takers.
// Correct answers and explanations stay server-side until scoring.
func (s *QuizService) Questions(ctx context.Context, quizID string) ([]domain.Question, error) {
	if _, err := s.quizzes.FindByID(ctx, quizID); err != nil {
		return nil, err
	}

	questions, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	sanitized := make([]domain.Question, len(questions))
	for i, q := range questions {
		sanitized[i] = q.Sanitized()
	}
	return sanitized, nil
}

func (s *QuizService) Create(ctx context.Context, in ports.CreateQuizInput) (*domain.Quiz, error) {
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	quiz := &domain.Quiz{
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		Difficulty:  domain.Difficulty(in.Difficulty),
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.quizzes.Create(ctx, quiz)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("quiz_id", created.ID).Str("category_id", created.CategoryID).Msg("quiz created")
	return created, nil
}

func (s *QuizService) Update(ctx context.Context, id string, in ports.UpdateQuizInput) (*domain.Quiz, error) {
	quiz, err := s.quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		quiz.Title = *in.Title
	}
	if in.Description != nil {
		quiz.Description = *in.Description
	}
	if in.Difficulty != nil {
		quiz.Difficulty = domain.Difficulty(*in.Difficulty)
	}

	return s.quizzes.Update(ctx, quiz)
}

func (s *QuizService) Delete(ctx context.Context, id string) error {
	if _, err := s.quizzes.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.quizzes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("quiz_id", id).Msg("quiz deleted")
	return nil
}
