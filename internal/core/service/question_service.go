package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// QuestionService manages questions. Every operation runs behind the
// MANAGER role gate, so responses include correct answers.
type QuestionService struct {
	questions ports.QuestionRepository
	quizzes   ports.QuizRepository
	logger    zerolog.Logger
}

func NewQuestionService(questions ports.QuestionRepository, quizzes ports.QuizRepository, logger zerolog.Logger) *QuestionService {
	return &QuestionService{questions: questions, quizzes: quizzes, logger: logger}
}

func (s *QuestionService) ListByQuiz(ctx context.Context, quizID string) ([]domain.Question, error) {
	if _, err := s.quizzes.FindByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.questions.ListByQuiz(ctx, quizID)
}

func (s *QuestionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	return s.questions.FindByID(ctx, id)
}

func (s *QuestionService) Create(ctx context.Context, in ports.CreateQuestionInput) (*domain.Question, error) {
	if _, err := s.quizzes.FindByID(ctx, in.QuizID); err != nil {
		return nil, err
	}

	question := &domain.Question{
		QuizID:        in.QuizID,
		Text:          in.Text,
		Difficulty:    domain.Difficulty(in.Difficulty),
		Options:       toOptions(in.Options),
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
		Order:         in.Order,
	}

	created, err := s.questions.Create(ctx, question)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("question_id", created.ID).Str("quiz_id", created.QuizID).Msg("question created")
	return created, nil
}

func (s *QuestionService) Update(ctx context.Context, id string, in ports.UpdateQuestionInput) (*domain.Question, error) {
	question, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		question.Text = *in.Text
	}
	if in.Difficulty != nil {
		question.Difficulty = domain.Difficulty(*in.Difficulty)
	}
	if in.Options != nil {
		question.Options = toOptions(in.Options)
	}
	if in.CorrectAnswer != nil {
		question.CorrectAnswer = *in.CorrectAnswer
	}
	if in.Explanation != nil {
		question.Explanation = *in.Explanation
	}
	if in.Order != nil {
		question.Order = *in.Order
	}

	return s.questions.Update(ctx, question)
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if _, err := s.questions.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("question_id", id).Msg("question deleted")
	return nil
}

func toOptions(in []ports.OptionInput) []domain.QuestionOption {
	options := make([]domain.QuestionOption, len(in))
	for i, o := range in {
		options[i] = domain.QuestionOption{ID: o.ID, Text: o.Text, Explanation: o.Explanation}
	}
	return options
}
