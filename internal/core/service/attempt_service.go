package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// AttemptService starts and scores quiz attempts.
type AttemptService struct {
	attempts  ports.AttemptRepository
	quizzes   ports.QuizRepository
	questions ports.QuestionRepository
	logger    zerolog.Logger
}

func NewAttemptService(
	attempts ports.AttemptRepository,
	quizzes ports.QuizRepository,
	questions ports.QuestionRepository,
	logger zerolog.Logger,
) *AttemptService {
	return &AttemptService{attempts: attempts, quizzes: quizzes, questions: questions, logger: logger}
}

// Start opens a new attempt for the authenticated user. The user identity
// comes from the session, never from the request body.
func (s *AttemptService) Start(ctx context.Context, userID, quizID string) (*domain.Attempt, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempt := &domain.Attempt{
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: time.Now().UTC(),
	}

	created, err := s.attempts.Create(ctx, attempt)
	if err != nil {
		return nil, err
	}
	created.Quiz = quiz

	s.logger.Info().Str("attempt_id", created.ID).Str("quiz_id", quizID).Str("user_id", userID).Msg("attempt started")
	return created, nil
}

// Complete scores the attempt against stored correct answers, persists the
// per-question answers, and finalizes the attempt. Submitted answers for
// unknown questions are ignored; unanswered questions count as wrong.
func (s *AttemptService) Complete(ctx context.Context, userID, attemptID string, answers []ports.SubmitAnswerInput) (*ports.QuizResult, error) {
	attempt, err := s.attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if attempt.Completed() {
		return nil, domain.ErrAttemptCompleted
	}

	questions, err := s.questions.ListByQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	now := time.Now().UTC()
	correct := 0
	results := make([]ports.AnswerResult, 0, len(answers))
	records := make([]domain.Answer, 0, len(answers))

	for _, answer := range answers {
		question, ok := byID[answer.QuestionID]
		if !ok {
			continue
		}

		isCorrect := answer.UserAnswer == question.CorrectAnswer
		if isCorrect {
			correct++
		}

		records = append(records, domain.Answer{
			AttemptID:  attemptID,
			QuestionID: answer.QuestionID,
			UserAnswer: answer.UserAnswer,
			IsCorrect:  isCorrect,
			CreatedAt:  now,
		})
		results = append(results, ports.AnswerResult{
			Question:      question,
			UserAnswer:    answer.UserAnswer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   question.Explanation,
		})
	}

	if len(records) > 0 {
		if err := s.attempts.InsertAnswers(ctx, records); err != nil {
			return nil, err
		}
	}

	total := len(questions)
	percentage := 0.0
	if total > 0 {
		percentage = float64(correct) / float64(total) * 100
	}

	updated, err := s.attempts.Complete(ctx, attemptID, correct, percentage, now)
	if err != nil {
		return nil, err
	}
	if updated.Quiz == nil {
		updated.Quiz, _ = s.quizzes.FindByID(ctx, attempt.QuizID)
	}

	feedback := domain.FeedbackFor(percentage)
	s.logger.Info().
		Str("attempt_id", attemptID).
		Int("score", correct).
		Float64("percentage", percentage).
		Msg("attempt completed")

	return &ports.QuizResult{
		Attempt:          updated,
		Score:            correct,
		Percentage:       percentage,
		TotalQuestions:   total,
		CorrectAnswers:   correct,
		IncorrectAnswers: total - correct,
		Feedback:         feedback,
		Answers:          results,
	}, nil
}

// Get returns an attempt with its recorded answers. Non-owners must be
// managers.
func (s *AttemptService) Get(ctx context.Context, callerID string, callerRole domain.Role, id string) (*domain.Attempt, error) {
	attempt, err := s.attempts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != callerID && callerRole != domain.RoleManager {
		return nil, domain.ErrForbidden
	}

	answers, err := s.attempts.ListAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	attempt.Answers = answers

	if attempt.Quiz == nil {
		attempt.Quiz, _ = s.quizzes.FindByID(ctx, attempt.QuizID)
	}
	return attempt, nil
}
