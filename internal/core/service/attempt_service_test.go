package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

func seedQuizWithQuestions(quizzes *stubQuizRepo, questions *stubQuestionRepo, n int) *domain.Quiz {
	quiz, _ := quizzes.Create(context.Background(), &domain.Quiz{ID: "quiz-1", Title: "Go Basics"})
	for i := 0; i < n; i++ {
		id := "q-" + string(rune('a'+i))
		_, _ = questions.Create(context.Background(), &domain.Question{
			ID:            id,
			QuizID:        quiz.ID,
			Text:          "question " + id,
			CorrectAnswer: "opt-1",
			Explanation:   "because",
			Options: []domain.QuestionOption{
				{ID: "opt-1", Text: "right"},
				{ID: "opt-2", Text: "wrong"},
			},
		})
	}
	return quiz
}

func TestAttemptService_Start(t *testing.T) {
	quizzes := newStubQuizRepo()
	questions := newStubQuestionRepo()
	attempts := newStubAttemptRepo()
	quiz := seedQuizWithQuestions(quizzes, questions, 2)
	svc := NewAttemptService(attempts, quizzes, questions, zerolog.Nop())

	attempt, err := svc.Start(context.Background(), "user-1", quiz.ID)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if attempt.UserID != "user-1" || attempt.QuizID != quiz.ID {
		t.Fatalf("unexpected attempt: %+v", attempt)
	}
	if attempt.Completed() {
		t.Fatalf("fresh attempt must not be completed")
	}
}

func TestAttemptService_Start_UnknownQuiz(t *testing.T) {
	svc := NewAttemptService(newStubAttemptRepo(), newStubQuizRepo(), newStubQuestionRepo(), zerolog.Nop())

	if _, err := svc.Start(context.Background(), "user-1", "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestAttemptService_Complete_Scoring(t *testing.T) {
	quizzes := newStubQuizRepo()
	questions := newStubQuestionRepo()
	attempts := newStubAttemptRepo()
	quiz := seedQuizWithQuestions(quizzes, questions, 4)
	svc := NewAttemptService(attempts, quizzes, questions, zerolog.Nop())

	attempt, err := svc.Start(context.Background(), "user-1", quiz.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	result, err := svc.Complete(context.Background(), "user-1", attempt.ID, []ports.SubmitAnswerInput{
		{QuestionID: "q-a", UserAnswer: "opt-1"},
		{QuestionID: "q-b", UserAnswer: "opt-1"},
		{QuestionID: "q-c", UserAnswer: "opt-1"},
		{QuestionID: "q-d", UserAnswer: "opt-2"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if result.Score != 3 || result.CorrectAnswers != 3 || result.IncorrectAnswers != 1 {
		t.Fatalf("unexpected score: %+v", result)
	}
	if result.Percentage != 75 {
		t.Fatalf("expected 75%%, got %v", result.Percentage)
	}
	if result.Feedback != domain.FeedbackGood {
		t.Fatalf("expected %q, got %q", domain.FeedbackGood, result.Feedback)
	}
	if !result.Attempt.Completed() {
		t.Fatalf("attempt must be marked completed")
	}
	if len(result.Answers) != 4 {
		t.Fatalf("expected 4 answer results, got %d", len(result.Answers))
	}

	stored, err := attempts.ListAnswers(context.Background(), attempt.ID)
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	if len(stored) != 4 {
		t.Fatalf("expected 4 persisted answers, got %d", len(stored))
	}
}

func TestAttemptService_Complete_UnansweredCountWrong(t *testing.T) {
	quizzes := newStubQuizRepo()
	questions := newStubQuestionRepo()
	attempts := newStubAttemptRepo()
	quiz := seedQuizWithQuestions(quizzes, questions, 2)
	svc := NewAttemptService(attempts, quizzes, questions, zerolog.Nop())

	attempt, _ := svc.Start(context.Background(), "user-1", quiz.ID)

	// One answer for a two-question quiz: the percentage denominator is the
	// question count, not the answer count.
	result, err := svc.Complete(context.Background(), "user-1", attempt.ID, []ports.SubmitAnswerInput{
		{QuestionID: "q-a", UserAnswer: "opt-1"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if result.Percentage != 50 {
		t.Fatalf("expected 50%%, got %v", result.Percentage)
	}
	if result.TotalQuestions != 2 {
		t.Fatalf("expected total 2, got %d", result.TotalQuestions)
	}
}

func TestAttemptService_Complete_IgnoresUnknownQuestions(t *testing.T) {
	quizzes := newStubQuizRepo()
	questions := newStubQuestionRepo()
	attempts := newStubAttemptRepo()
	quiz := seedQuizWithQuestions(quizzes, questions, 1)
	svc := NewAttemptService(attempts, quizzes, questions, zerolog.Nop())

	attempt, _ := svc.Start(context.Background(), "user-1", quiz.ID)

	result, err := svc.Complete(context.Background(), "user-1", attempt.ID, []ports.SubmitAnswerInput{
		{QuestionID: "q-a", UserAnswer: "opt-1"},
		{QuestionID: "not-in-quiz", UserAnswer: "opt-1"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if result.Score != 1 || result.Percentage != 100 {
		t.Fatalf("unknown question must not affect scoring: %+v", result)
	}
	if len(result.Answers) != 1 {
		t.Fatalf("expected 1 answer result, got %d", len(result.Answers))
	}
}

func TestAttemptService_Complete_Twice(t *testing.T) {
	quizzes := newStubQuizRepo()
	questions := newStubQuestionRepo()
	attempts := newStubAttemptRepo()
	quiz := seedQuizWithQuestions(quizzes, questions, 1)
	svc := NewAttemptService(attempts, quizzes, questions, zerolog.Nop())

	attempt, _ := svc.Start(context.Background(), "user-1", quiz.ID)
	answers := []ports.SubmitAnswerInput{{QuestionID: "q-a", UserAnswer: "opt-1"}}

	if _, err := svc.Complete(context.Background(), "user-1", attempt.ID, answers); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	if _, err := svc.Complete(context.Background(), "user-1", attempt.ID, answers); !errors.Is(err, domain.ErrAttemptCompleted) {
		t.Fatalf("expected ErrAttemptCompleted, got %v", err)
	}
}

func TestAttemptService_Complete_NotOwner(t *testing.T) {
	quizzes := newStubQuizRepo()
	questions := newStubQuestionRepo()
	attempts := newStubAttemptRepo()
	quiz := seedQuizWithQuestions(quizzes, questions, 1)
	svc := NewAttemptService(attempts, quizzes, questions, zerolog.Nop())

	attempt, _ := svc.Start(context.Background(), "user-1", quiz.ID)

	if _, err := svc.Complete(context.Background(), "intruder", attempt.ID, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAttemptService_Get_OwnerAndManager(t *testing.T) {
	quizzes := newStubQuizRepo()
	questions := newStubQuestionRepo()
	attempts := newStubAttemptRepo()
	quiz := seedQuizWithQuestions(quizzes, questions, 1)
	svc := NewAttemptService(attempts, quizzes, questions, zerolog.Nop())

	attempt, _ := svc.Start(context.Background(), "user-1", quiz.ID)

	if _, err := svc.Get(context.Background(), "user-1", domain.RoleOrdinary, attempt.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), "staff", domain.RoleManager, attempt.ID); err != nil {
		t.Fatalf("manager read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), "stranger", domain.RoleOrdinary, attempt.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
