package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

func TestQuizService_Questions_Sanitized(t *testing.T) {
	quizzes := newStubQuizRepo()
	questions := newStubQuestionRepo()
	seedQuizWithQuestions(quizzes, questions, 3)
	svc := NewQuizService(quizzes, newStubCategoryRepo(), questions, zerolog.Nop())

	out, err := svc.Questions(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("Questions returned error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(out))
	}
	for _, q := range out {
		if q.CorrectAnswer != "" {
			t.Fatalf("taker-facing question leaked correct answer: %+v", q)
		}
		if q.Explanation != "" {
			t.Fatalf("taker-facing question leaked explanation: %+v", q)
		}
		for _, o := range q.Options {
			if o.Explanation != "" {
				t.Fatalf("taker-facing option leaked explanation: %+v", o)
			}
		}
		if len(q.Options) != 2 {
			t.Fatalf("options must survive sanitization, got %d", len(q.Options))
		}
	}
}

func TestQuizService_Questions_UnknownQuiz(t *testing.T) {
	svc := NewQuizService(newStubQuizRepo(), newStubCategoryRepo(), newStubQuestionRepo(), zerolog.Nop())

	if _, err := svc.Questions(context.Background(), "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuizService_Create_UnknownCategory(t *testing.T) {
	svc := NewQuizService(newStubQuizRepo(), newStubCategoryRepo(), newStubQuestionRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateQuizInput{
		CategoryID: "missing",
		Title:      "Go Basics",
		Difficulty: "beginner",
	})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestQuizService_Update_PartialFields(t *testing.T) {
	quizzes := newStubQuizRepo()
	categories := newStubCategoryRepo()
	_, _ = categories.Create(context.Background(), &domain.Category{ID: "cat-1", Name: "Go"})
	svc := NewQuizService(quizzes, categories, newStubQuestionRepo(), zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateQuizInput{
		CategoryID:  "cat-1",
		Title:       "Go Basics",
		Description: "intro",
		Difficulty:  "beginner",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	title := "Go Fundamentals"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateQuizInput{Title: &title})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Go Fundamentals" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Description != "intro" || updated.Difficulty != domain.DifficultyBeginner {
		t.Fatalf("untouched fields must survive: %+v", updated)
	}
}
