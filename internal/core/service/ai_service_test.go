package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

type stubCompletionClient struct {
	response string
	err      error
	lastUser string
}

func (c *stubCompletionClient) Complete(_ context.Context, _, user string) (string, error) {
	c.lastUser = user
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func seedCompletedAttempt(attempts *stubAttemptRepo, userID string, pct float64, categoryName string) {
	now := time.Now()
	a, _ := attempts.Create(context.Background(), &domain.Attempt{UserID: userID, QuizID: "quiz-1", StartedAt: now})
	_, _ = attempts.Complete(context.Background(), a.ID, int(pct/10), pct, now)
	attempts.attempts[a.ID].Quiz = &domain.Quiz{
		ID:       "quiz-1",
		Category: &domain.Category{ID: "cat-1", Name: categoryName},
	}
}

func TestAIService_Recommend_ParsesModelResponse(t *testing.T) {
	attempts := newStubAttemptRepo()
	seedCompletedAttempt(attempts, "user-1", 80, "Networking")

	client := &stubCompletionClient{
		response: `{"message":"Focus on subnetting.","suggested_topics":["CIDR"],"strength_areas":["Networking"],"improvement_areas":[]}`,
	}
	svc := NewAIService(attempts, client, zerolog.Nop())

	rec, err := svc.Recommend(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if rec.Message != "Focus on subnetting." {
		t.Fatalf("unexpected message: %q", rec.Message)
	}
	if len(rec.SuggestedTopics) != 1 || rec.SuggestedTopics[0] != "CIDR" {
		t.Fatalf("unexpected topics: %v", rec.SuggestedTopics)
	}
	if client.lastUser == "" {
		t.Fatalf("expected a performance summary in the prompt")
	}
}

func TestAIService_Recommend_FencedJSON(t *testing.T) {
	attempts := newStubAttemptRepo()
	client := &stubCompletionClient{
		response: "```json\n{\"message\":\"Keep going.\",\"suggested_topics\":[],\"strength_areas\":[],\"improvement_areas\":[]}\n```",
	}
	svc := NewAIService(attempts, client, zerolog.Nop())

	rec, err := svc.Recommend(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if rec.Message != "Keep going." {
		t.Fatalf("fenced JSON not parsed: %q", rec.Message)
	}
}

func TestAIService_Recommend_FallbackOnClientError(t *testing.T) {
	attempts := newStubAttemptRepo()
	seedCompletedAttempt(attempts, "user-1", 95, "Networking")
	seedCompletedAttempt(attempts, "user-1", 40, "Storage")

	client := &stubCompletionClient{err: errors.New("upstream unavailable")}
	svc := NewAIService(attempts, client, zerolog.Nop())

	rec, err := svc.Recommend(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("client failure must not surface, got %v", err)
	}
	if rec.Message == "" {
		t.Fatalf("fallback must carry a message")
	}
	if len(rec.StrengthAreas) != 1 || rec.StrengthAreas[0] != "Networking" {
		t.Fatalf("expected Networking as strength, got %v", rec.StrengthAreas)
	}
	if len(rec.ImprovementAreas) != 1 || rec.ImprovementAreas[0] != "Storage" {
		t.Fatalf("expected Storage as improvement area, got %v", rec.ImprovementAreas)
	}
}

func TestAIService_Recommend_FallbackOnGarbage(t *testing.T) {
	attempts := newStubAttemptRepo()
	client := &stubCompletionClient{response: "I cannot answer in JSON, sorry."}
	svc := NewAIService(attempts, client, zerolog.Nop())

	rec, err := svc.Recommend(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unparseable response must not surface, got %v", err)
	}
	if rec.Message == "" {
		t.Fatalf("fallback must carry a message")
	}
}

func TestAIService_EnhanceExplanation(t *testing.T) {
	client := &stubCompletionClient{
		response: `{"enhanced_explanation":"TCP guarantees ordering via sequence numbers.","additional_context":"See RFC 9293."}`,
	}
	svc := NewAIService(newStubAttemptRepo(), client, zerolog.Nop())

	in := ports.EnhanceExplanationInput{
		Question:            "What does TCP guarantee?",
		UserAnswer:          "Low latency",
		CorrectAnswer:       "Ordered delivery",
		OriginalExplanation: "TCP is ordered.",
	}
	out, err := svc.EnhanceExplanation(context.Background(), in)
	if err != nil {
		t.Fatalf("EnhanceExplanation returned error: %v", err)
	}
	if out.EnhancedExplanation != "TCP guarantees ordering via sequence numbers." {
		t.Fatalf("unexpected explanation: %q", out.EnhancedExplanation)
	}
	if out.OriginalExplanation != in.OriginalExplanation {
		t.Fatalf("original explanation must be preserved")
	}
}

func TestAIService_EnhanceExplanation_FallbackKeepsOriginal(t *testing.T) {
	client := &stubCompletionClient{err: errors.New("timeout")}
	svc := NewAIService(newStubAttemptRepo(), client, zerolog.Nop())

	in := ports.EnhanceExplanationInput{OriginalExplanation: "TCP is ordered."}
	out, err := svc.EnhanceExplanation(context.Background(), in)
	if err != nil {
		t.Fatalf("client failure must not surface, got %v", err)
	}
	if out.EnhancedExplanation != "TCP is ordered." {
		t.Fatalf("fallback must return the original explanation, got %q", out.EnhancedExplanation)
	}
}
