package ports

import (
	"context"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

// CompletionClient is the outbound LLM dependency. Implementations talk to
// an external API; the service layer never sees transport details.
type CompletionClient interface {
	// Complete sends a system prompt and a user message and returns the
	// model's text response.
	Complete(ctx context.Context, system, user string) (string, error)
}

// EnhanceExplanationInput carries the context for an explanation rewrite.
type EnhanceExplanationInput struct {
	Question            string
	UserAnswer          string
	CorrectAnswer       string
	OriginalExplanation string
}

// AIService produces study recommendations and enhanced explanations.
// LLM failures degrade to canned fallbacks rather than surfacing errors.
type AIService interface {
	Recommend(ctx context.Context, userID string) (*domain.Recommendation, error)
	EnhanceExplanation(ctx context.Context, in EnhanceExplanationInput) (*domain.EnhancedExplanation, error)
}
