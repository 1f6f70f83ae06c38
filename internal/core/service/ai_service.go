package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

const recommendationSystemPrompt = `You are a study coach for a quiz platform.
Given a learner's quiz performance summary, respond with a single JSON object
and nothing else, using exactly these keys:
{"message": string, "suggested_topics": [string], "strength_areas": [string], "improvement_areas": [string]}`

const explanationSystemPrompt = `You are a tutor for a quiz platform. Expand the
provided answer explanation for a learner who answered incorrectly. Respond
with a single JSON object and nothing else, using exactly these keys:
{"enhanced_explanation": string, "additional_context": string}`

// AIService builds prompts from attempt history and proxies them to an
// external LLM. Client failures never surface as request errors; callers get
// a canned fallback instead.
type AIService struct {
	attempts ports.AttemptRepository
	client   ports.CompletionClient
	logger   zerolog.Logger
}

func NewAIService(attempts ports.AttemptRepository, client ports.CompletionClient, logger zerolog.Logger) *AIService {
	return &AIService{attempts: attempts, client: client, logger: logger}
}

// Recommend summarises the user's completed attempts and asks the model for
// study guidance.
func (s *AIService) Recommend(ctx context.Context, userID string) (*domain.Recommendation, error) {
	completed, err := s.attempts.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	average, categoryScores := summarise(completed)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Completed attempts: %d\n", len(completed))
	fmt.Fprintf(&sb, "Average score: %.1f%%\n", average)
	names := make([]string, 0, len(categoryScores))
	for name := range categoryScores {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "Category %q average: %.1f%%\n", name, categoryScores[name])
	}

	raw, err := s.client.Complete(ctx, recommendationSystemPrompt, sb.String())
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("recommendation request failed, using fallback")
		return fallbackRecommendation(average, categoryScores), nil
	}

	var rec domain.Recommendation
	if err := json.Unmarshal(extractJSON(raw), &rec); err != nil || rec.Message == "" {
		s.logger.Warn().Err(err).Msg("unparseable recommendation response, using fallback")
		return fallbackRecommendation(average, categoryScores), nil
	}
	return &rec, nil
}

// EnhanceExplanation asks the model to expand an author-written explanation.
func (s *AIService) EnhanceExplanation(ctx context.Context, in ports.EnhanceExplanationInput) (*domain.EnhancedExplanation, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s\n", in.Question)
	fmt.Fprintf(&sb, "Learner's answer: %s\n", in.UserAnswer)
	fmt.Fprintf(&sb, "Correct answer: %s\n", in.CorrectAnswer)
	fmt.Fprintf(&sb, "Original explanation: %s\n", in.OriginalExplanation)

	fallback := &domain.EnhancedExplanation{
		OriginalExplanation: in.OriginalExplanation,
		EnhancedExplanation: in.OriginalExplanation,
		AdditionalContext:   "",
	}

	raw, err := s.client.Complete(ctx, explanationSystemPrompt, sb.String())
	if err != nil {
		s.logger.Warn().Err(err).Msg("explanation request failed, using fallback")
		return fallback, nil
	}

	var parsed struct {
		EnhancedExplanation string `json:"enhanced_explanation"`
		AdditionalContext   string `json:"additional_context"`
	}
	if err := json.Unmarshal(extractJSON(raw), &parsed); err != nil || parsed.EnhancedExplanation == "" {
		s.logger.Warn().Err(err).Msg("unparseable explanation response, using fallback")
		return fallback, nil
	}

	return &domain.EnhancedExplanation{
		OriginalExplanation: in.OriginalExplanation,
		EnhancedExplanation: parsed.EnhancedExplanation,
		AdditionalContext:   parsed.AdditionalContext,
	}, nil
}

// summarise computes the overall and per-category average percentages.
func summarise(attempts []domain.Attempt) (float64, map[string]float64) {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	average := 0.0

	for _, a := range attempts {
		average += a.Percentage
		if a.Quiz == nil || a.Quiz.Category == nil {
			continue
		}
		name := a.Quiz.Category.Name
		totals[name] += a.Percentage
		counts[name]++
	}
	if len(attempts) > 0 {
		average /= float64(len(attempts))
	}

	scores := make(map[string]float64, len(totals))
	for name, total := range totals {
		scores[name] = total / float64(counts[name])
	}
	return average, scores
}

// fallbackRecommendation derives guidance from the computed metrics alone.
func fallbackRecommendation(average float64, categoryScores map[string]float64) *domain.Recommendation {
	rec := &domain.Recommendation{
		Message:          "Keep practicing regularly to strengthen your understanding.",
		SuggestedTopics:  []string{},
		StrengthAreas:    []string{},
		ImprovementAreas: []string{},
	}
	if average >= domain.ThresholdGood {
		rec.Message = "You are performing well. Try harder quizzes to keep growing."
	}

	names := make([]string, 0, len(categoryScores))
	for name := range categoryScores {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if categoryScores[name] >= domain.ThresholdGood {
			rec.StrengthAreas = append(rec.StrengthAreas, name)
		} else {
			rec.ImprovementAreas = append(rec.ImprovementAreas, name)
			rec.SuggestedTopics = append(rec.SuggestedTopics, name)
		}
	}
	return rec
}

// extractJSON trims markdown code fences some models wrap around JSON output.
func extractJSON(raw string) []byte {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if i := strings.LastIndex(trimmed, "```"); i >= 0 {
			trimmed = trimmed[:i]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	return []byte(trimmed)
}
