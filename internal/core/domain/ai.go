package domain

// Recommendation is the AI-generated study guidance for a user.
type Recommendation struct {
	Message          string   `json:"message"`
	SuggestedTopics  []string `json:"suggested_topics"`
	StrengthAreas    []string `json:"strength_areas"`
	ImprovementAreas []string `json:"improvement_areas"`
}

// EnhancedExplanation pairs an author-written explanation with the
// AI-expanded version.
type EnhancedExplanation struct {
	OriginalExplanation string `json:"original_explanation"`
	EnhancedExplanation string `json:"enhanced_explanation"`
	AdditionalContext   string `json:"additional_context"`
}
