package domain

import "time"

// Difficulty is the declared difficulty of a quiz or question.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ValidDifficulty reports whether s is a known difficulty level.
func ValidDifficulty(s string) bool {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Quiz is a set of multiple-choice questions within a category.
type Quiz struct {
	ID            string     `json:"id"`
	CategoryID    string     `json:"category_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Difficulty    Difficulty `json:"difficulty"`
	CreatedAt     time.Time  `json:"created_at"`
	Category      *Category  `json:"category,omitempty"`
	QuestionCount int        `json:"question_count,omitempty"`
}
