package domain

import "time"

// Attempt records one run of a quiz by a user. CompletedAt is nil until the
// attempt is scored; Score and Percentage are only meaningful afterwards.
type Attempt struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	QuizID      string     `json:"quiz_id"`
	Score       int        `json:"score"`
	Percentage  float64    `json:"percentage"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Quiz        *Quiz      `json:"quiz,omitempty"`
	Answers     []Answer   `json:"answers,omitempty"`
}

// Completed reports whether the attempt has been scored.
func (a Attempt) Completed() bool { return a.CompletedAt != nil }

// Answer is a user's persisted answer to one question within an attempt.
type Answer struct {
	ID         string    `json:"id"`
	AttemptID  string    `json:"attempt_id"`
	QuestionID string    `json:"question_id"`
	UserAnswer string    `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

// Feedback bands, expressed as minimum percentage thresholds.
const (
	ThresholdExcellent = 90
	ThresholdGood      = 75
	ThresholdAverage   = 60
)

const (
	FeedbackExcellent        = "Excellent work! You have a strong understanding of this topic."
	FeedbackGood             = "Good job! You have a solid grasp of the material."
	FeedbackAverage          = "Not bad! Keep practicing to improve your understanding."
	FeedbackNeedsImprovement = "Keep studying! Review the material and try again."
)

// FeedbackFor maps a score percentage to its feedback message.
func FeedbackFor(percentage float64) string {
	switch {
	case percentage >= ThresholdExcellent:
		return FeedbackExcellent
	case percentage >= ThresholdGood:
		return FeedbackGood
	case percentage >= ThresholdAverage:
		return FeedbackAverage
	default:
		return FeedbackNeedsImprovement
	}
}
