package domain

import "time"

// Role is the closed set of account roles. Values read from the store are
// validated through ParseRole; anything else is rejected.
type Role string

const (
	// RoleOrdinary takes quizzes and views their own results.
	RoleOrdinary Role = "ORDINARY"
	// RoleManager authors categories, quizzes, and questions.
	RoleManager Role = "MANAGER"
)

// ParseRole validates a role string coming from an untrusted boundary
// (token claims, database rows).
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOrdinary, RoleManager:
		return Role(s), true
	}
	return "", false
}

// User models a registered account.
//
// TokenVersion only ever increases. Every issued session token embeds the
// version current at issuance; bumping it invalidates all outstanding tokens
// for the account at once.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	TokenVersion int64     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStats is the dashboard aggregate for a single user, computed from
// completed attempts only.
type UserStats struct {
	TotalAttempts       int                   `json:"total_attempts"`
	TotalQuizzes        int                   `json:"total_quizzes"`
	AverageScore        float64               `json:"average_score"`
	BestScore           float64               `json:"best_score"`
	RecentAttempts      []Attempt             `json:"recent_attempts"`
	CategoryPerformance []CategoryPerformance `json:"category_performance"`
}

// CategoryPerformance summarises a user's completed attempts within one category.
type CategoryPerformance struct {
	Category     Category `json:"category"`
	Attempts     int      `json:"attempts"`
	AverageScore float64  `json:"average_score"`
}
