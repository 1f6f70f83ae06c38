package domain

import "time"

// Category groups related quizzes.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	Quizzes     []Quiz    `json:"quizzes,omitempty"`
}
