package domain

import "errors"

var (
	// ErrMissingSecret indicates the token signing secret is unset. This is a
	// deployment defect and must halt startup, never surface per-request.
	ErrMissingSecret = errors.New("token signing secret is not configured")

	// ErrInvalidCredentials covers every login failure cause (unknown
	// username, wrong password). Callers must not narrow it.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserExists       = errors.New("username already exists")
	ErrUserNotFound     = errors.New("user not found")

	// ErrInvalidRole indicates a stored role string that is not a known
	// role. The record is corrupt; it must never be coerced to a valid role.
	ErrInvalidRole = errors.New("invalid user role")
	ErrCategoryNotFound = errors.New("category not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAttemptNotFound  = errors.New("quiz attempt not found")

	// ErrAttemptCompleted rejects a second completion of the same attempt.
	ErrAttemptCompleted = errors.New("quiz attempt already completed")

	ErrForbidden   = errors.New("access forbidden")
	ErrRateLimited = errors.New("too many attempts, please try again later")
)
