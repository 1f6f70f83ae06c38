package handler

// --- Categories ---

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// --- Quizzes ---

type createQuizRequest struct {
	CategoryID  string `json:"category_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
}

type updateQuizRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Difficulty  *string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// --- Questions ---

type optionRequest struct {
	ID          string `json:"id" validate:"required"`
	Text        string `json:"text" validate:"required"`
	Explanation string `json:"explanation"`
}

type createQuestionRequest struct {
	QuizID        string          `json:"quiz_id" validate:"required"`
	Text          string          `json:"question" validate:"required"`
	Difficulty    string          `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Options       []optionRequest `json:"options" validate:"required,min=2,dive"`
	CorrectAnswer string          `json:"correct_answer" validate:"required"`
	Explanation   string          `json:"explanation" validate:"required"`
	Order         int             `json:"order" validate:"gte=0"`
}

type updateQuestionRequest struct {
	Text          *string         `json:"question" validate:"omitempty,min=1"`
	Difficulty    *string         `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Options       []optionRequest `json:"options" validate:"omitempty,min=2,dive"`
	CorrectAnswer *string         `json:"correct_answer" validate:"omitempty,min=1"`
	Explanation   *string         `json:"explanation"`
	Order         *int            `json:"order" validate:"omitempty,gte=0"`
}

// --- Attempts ---

type startAttemptRequest struct {
	QuizID string `json:"quiz_id" validate:"required"`
}

type submitAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	UserAnswer string `json:"user_answer" validate:"required"`
}

type completeAttemptRequest struct {
	AttemptID string                `json:"attempt_id" validate:"required"`
	Answers   []submitAnswerRequest `json:"answers" validate:"required,dive"`
}

// --- AI ---

type recommendationRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type enhanceExplanationRequest struct {
	Question            string `json:"question" validate:"required"`
	UserAnswer          string `json:"user_answer" validate:"required"`
	CorrectAnswer       string `json:"correct_answer" validate:"required"`
	OriginalExplanation string `json:"original_explanation" validate:"required"`
}
