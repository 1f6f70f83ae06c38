package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// QuestionHandler handles question CRUD. Every route is manager-only, so
// responses include correct answers and explanations.
type QuestionHandler struct {
	questions ports.QuestionService
}

func NewQuestionHandler(questions ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

func (h *QuestionHandler) ListByQuiz(c echo.Context) error {
	questions, err := h.questions.ListByQuiz(c.Request().Context(), c.Param("quizId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, questions)
}

func (h *QuestionHandler) Get(c echo.Context) error {
	question, err := h.questions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, question)
}

func (h *QuestionHandler) Create(c echo.Context) error {
	var req createQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	question, err := h.questions.Create(c.Request().Context(), ports.CreateQuestionInput{
		QuizID:        req.QuizID,
		Text:          req.Text,
		Difficulty:    req.Difficulty,
		Options:       toOptionInputs(req.Options),
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Order:         req.Order,
	})
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusCreated, question, "Question created successfully")
}

func (h *QuestionHandler) Update(c echo.Context) error {
	var req updateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	question, err := h.questions.Update(c.Request().Context(), c.Param("id"), ports.UpdateQuestionInput{
		Text:          req.Text,
		Difficulty:    req.Difficulty,
		Options:       toOptionInputs(req.Options),
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Order:         req.Order,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, question)
}

func (h *QuestionHandler) Delete(c echo.Context) error {
	if err := h.questions.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, nil, "Question deleted")
}

func toOptionInputs(options []optionRequest) []ports.OptionInput {
	if options == nil {
		return nil
	}
	out := make([]ports.OptionInput, 0, len(options))
	for _, o := range options {
		out = append(out, ports.OptionInput{
			ID:          o.ID,
			Text:        o.Text,
			Explanation: o.Explanation,
		})
	}
	return out
}
