package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// QuizHandler serves quiz reads (including taker-safe question lists) and
// manager-only writes.
type QuizHandler struct {
	quizzes ports.QuizService
}

func NewQuizHandler(quizzes ports.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

// List returns quizzes, optionally filtered by ?category_id=.
func (h *QuizHandler) List(c echo.Context) error {
	quizzes, err := h.quizzes.List(c.Request().Context(), c.QueryParam("category_id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, quizzes)
}

func (h *QuizHandler) Get(c echo.Context) error {
	quiz, err := h.quizzes.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, quiz)
}

// Questions returns sanitized questions: no correct answers, no explanations.
func (h *QuizHandler) Questions(c echo.Context) error {
	questions, err := h.quizzes.Questions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, questions)
}

func (h *QuizHandler) Create(c echo.Context) error {
	var req createQuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quiz, err := h.quizzes.Create(c.Request().Context(), ports.CreateQuizInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusCreated, quiz, "Quiz created successfully")
}

func (h *QuizHandler) Update(c echo.Context) error {
	var req updateQuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quiz, err := h.quizzes.Update(c.Request().Context(), c.Param("id"), ports.UpdateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, quiz)
}

func (h *QuizHandler) Delete(c echo.Context) error {
	if err := h.quizzes.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, nil, "Quiz deleted")
}
