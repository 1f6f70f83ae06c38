package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// CategoryHandler serves category reads for all users and writes for
// managers (role gating happens in routing middleware).
type CategoryHandler struct {
	categories ports.CategoryService
}

func NewCategoryHandler(categories ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.categories.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, category)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categories.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusCreated, category, "Category created successfully")
}

func (h *CategoryHandler) Update(c echo.Context) error {
	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categories.Update(c.Request().Context(), c.Param("id"), ports.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.categories.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, nil, "Category deleted")
}
