package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// CategoryService manages quiz categories.
type CategoryService struct {
	categories ports.CategoryRepository
	quizzes    ports.QuizRepository
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, quizzes ports.QuizRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, quizzes: quizzes, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Get returns a category with its quizzes attached.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.quizzes.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Quizzes = quizzes
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in ports.UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Icon != nil {
		category.Icon = *in.Icon
	}

	return s.categories.Update(ctx, category)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}
