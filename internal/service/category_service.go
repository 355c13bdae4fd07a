package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"choreboard/internal/model"
	"choreboard/internal/repository"
)

const defaultCategoryColor = "#9e9e9e"

// CategoryInput carries data for creating or renaming a category.
type CategoryInput struct {
	Name  string
	Color string
}

// CategoryService provides owner-scoped category CRUD.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, userID uint, input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	_, err := s.repo.FindByName(ctx, userID, name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: category %q", ErrConflict, name)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// free to create
	default:
		return nil, err
	}

	category := model.Category{
		UserID: userID,
		Name:   name,
		Color:  colorOrDefault(input.Color),
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID uint, input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	category, err := s.repo.FindByID(ctx, userID, categoryID)
	if err != nil {
		return nil, orNotFound(err)
	}

	category.Name = name
	category.Color = colorOrDefault(input.Color)
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category; tasks referencing it are detached, not deleted.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uint) error {
	return orNotFound(s.repo.Delete(ctx, userID, categoryID))
}

func colorOrDefault(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return defaultCategoryColor
	}
	return color
}
