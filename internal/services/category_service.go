package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/supertask-api/internal/constants"
	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTaken    = errors.New("category name already exists")
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryWithCount is a category together with the number of its tasks
type CategoryWithCount struct {
	models.Category
	TaskCount int64
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	UserID uint64
	Name   string
	Color  string
}

// UpdateCategoryInput represents input for updating a category.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	Name  *string
	Color *string
}

// ListCategories returns the categories of userID ordered by name
func (s *CategoryService) ListCategories(ctx context.Context, userID uint64) ([]CategoryWithCount, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	counts, err := s.categoryRepo.CountTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count category tasks: %w", err)
	}

	result := make([]CategoryWithCount, len(categories))
	for i, category := range categories {
		result[i] = CategoryWithCount{Category: category, TaskCount: counts[category.ID]}
	}
	return result, nil
}

// GetCategory returns a category of userID
func (s *CategoryService) GetCategory(ctx context.Context, userID, id uint64) (*CategoryWithCount, error) {
	category, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.withCount(ctx, userID, *category)
}

// CreateCategory creates a category for input.UserID
func (s *CategoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryWithCount, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	if err := s.ensureNameAvailable(ctx, input.UserID, name, 0); err != nil {
		return nil, err
	}

	color := input.Color
	if color == "" {
		color = constants.DefaultCategoryColor
	}

	category := models.Category{
		Name:   name,
		Color:  color,
		UserID: input.UserID,
	}
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CategoryWithCount{Category: category}, nil
}

// UpdateCategory updates a category of userID
func (s *CategoryService) UpdateCategory(ctx context.Context, userID, id uint64, input UpdateCategoryInput) (*CategoryWithCount, error) {
	category, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrCategoryNameRequired
		}
		if name != category.Name {
			if err := s.ensureNameAvailable(ctx, userID, name, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}
	if input.Color != nil {
		category.Color = *input.Color
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return s.withCount(ctx, userID, *category)
}

// DeleteCategory deletes a category of userID. Its tasks lose their category.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uint64) error {
	if err := s.categoryRepo.DeleteOwned(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *CategoryService) findOwned(ctx context.Context, userID, id uint64) (*models.Category, error) {
	category, err := s.categoryRepo.FindOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) ensureNameAvailable(ctx context.Context, userID uint64, name string, excludeID uint64) error {
	exists, err := s.categoryRepo.ExistsByName(ctx, userID, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return ErrCategoryNameTaken
	}
	return nil
}

func (s *CategoryService) withCount(ctx context.Context, userID uint64, category models.Category) (*CategoryWithCount, error) {
	counts, err := s.categoryRepo.CountTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count category tasks: %w", err)
	}
	return &CategoryWithCount{Category: category, TaskCount: counts[category.ID]}, nil
}
