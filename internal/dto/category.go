package dto

import (
	"time"

	"github.com/yukikurage/supertask-api/internal/services"
)

// CreateCategoryRequest is the body of POST /api/categories
type CreateCategoryRequest struct {
	Name  string  `json:"name" binding:"required,max=100"`
	Color *string `json:"color" binding:"omitempty,hexcolor,max=7"`
}

// UpdateCategoryRequest is the body of PUT and PATCH /api/categories/:id
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Color *string `json:"color" binding:"omitempty,hexcolor,max=7"`
}

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	TaskCount int64     `json:"task_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryDTO converts a category with its task count to CategoryDTO
func ToCategoryDTO(category services.CategoryWithCount) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		TaskCount: category.TaskCount,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryDTOs converts a list of categories
func ToCategoryDTOs(categories []services.CategoryWithCount) []CategoryDTO {
	items := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		items[i] = ToCategoryDTO(category)
	}
	return items
}
