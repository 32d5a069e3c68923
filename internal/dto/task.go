package dto

import (
	"time"

	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/utils"
)

// CreateTaskRequest is the body of POST /api/tasks. Category is a category ID;
// CategoryName selects a category case-insensitively when Category is absent.
type CreateTaskRequest struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Description  *string `json:"description"`
	Priority     *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status       *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate      *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Category     *uint64 `json:"category" binding:"omitempty,gt=0"`
	CategoryName *string `json:"category_name" binding:"omitempty,max=100"`
}

// UpdateTaskRequest is the body of PUT and PATCH /api/tasks/:id. Absent keys
// are left unchanged; a null category, category_name or due_date clears it.
type UpdateTaskRequest struct {
	Title        *string `json:"title" binding:"omitempty,max=200"`
	Description  *string `json:"description"`
	Priority     *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status       *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate      *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Category     *uint64 `json:"category" binding:"omitempty,gt=0"`
	CategoryName *string `json:"category_name" binding:"omitempty,max=100"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Priority     models.TaskPriority `json:"priority"`
	Status       models.TaskStatus   `json:"status"`
	DueDate      *string             `json:"due_date"`
	Category     *uint64             `json:"category"`
	CategoryName *string             `json:"category_name"`
	IsOverdue    bool                `json:"is_overdue"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	CompletedAt  *time.Time          `json:"completed_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO. today is used for IsOverdue.
func ToTaskDTO(task models.Task, today time.Time) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		DueDate:     utils.FormatDate(task.DueDate),
		Category:    task.CategoryID,
		IsOverdue:   task.IsOverdue(today),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CompletedAt: task.CompletedAt,
	}

	// Include category name if preloaded
	if task.Category != nil && task.CategoryID != nil && task.Category.ID == *task.CategoryID {
		name := task.Category.Name
		dto.CategoryName = &name
	}

	return dto
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, today time.Time, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task, today)
	}

	return TaskListResponse{
		Tasks:      items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
