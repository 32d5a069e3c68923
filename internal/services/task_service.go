package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/repository"
	"github.com/yukikurage/supertask-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidPriority      = errors.New("invalid task priority")
	ErrInvalidStatus        = errors.New("invalid task status")
	ErrCategoryNotOwned     = errors.New("category does not belong to the user")
	ErrCategoryNameNotFound = errors.New("no category with that name")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
	clock        Clock
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, categoryRepo repository.CategoryRepository, clock Clock) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// CategoryRef selects a category either by ID or by case-insensitive name.
// A set ID takes precedence over Name.
type CategoryRef struct {
	ID   *uint64
	Name *string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID      uint64
	Title       string
	Description string
	Priority    models.TaskPriority
	Status      models.TaskStatus
	DueDate     *time.Time
	Category    CategoryRef
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged; the Clear flags remove optional values.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Priority      *models.TaskPriority
	Status        *models.TaskStatus
	DueDate       *time.Time
	ClearDueDate  bool
	Category      CategoryRef
	ClearCategory bool
}

// GetTask returns a task of userID
func (s *TaskService) GetTask(ctx context.Context, userID, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a new task for input.UserID
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.IsValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}
	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !models.IsValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	categoryID, err := s.resolveCategory(ctx, input.UserID, input.Category)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		CategoryID:  categoryID,
		UserID:      input.UserID,
	}
	if input.DueDate != nil {
		due := utils.NormalizeDate(*input.DueDate)
		task.DueDate = &due
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(ctx, input.UserID, task.ID)
}

// UpdateTask updates a task of userID
func (s *TaskService) UpdateTask(ctx context.Context, userID, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !models.IsValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !models.IsValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		due := utils.NormalizeDate(*input.DueDate)
		task.DueDate = &due
	}

	if input.ClearCategory {
		task.CategoryID = nil
	} else if input.Category.ID != nil || input.Category.Name != nil {
		categoryID, err := s.resolveCategory(ctx, userID, input.Category)
		if err != nil {
			return nil, err
		}
		task.CategoryID = categoryID
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(ctx, userID, task.ID)
}

// ToggleTask flips a completed task back to pending and any other task to completed
func (s *TaskService) ToggleTask(ctx context.Context, userID, id uint64) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if task.Status == models.TaskStatusCompleted {
		task.Status = models.TaskStatusPending
	} else {
		task.Status = models.TaskStatusCompleted
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task of userID
func (s *TaskService) DeleteTask(ctx context.Context, userID, id uint64) error {
	if err := s.taskRepo.DeleteOwned(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Today returns the date tasks are measured against
func (s *TaskService) Today() time.Time {
	return s.clock.Today()
}

// resolveCategory maps ref to a category ID owned by userID. An empty ref, or
// an empty name, resolves to no category.
func (s *TaskService) resolveCategory(ctx context.Context, userID uint64, ref CategoryRef) (*uint64, error) {
	if ref.ID != nil {
		category, err := s.categoryRepo.FindOwned(ctx, userID, *ref.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotOwned
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		return &category.ID, nil
	}

	if ref.Name == nil {
		return nil, nil
	}
	name := strings.TrimSpace(*ref.Name)
	if name == "" {
		return nil, nil
	}

	category, err := s.categoryRepo.FindByNameFold(ctx, userID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNameNotFound
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	return &category.ID, nil
}
