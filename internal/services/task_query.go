package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/repository"
)

// Due date filter values
const (
	DueDateToday   = "today"
	DueDateOverdue = "overdue"
)

var ErrInvalidCategoryFilter = errors.New("category filter must be a numeric id")

// ListTasksInput holds the raw query parameters of a task listing. Empty
// strings mean "not given".
type ListTasksInput struct {
	UserID   uint64
	Priority string
	Status   string
	Category string
	DueDate  string
	Ordering string
	Page     int
	PageSize int
}

// BuildTaskFilter turns raw listing parameters into a repository filter.
// Unknown due_date values are ignored; only a non-numeric category is rejected.
func (s *TaskService) BuildTaskFilter(input ListTasksInput) (repository.TaskFilter, error) {
	filter := repository.TaskFilter{
		UserID:   input.UserID,
		Ordering: strings.TrimSpace(input.Ordering),
	}

	if input.Priority != "" {
		priority := models.TaskPriority(input.Priority)
		filter.Priority = &priority
	}
	if input.Status != "" {
		status := models.TaskStatus(input.Status)
		filter.Status = &status
	}
	if input.Category != "" {
		categoryID, err := strconv.ParseUint(input.Category, 10, 64)
		if err != nil {
			return repository.TaskFilter{}, ErrInvalidCategoryFilter
		}
		filter.CategoryID = &categoryID
	}

	today := s.clock.Today()
	switch input.DueDate {
	case DueDateToday:
		tomorrow := today.AddDate(0, 0, 1)
		filter.DueFrom = &today
		filter.DueTo = &tomorrow
	case DueDateOverdue:
		filter.DueTo = &today
		filter.ExcludeCompleted = true
	}

	if input.PageSize > 0 {
		page := input.Page
		if page < 1 {
			page = 1
		}
		filter.Limit = input.PageSize
		filter.Offset = (page - 1) * input.PageSize
	}

	return filter, nil
}

// ListTasks returns one page of the tasks of input.UserID matching the filters
// and the total number of matches
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, int64, error) {
	filter, err := s.BuildTaskFilter(input)
	if err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}
