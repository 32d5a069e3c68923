package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/repository"
)

// DashboardStats holds the counters shown on the dashboard
type DashboardStats struct {
	Completed       int
	InProgress      int
	Overdue         int
	HighPriority    int
	DueToday        int
	TotalTasks      int
	CategoriesStats map[string]CategoryStats
}

// CategoryStats holds per-category counters. Pending counts every task that
// is not completed, in_progress included.
type CategoryStats struct {
	Total     int
	Completed int
	Pending   int
}

// DashboardService computes dashboard statistics
type DashboardService struct {
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
	clock        Clock
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(taskRepo repository.TaskRepository, categoryRepo repository.CategoryRepository, clock Clock) *DashboardService {
	return &DashboardService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Stats computes the dashboard of userID
func (s *DashboardService) Stats(ctx context.Context, userID uint64) (*DashboardStats, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	tasks, err := s.taskRepo.ListForStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	stats := Summarize(tasks, categories, s.clock.Today())
	return &stats, nil
}

// Summarize aggregates tasks into dashboard counters relative to today.
// Every category appears in CategoriesStats, including empty ones.
func Summarize(tasks []models.Task, categories []models.Category, today time.Time) DashboardStats {
	stats := DashboardStats{
		TotalTasks:      len(tasks),
		CategoriesStats: make(map[string]CategoryStats, len(categories)),
	}

	byCategory := make(map[uint64]*CategoryStats, len(categories))
	for _, category := range categories {
		byCategory[category.ID] = &CategoryStats{}
	}

	for i := range tasks {
		task := &tasks[i]
		completed := task.Status == models.TaskStatusCompleted

		switch task.Status {
		case models.TaskStatusCompleted:
			stats.Completed++
		case models.TaskStatusInProgress:
			stats.InProgress++
		}
		if task.IsOverdue(today) {
			stats.Overdue++
		}
		if task.Priority == models.TaskPriorityHigh && !completed {
			stats.HighPriority++
		}
		if task.DueDate != nil && task.DueDate.Equal(today) &&
			(task.Status == models.TaskStatusPending || task.Status == models.TaskStatusInProgress) {
			stats.DueToday++
		}

		if task.CategoryID == nil {
			continue
		}
		counters, ok := byCategory[*task.CategoryID]
		if !ok {
			continue
		}
		counters.Total++
		if completed {
			counters.Completed++
		} else {
			counters.Pending++
		}
	}

	for _, category := range categories {
		stats.CategoriesStats[category.Name] = *byCategory[category.ID]
	}

	return stats
}
