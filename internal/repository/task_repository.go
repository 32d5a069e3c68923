package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/supertask-api/internal/database"
	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTaskOrdering is used when no ordering, or an unknown column, is requested.
const DefaultTaskOrdering = "-created_at"

// orderableTaskColumns are the columns a client may order by.
var orderableTaskColumns = map[string]bool{
	"id":           true,
	"title":        true,
	"priority":     true,
	"status":       true,
	"due_date":     true,
	"category_id":  true,
	"created_at":   true,
	"updated_at":   true,
	"completed_at": true,
}

const priorityRankOrder = "CASE tasks.priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END"

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task. The category association is never written through
// the task; only CategoryID is.
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindOwned finds a task of userID by ID
func (r *GormTaskRepository) FindOwned(ctx context.Context, userID, id uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy("tasks", userID)).
		Preload("Category").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering, ordering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.OwnedBy("tasks", filter.UserID))

	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("tasks.category_id = ?", *filter.CategoryID)
	}
	if filter.DueFrom != nil {
		query = query.Where("tasks.due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("tasks.due_date < ?", *filter.DueTo)
	}
	if filter.ExcludeCompleted {
		query = query.Where("tasks.status <> ?", models.TaskStatusCompleted)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	for _, order := range TaskOrderClauses(filter.Ordering) {
		listQuery = listQuery.Order(order)
	}

	if filter.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Offset: filter.Offset,
			Limit:  filter.Limit,
		}))
	}

	var tasks []models.Task
	if err := listQuery.Preload("Category").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// TaskOrderClauses translates an ordering parameter into ORDER BY clauses.
//
//	"due_date"  due date ascending with undated tasks last, newest first on ties
//	"priority"  high, medium, low, then anything else
//	"[-]column" that column, descending with a leading "-"
//
// Unknown columns fall back to DefaultTaskOrdering.
func TaskOrderClauses(ordering string) []string {
	switch ordering {
	case "due_date":
		return []string{
			"CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END",
			"tasks.due_date ASC",
			"tasks.created_at DESC",
		}
	case "priority":
		return []string{priorityRankOrder}
	}

	column, desc := strings.CutPrefix(ordering, "-")
	if !orderableTaskColumns[column] {
		column, desc = strings.TrimPrefix(DefaultTaskOrdering, "-"), true
	}

	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return []string{"tasks." + column + " " + direction}
}

// ListForStats returns the task columns the dashboard aggregates over
func (r *GormTaskRepository) ListForStats(ctx context.Context, userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Select("id", "priority", "status", "due_date", "category_id").
		Scopes(database.OwnedBy("tasks", userID)).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// DeleteOwned deletes a task of userID
func (r *GormTaskRepository) DeleteOwned(ctx context.Context, userID, id uint64) error {
	result := r.db.WithContext(ctx).
		Scopes(database.OwnedBy("tasks", userID)).
		Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
