package repository

import (
	"context"
	"time"

	"github.com/yukikurage/supertask-api/internal/models"
)

// Every lookup that takes a userID is scoped to that user's rows. A row owned
// by someone else is reported as gorm.ErrRecordNotFound, exactly like a row
// that does not exist.

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindOwned finds a task of userID by ID, with its category preloaded
	FindOwned(ctx context.Context, userID, id uint64) (*models.Task, error)

	// List retrieves a filtered, ordered page of tasks and the total match count
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// ListForStats returns every task of userID with the columns the dashboard needs
	ListForStats(ctx context.Context, userID uint64) ([]models.Task, error)

	// Update saves all columns of a task
	Update(ctx context.Context, task *models.Task) error

	// DeleteOwned deletes a task of userID
	DeleteOwned(ctx context.Context, userID, id uint64) error
}

// TaskFilter holds filtering, ordering and paging options for listing tasks
type TaskFilter struct {
	UserID     uint64
	Priority   *models.TaskPriority
	Status     *models.TaskStatus
	CategoryID *uint64

	// DueFrom and DueTo bound due_date as [DueFrom, DueTo)
	DueFrom *time.Time
	DueTo   *time.Time

	ExcludeCompleted bool

	// Ordering is a column name with an optional leading "-", or one of the
	// special values "due_date" and "priority"
	Ordering string

	Offset int
	Limit  int
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *models.Category) error

	// ListByUser lists the categories of userID ordered by name
	ListByUser(ctx context.Context, userID uint64) ([]models.Category, error)

	// FindOwned finds a category of userID by ID
	FindOwned(ctx context.Context, userID, id uint64) (*models.Category, error)

	// FindByNameFold finds a category of userID by case-insensitive name
	FindByNameFold(ctx context.Context, userID uint64, name string) (*models.Category, error)

	// ExistsByName reports whether userID has a category with exactly this name,
	// ignoring the category excludeID
	ExistsByName(ctx context.Context, userID uint64, name string, excludeID uint64) (bool, error)

	// Update saves a category
	Update(ctx context.Context, category *models.Category) error

	// DeleteOwned detaches the category from its tasks and deletes it
	DeleteOwned(ctx context.Context, userID, id uint64) error

	// CountTasks returns the number of tasks per category ID for userID
	CountTasks(ctx context.Context, userID uint64) (map[uint64]int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID with the profile preloaded
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Update saves a user
	Update(ctx context.Context, user *models.User) error

	// FindProfile finds the profile of userID
	FindProfile(ctx context.Context, userID uint64) (*models.UserProfile, error)

	// SaveProfile creates or updates a profile
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
}
