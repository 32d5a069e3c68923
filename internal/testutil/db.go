// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/supertask-api/internal/database"
	"github.com/yukikurage/supertask-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database. The pool is limited to
// a single connection because every new :memory: connection is a new database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.NewGormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user with a dummy password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateCategory inserts a category owned by userID.
func CreateCategory(t *testing.T, db *gorm.DB, userID uint64, name, color string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   name,
		Color:  color,
		UserID: userID,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateTask inserts task after forcing its owner to userID.
func CreateTask(t *testing.T, db *gorm.DB, userID uint64, task models.Task) *models.Task {
	t.Helper()

	task.UserID = userID
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	require.NoError(t, db.Omit("Category", "User").Create(&task).Error)
	return &task
}
