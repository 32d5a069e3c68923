package database

import (
	"fmt"
	"strings"

	"github.com/yukikurage/supertask-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// taskIndexes are the indexes behind the task list filters, ordering and the
// dashboard counters. Every query is scoped by user_id first.
var taskIndexes = []struct {
	name    string
	columns []string
}{
	{"idx_tasks_user_created_at", []string{"user_id", "created_at"}},
	{"idx_tasks_user_status", []string{"user_id", "status"}},
	{"idx_tasks_user_priority", []string{"user_id", "priority"}},
	{"idx_tasks_user_due_date", []string{"user_id", "due_date"}},
	{"idx_tasks_category_id", []string{"category_id"}},
}

// AddIndexes adds the composite indexes AutoMigrate does not derive from tags.
// Existing indexes are left alone.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range taskIndexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			continue
		}

		stmt := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, strings.Join(idx.columns, ", "))
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		zap.L().Info("created index", zap.String("index", idx.name))
	}

	return nil
}

