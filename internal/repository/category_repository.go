package repository

import (
	"context"

	"github.com/yukikurage/supertask-api/internal/database"
	"github.com/yukikurage/supertask-api/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit("User").Create(category).Error
}

// ListByUser lists the categories of userID ordered by name
func (r *GormCategoryRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy("categories", userID)).
		Order("categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// FindOwned finds a category of userID by ID
func (r *GormCategoryRepository) FindOwned(ctx context.Context, userID, id uint64) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy("categories", userID)).
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByNameFold finds a category of userID by case-insensitive name
func (r *GormCategoryRepository) FindByNameFold(ctx context.Context, userID uint64, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy("categories", userID)).
		Where("LOWER(categories.name) = LOWER(?)", name).
		Order("categories.id ASC").
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByName reports whether userID already uses name, ignoring excludeID
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, userID uint64, name string, excludeID uint64) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(database.OwnedBy("categories", userID)).
		Where("categories.name = ?", name)
	if excludeID != 0 {
		query = query.Where("categories.id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates a category
func (r *GormCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit("User").Save(category).Error
}

// DeleteOwned detaches every task of the category, then deletes the category.
// Both steps run in one transaction.
func (r *GormCategoryRepository) DeleteOwned(ctx context.Context, userID, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Scopes(database.OwnedBy("categories", userID)).First(&category, id).Error; err != nil {
			return err
		}

		err := tx.Model(&models.Task{}).
			Where("category_id = ?", category.ID).
			UpdateColumn("category_id", gorm.Expr("NULL")).Error
		if err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
}

type categoryTaskCount struct {
	CategoryID uint64
	Total      int64
}

// CountTasks returns the number of tasks per category ID for userID.
// Categories without tasks are absent from the map.
func (r *GormCategoryRepository) CountTasks(ctx context.Context, userID uint64) (map[uint64]int64, error) {
	var rows []categoryTaskCount
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("tasks.category_id AS category_id, COUNT(*) AS total").
		Scopes(database.OwnedBy("tasks", userID)).
		Where("tasks.category_id IS NOT NULL").
		Group("tasks.category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}
	return counts, nil
}
