package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultCategory is a category every new user starts with
type DefaultCategory struct {
	Name  string
	Color string
}

// DefaultCategories are created for every new user
var DefaultCategories = []DefaultCategory{
	{Name: "Trabalho", Color: "#3b82f6"},
	{Name: "Estudos", Color: "#10b981"},
	{Name: "Lazer", Color: "#f59e0b"},
	{Name: "Pessoal", Color: "#ef4444"},
}

// Provisioner sets up the data a freshly registered user needs
type Provisioner struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
}

// NewProvisioner creates a new Provisioner
func NewProvisioner(userRepo repository.UserRepository, categoryRepo repository.CategoryRepository) *Provisioner {
	return &Provisioner{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

// ProvisionNewUser creates the profile and the default categories of userID.
// Anything that already exists is left alone, so it is safe to call again.
func (p *Provisioner) ProvisionNewUser(ctx context.Context, userID uint64) error {
	if _, err := p.userRepo.FindProfile(ctx, userID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to find profile: %w", err)
		}
		if err := p.userRepo.SaveProfile(ctx, &models.UserProfile{UserID: userID}); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
	}

	created := 0
	for _, def := range DefaultCategories {
		exists, err := p.categoryRepo.ExistsByName(ctx, userID, def.Name, 0)
		if err != nil {
			return fmt.Errorf("failed to check default category %q: %w", def.Name, err)
		}
		if exists {
			continue
		}

		category := &models.Category{Name: def.Name, Color: def.Color, UserID: userID}
		if err := p.categoryRepo.Create(ctx, category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return fmt.Errorf("failed to create default category %q: %w", def.Name, err)
		}
		created++
	}

	zap.L().Debug("user provisioned", zap.Uint64("user_id", userID), zap.Int("categories_created", created))
	return nil
}
