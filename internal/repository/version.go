package repository

import (
	"context"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// VersionRepository defines the interface for recipe version data operations.
// A recipe's history is the set of rows in recipe_versions that reference it;
// forked recipes alias their parent's versions through the same table.
type VersionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Version, error)
	HistoryForRecipe(ctx context.Context, recipeID uint) ([]*models.Version, error)
	InHistory(ctx context.Context, recipeID, versionID uint) (bool, error)
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) GetByID(ctx context.Context, id uint) (*models.Version, error) {
	var version models.Version
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&version, id).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// HistoryForRecipe returns the recipe's full version history, newest first.
func (r *versionRepository) HistoryForRecipe(ctx context.Context, recipeID uint) ([]*models.Version, error) {
	var versions []*models.Version
	err := r.db.WithContext(ctx).
		Joins("JOIN recipe_versions rv ON rv.version_id = versions.id").
		Where("rv.recipe_id = ?", recipeID).
		Order("rv.position DESC").
		Preload("Author").
		Find(&versions).Error
	return versions, err
}

// InHistory reports whether the version belongs to the recipe's history,
// including versions inherited from a fork's parent.
func (r *versionRepository) InHistory(ctx context.Context, recipeID, versionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RecipeVersion{}).
		Where("recipe_id = ? AND version_id = ?", recipeID, versionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
