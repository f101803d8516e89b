// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"forkful/internal/cache"
	"forkful/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort policies accepted by ListPublic. Ranking is deliberately a swappable
// policy, not fixed behavior: new policies only touch applySort.
const (
	SortRecent   = "recent"
	SortTrending = "trending"
	SortTop      = "top"
)

// trendingWindow bounds the "most liked recently" policy.
const trendingWindow = 72 * time.Hour

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error)
	ListPublic(ctx context.Context, limit, offset int, currentUserID uint, sort string) ([]*models.Recipe, error)
	GetByAuthor(ctx context.Context, authorID uint, includePrivate bool, limit, offset int, currentUserID uint) ([]*models.Recipe, error)
	ListForks(ctx context.Context, recipeID uint) ([]*models.Recipe, error)
	IsLiked(ctx context.Context, userID, recipeID uint) (bool, error)
	Like(ctx context.Context, userID, recipeID uint) (bool, error)
	Unlike(ctx context.Context, userID, recipeID uint) (bool, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("OriginalAuthor").
		Preload("CurrentVersion").
		Preload("CurrentVersion.Author").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ListPublic(ctx context.Context, limit, offset int, currentUserID uint, sort string) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	base := r.applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("OriginalAuthor").
		Preload("CurrentVersion").
		Where("recipes.is_private = ?", false)
	err := r.applySort(base, sort).
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) GetByAuthor(ctx context.Context, authorID uint, includePrivate bool, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	q := r.applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("OriginalAuthor").
		Preload("CurrentVersion").
		Where("recipes.original_author_id = ?", authorID)
	if !includePrivate {
		q = q.Where("recipes.is_private = ?", false)
	}
	err := q.Order("recipes.updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) ListForks(ctx context.Context, recipeID uint) ([]*models.Recipe, error) {
	var forks []*models.Recipe
	err := r.db.WithContext(ctx).
		Where("forked_from_id = ?", recipeID).
		Find(&forks).Error
	return forks, err
}

// applySort appends the ORDER BY (and optional WHERE) clause for the
// requested sort policy. like_count is a SELECT alias from
// applyRecipeDetails; referencing it in ORDER BY works at the same query level.
func (r *recipeRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case SortTrending:
		return db.
			Where("recipes.updated_at > ?", time.Now().Add(-trendingWindow)).
			Order("like_count DESC").
			Order("recipes.updated_at DESC")
	case SortTop:
		return db.Order("like_count DESC, recipes.updated_at DESC")
	default: // SortRecent and anything unrecognized
		return db.Order("recipes.updated_at DESC")
	}
}

// applyRecipeDetails adds subqueries to fetch counts and liked status in a single query.
func (r *recipeRepository) applyRecipeDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "recipes.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.recipe_id = recipes.id AND comments.deleted_at IS NULL) as comment_count, " +
		"(SELECT COUNT(*) FROM recipe_likes WHERE recipe_likes.recipe_id = recipes.id) as like_count, " +
		"(SELECT COUNT(*) FROM recipes forks WHERE forks.forked_from_id = recipes.id) as fork_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM recipe_likes WHERE recipe_likes.recipe_id = recipes.id AND recipe_likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *recipeRepository) IsLiked(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RecipeLike{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Like inserts the like row. The ON CONFLICT DO NOTHING clause makes the
// operation atomic under concurrent double-clicks; the bool result reports
// whether a row was actually inserted.
func (r *recipeRepository) Like(ctx context.Context, userID, recipeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.RecipeLike{UserID: userID, RecipeID: recipeID})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		cache.InvalidateRecipe(ctx, recipeID)
		cache.InvalidateRecipeLists(ctx)
		return true, nil
	}
	return false, nil
}

// Unlike deletes the like row; the bool result reports whether one existed.
func (r *recipeRepository) Unlike(ctx context.Context, userID, recipeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.RecipeLike{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		cache.InvalidateRecipe(ctx, recipeID)
		cache.InvalidateRecipeLists(ctx)
		return true, nil
	}
	return false, nil
}
