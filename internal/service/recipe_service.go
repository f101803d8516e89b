// Package service provides application business logic (recipes, comments, users, follows).
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"forkful/internal/cache"
	"forkful/internal/models"
	"forkful/internal/observability"
	"forkful/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecipeService provides recipe lifecycle business logic. Every operation
// that touches more than one row (create, edit, fork, revert, delete) runs
// inside a single database transaction, so a crash can never leave a recipe
// pointing at a version that was not persisted.
type RecipeService struct {
	recipeRepo  repository.RecipeRepository
	versionRepo repository.VersionRepository
	db          *gorm.DB
}

// NewRecipeService returns a new RecipeService.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	versionRepo repository.VersionRepository,
	db *gorm.DB,
) *RecipeService {
	return &RecipeService{
		recipeRepo:  recipeRepo,
		versionRepo: versionRepo,
		db:          db,
	}
}

// VersionContentInput is the content payload of a recipe version.
type VersionContentInput struct {
	Ingredients  []models.Ingredient   `json:"ingredients"`
	Instructions []models.Instruction  `json:"instructions"`
	CookingTime  models.CookingTime    `json:"cooking_time"`
	Servings     int                   `json:"servings"`
	Notes        string                `json:"notes"`
	Images       []models.VersionImage `json:"images"`
}

// CreateRecipeInput is the input for creating a recipe with its first version.
type CreateRecipeInput struct {
	UserID      uint
	Name        string
	Description string
	Cuisine     string
	Tags        []string
	IsPrivate   bool
	Changelog   string
	Content     VersionContentInput
}

// EditRecipeInput is the input for editing a recipe. Metadata fields are
// optional; the changelog is not — every edit appends a new version.
type EditRecipeInput struct {
	UserID      uint
	RecipeID    uint
	Name        string
	Description string
	Cuisine     string
	Tags        []string
	IsPrivate   *bool
	Changelog   string
	Content     VersionContentInput
}

// RevertRecipeInput is the input for reverting a recipe to an earlier version.
type RevertRecipeInput struct {
	UserID    uint
	RecipeID  uint
	VersionID uint
	Changelog string
}

// LikeInfo summarizes a recipe's like state for the current user.
type LikeInfo struct {
	LikeCount int  `json:"like_count"`
	IsLiked   bool `json:"is_liked"`
}

const (
	maxNameLen      = 200
	maxChangelogLen = 1000
	trendingLimit   = 3
)

// CreateRecipe creates a recipe together with version #1.
func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (recipe *models.Recipe, err error) {
	defer func() { observability.RecordLifecycleOp("create", err) }()

	if err := validateRecipeFields(in.Name, in.Description, in.Cuisine); err != nil {
		return nil, err
	}
	if in.Content.Servings <= 0 {
		return nil, models.NewValidationError("Servings must be a positive number")
	}
	if err := validateChangelog(in.Changelog); err != nil {
		return nil, err
	}

	var recipeID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := &models.Recipe{
			Name:             strings.TrimSpace(in.Name),
			Description:      in.Description,
			Cuisine:          in.Cuisine,
			Tags:             datatypes.NewJSONSlice(in.Tags),
			OriginalAuthorID: in.UserID,
			IsPrivate:        in.IsPrivate,
		}
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		if _, err := appendVersion(tx, r, in.UserID, in.Content, in.Changelog, nil, nil); err != nil {
			return err
		}
		recipeID = r.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateRecipeLists(ctx)
	return s.recipeRepo.GetByID(ctx, recipeID, in.UserID)
}

// EditRecipe updates recipe metadata and appends a new version. Author-only.
func (s *RecipeService) EditRecipe(ctx context.Context, in EditRecipeInput) (recipe *models.Recipe, err error) {
	defer func() { observability.RecordLifecycleOp("edit", err) }()

	if err := validateChangelog(in.Changelog); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := lockRecipe(tx, in.RecipeID)
		if err != nil {
			return err
		}
		if r.OriginalAuthorID != in.UserID {
			return models.NewForbiddenError("Only the original author can edit this recipe")
		}

		if in.Name != "" {
			r.Name = strings.TrimSpace(in.Name)
		}
		if in.Description != "" {
			r.Description = in.Description
		}
		if in.Cuisine != "" {
			r.Cuisine = in.Cuisine
		}
		if in.Tags != nil {
			r.Tags = datatypes.NewJSONSlice(in.Tags)
		}
		if in.IsPrivate != nil {
			r.IsPrivate = *in.IsPrivate
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", r.ID).Updates(map[string]any{
			"name":        r.Name,
			"description": r.Description,
			"cuisine":     r.Cuisine,
			"tags":        r.Tags,
			"is_private":  r.IsPrivate,
		}).Error; err != nil {
			return err
		}

		_, err = appendVersion(tx, r, in.UserID, in.Content, in.Changelog, r.CurrentVersionID, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateRecipe(ctx, in.RecipeID)
	cache.InvalidateRecipeLists(ctx)
	return s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
}

// ForkRecipe creates a new recipe owned by userID whose history aliases the
// source's versions. No version content is copied: a fork is a cheap pointer
// copy, and the fork's first edit allocates a fresh version.
func (s *RecipeService) ForkRecipe(ctx context.Context, userID, recipeID uint) (fork *models.Recipe, err error) {
	defer func() { observability.RecordLifecycleOp("fork", err) }()

	var forkID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		src, err := lockRecipe(tx, recipeID)
		if err != nil {
			return err
		}
		if src.IsPrivate && src.OriginalAuthorID != userID {
			return models.NewForbiddenError("Cannot fork a private recipe")
		}

		f := &models.Recipe{
			Name:             src.Name + " (Forked)",
			Description:      src.Description,
			Cuisine:          src.Cuisine,
			Tags:             src.Tags,
			OriginalAuthorID: userID,
			ForkedFromID:     &src.ID,
			CurrentVersionID: src.CurrentVersionID,
			// Forks are always public, regardless of source visibility.
			IsPrivate: false,
		}
		if err := tx.Create(f).Error; err != nil {
			return err
		}

		var history []models.RecipeVersion
		if err := tx.Where("recipe_id = ?", src.ID).Order("position ASC").Find(&history).Error; err != nil {
			return err
		}
		for _, h := range history {
			if err := tx.Create(&models.RecipeVersion{
				RecipeID:  f.ID,
				VersionID: h.VersionID,
				Position:  h.Position,
			}).Error; err != nil {
				return err
			}
		}

		forkID = f.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateRecipe(ctx, recipeID)
	cache.InvalidateRecipeLists(ctx)
	return s.recipeRepo.GetByID(ctx, forkID, userID)
}

// RevertRecipe appends a new version copying the target's content. History is
// never rewound: revert only grows it.
func (s *RecipeService) RevertRecipe(ctx context.Context, in RevertRecipeInput) (recipe *models.Recipe, err error) {
	defer func() { observability.RecordLifecycleOp("revert", err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := lockRecipe(tx, in.RecipeID)
		if err != nil {
			return err
		}
		if r.OriginalAuthorID != in.UserID {
			return models.NewForbiddenError("Only the original author can revert this recipe")
		}

		var membership int64
		if err := tx.Model(&models.RecipeVersion{}).
			Where("recipe_id = ? AND version_id = ?", in.RecipeID, in.VersionID).
			Count(&membership).Error; err != nil {
			return err
		}
		if membership == 0 {
			return models.NewValidationError("Version does not belong to this recipe")
		}

		var target models.Version
		if err := tx.First(&target, in.VersionID).Error; err != nil {
			return err
		}

		changelog := strings.TrimSpace(in.Changelog)
		if changelog == "" {
			changelog = fmt.Sprintf("Reverted to version %d", target.VersionNumber)
		}

		content := VersionContentInput{
			Ingredients:  target.Ingredients,
			Instructions: target.Instructions,
			CookingTime:  target.CookingTime.Data(),
			Servings:     target.Servings,
			Notes:        target.Notes,
			Images:       target.Images,
		}
		_, err = appendVersion(tx, r, in.UserID, content, changelog, &target.ID, r.CurrentVersionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateRecipe(ctx, in.RecipeID)
	return s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
}

// DeleteRecipe removes the recipe and everything only it owns. Child forks
// survive with forked_from nulled, and versions still aliased by a surviving
// recipe's history are kept with their owner pointer nulled.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) (err error) {
	defer func() { observability.RecordLifecycleOp("delete", err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := lockRecipe(tx, recipeID)
		if err != nil {
			return err
		}
		if r.OriginalAuthorID != userID {
			return models.NewForbiddenError("Only the original author can delete this recipe")
		}

		// Decouple child forks instead of deleting them.
		if err := tx.Model(&models.Recipe{}).
			Where("forked_from_id = ?", recipeID).
			Update("forked_from_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("comment_id IN (SELECT id FROM comments WHERE recipe_id = ?)", recipeID).
			Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeLike{}).Error; err != nil {
			return err
		}

		// Drop this recipe's history rows, then the recipe itself (its
		// current_version_id foreign key must go before any version rows do).
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Recipe{}, recipeID).Error; err != nil {
			return err
		}

		// Versions aliased by a surviving fork's history outlive their owner
		// with recipe_id nulled; the rest are deleted.
		if err := tx.Model(&models.Version{}).
			Where("recipe_id = ?", recipeID).
			Where("id IN (SELECT version_id FROM recipe_versions)").
			Update("recipe_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("recipe_id = ?", recipeID).Delete(&models.Version{}).Error
	})
	if err != nil {
		return err
	}

	cache.InvalidateRecipe(ctx, recipeID)
	cache.InvalidateRecipeLists(ctx)
	return nil
}

// GetRecipe fetches a recipe, enforcing private visibility.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	var recipe *models.Recipe
	var err error

	// The cached projection has no per-user liked flag, so only anonymous
	// reads go through the cache.
	if currentUserID == 0 {
		recipe = &models.Recipe{}
		err = cache.Aside(ctx, cache.RecipeKey(id), recipe, cache.RecipeTTL, func() error {
			fetched, fetchErr := s.recipeRepo.GetByID(ctx, id, 0)
			if fetchErr != nil {
				return fetchErr
			}
			*recipe = *fetched
			return nil
		})
	} else {
		recipe, err = s.recipeRepo.GetByID(ctx, id, currentUserID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, err
	}

	if recipe.IsPrivate && recipe.OriginalAuthorID != currentUserID {
		return nil, models.NewForbiddenError("This recipe is private")
	}
	return recipe, nil
}

// ListRecent returns public recipes, newest first.
func (s *RecipeService) ListRecent(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	if currentUserID == 0 && offset == 0 && limit <= 20 {
		var recipes []*models.Recipe
		err := cache.Aside(ctx, cache.RecentListKey, &recipes, cache.ListTTL, func() error {
			var fetchErr error
			recipes, fetchErr = s.recipeRepo.ListPublic(ctx, limit, offset, 0, repository.SortRecent)
			return fetchErr
		})
		return recipes, err
	}
	return s.recipeRepo.ListPublic(ctx, limit, offset, currentUserID, repository.SortRecent)
}

// ListTrending returns the most liked recent public recipes.
func (s *RecipeService) ListTrending(ctx context.Context, currentUserID uint) ([]*models.Recipe, error) {
	if currentUserID == 0 {
		var recipes []*models.Recipe
		err := cache.Aside(ctx, cache.TrendingListKey, &recipes, cache.ListTTL, func() error {
			var fetchErr error
			recipes, fetchErr = s.recipeRepo.ListPublic(ctx, trendingLimit, 0, 0, repository.SortTrending)
			return fetchErr
		})
		return recipes, err
	}
	return s.recipeRepo.ListPublic(ctx, trendingLimit, 0, currentUserID, repository.SortTrending)
}

// GetUserRecipes returns a user's recipes; private ones only for the user
// themselves.
func (s *RecipeService) GetUserRecipes(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	includePrivate := authorID == currentUserID && currentUserID != 0
	return s.recipeRepo.GetByAuthor(ctx, authorID, includePrivate, limit, offset, currentUserID)
}

// GetHistory returns the recipe's version history, newest first.
func (s *RecipeService) GetHistory(ctx context.Context, recipeID uint, currentUserID uint) ([]*models.Version, error) {
	if _, err := s.GetRecipe(ctx, recipeID, currentUserID); err != nil {
		return nil, err
	}
	return s.versionRepo.HistoryForRecipe(ctx, recipeID)
}

// GetVersion fetches one version, verifying it belongs to the recipe's
// history (which includes versions a fork inherited from its source).
func (s *RecipeService) GetVersion(ctx context.Context, recipeID, versionID uint, currentUserID uint) (*models.Version, error) {
	if _, err := s.GetRecipe(ctx, recipeID, currentUserID); err != nil {
		return nil, err
	}
	in, err := s.versionRepo.InHistory(ctx, recipeID, versionID)
	if err != nil {
		return nil, err
	}
	if !in {
		return nil, models.NewValidationError("Version does not belong to this recipe")
	}
	version, err := s.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Version", versionID)
		}
		return nil, err
	}
	return version, nil
}

// GetForks lists the recipes forked from this one.
func (s *RecipeService) GetForks(ctx context.Context, recipeID uint, currentUserID uint) ([]*models.Recipe, error) {
	if _, err := s.GetRecipe(ctx, recipeID, currentUserID); err != nil {
		return nil, err
	}
	return s.recipeRepo.ListForks(ctx, recipeID)
}

// LikeRecipe records a like. Liking an already-liked recipe is an error,
// matching the non-idempotent like/unlike endpoint pair.
func (s *RecipeService) LikeRecipe(ctx context.Context, userID, recipeID uint) (*LikeInfo, error) {
	if _, err := s.GetRecipe(ctx, recipeID, userID); err != nil {
		return nil, err
	}
	inserted, err := s.recipeRepo.Like(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, models.NewValidationError("Recipe already liked")
	}
	return s.GetLikes(ctx, recipeID, userID)
}

// UnlikeRecipe removes a like. Unliking a recipe that was not liked is an
// error.
func (s *RecipeService) UnlikeRecipe(ctx context.Context, userID, recipeID uint) (*LikeInfo, error) {
	if _, err := s.GetRecipe(ctx, recipeID, userID); err != nil {
		return nil, err
	}
	removed, err := s.recipeRepo.Unlike(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.NewValidationError("Recipe not liked")
	}
	return s.GetLikes(ctx, recipeID, userID)
}

// GetLikes returns the like count and whether the current user likes the
// recipe. Private recipes only reveal their likes to the author. The cached
// anonymous projection carries no per-user flag, so the liked state is read
// separately for logged-in users.
func (s *RecipeService) GetLikes(ctx context.Context, recipeID uint, currentUserID uint) (*LikeInfo, error) {
	recipe, err := s.GetRecipe(ctx, recipeID, currentUserID)
	if err != nil {
		return nil, err
	}
	info := &LikeInfo{LikeCount: recipe.LikeCount}
	if currentUserID != 0 {
		liked, err := s.recipeRepo.IsLiked(ctx, currentUserID, recipeID)
		if err != nil {
			return nil, err
		}
		info.IsLiked = liked
	}
	return info, nil
}

// lockRecipe loads the recipe row inside tx, translating a miss into the API
// error taxonomy.
func lockRecipe(tx *gorm.DB, id uint) (*models.Recipe, error) {
	var r models.Recipe
	if err := tx.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, err
	}
	return &r, nil
}

// appendVersion inserts the next version for recipe inside tx, adds the
// history row, and reassigns current_version_id. The version number is the
// history length plus one, which keeps numbers gapless even on forks whose
// early history is aliased.
func appendVersion(tx *gorm.DB, recipe *models.Recipe, authorID uint, content VersionContentInput, changelog string, parentID, revertedFromID *uint) (*models.Version, error) {
	var historyLen int64
	if err := tx.Model(&models.RecipeVersion{}).
		Where("recipe_id = ?", recipe.ID).
		Count(&historyLen).Error; err != nil {
		return nil, err
	}

	version := &models.Version{
		RecipeID:        &recipe.ID,
		AuthorID:        authorID,
		VersionNumber:   int(historyLen) + 1,
		Ingredients:     datatypes.NewJSONSlice(content.Ingredients),
		Instructions:    datatypes.NewJSONSlice(content.Instructions),
		CookingTime:     datatypes.NewJSONType(content.CookingTime),
		Servings:        content.Servings,
		Notes:           content.Notes,
		Images:          datatypes.NewJSONSlice(content.Images),
		Changelog:       changelog,
		ParentVersionID: parentID,
		RevertedFromID:  revertedFromID,
	}
	if err := tx.Create(version).Error; err != nil {
		return nil, err
	}

	if err := tx.Create(&models.RecipeVersion{
		RecipeID:  recipe.ID,
		VersionID: version.ID,
		Position:  version.VersionNumber,
	}).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&models.Recipe{}).
		Where("id = ?", recipe.ID).
		Update("current_version_id", version.ID).Error; err != nil {
		return nil, err
	}
	recipe.CurrentVersionID = &version.ID
	return version, nil
}

func validateRecipeFields(name, description, cuisine string) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("Name is required")
	}
	if len(name) > maxNameLen {
		return models.NewValidationError("Name too long (max 200 characters)")
	}
	if strings.TrimSpace(description) == "" {
		return models.NewValidationError("Description is required")
	}
	if strings.TrimSpace(cuisine) == "" {
		return models.NewValidationError("Cuisine is required")
	}
	return nil
}

func validateChangelog(changelog string) error {
	if strings.TrimSpace(changelog) == "" {
		return models.NewValidationError("Changelog is required")
	}
	if len(changelog) > maxChangelogLen {
		return models.NewValidationError("Changelog too long (max 1000 characters)")
	}
	return nil
}
