package repository

import (
	"context"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error)
	ListByRecipe(ctx context.Context, recipeID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error)
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, userID, commentID uint) (liked bool, err error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByRecipe(ctx context.Context, recipeID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("comments.recipe_id = ?", recipeID).
		Order("comments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

// ToggleLike flips the current user's like on a comment and reports the
// resulting state. Runs in a transaction so concurrent toggles cannot
// double-insert.
func (r *commentRepository) ToggleLike(ctx context.Context, userID, commentID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			Delete(&models.CommentLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			liked = false
			return nil
		}
		if err := tx.Create(&models.CommentLike{UserID: userID, CommentID: commentID}).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

func (r *commentRepository) applyCommentDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "comments.*, " +
		"(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) as like_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM comment_likes WHERE comment_likes.comment_id = comments.id AND comment_likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}
