package service

import (
	"context"
	"errors"
	"strings"

	"forkful/internal/models"
	"forkful/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 2000

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo   repository.CommentRepository
	recipeService *RecipeService
}

// CreateCommentInput is the input for commenting on a recipe.
type CreateCommentInput struct {
	UserID   uint
	RecipeID uint
	Content  string
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, recipeService *RecipeService) *CommentService {
	return &CommentService{commentRepo: commentRepo, recipeService: recipeService}
}

// CreateComment adds a comment to a visible recipe.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	// Visibility gate: commenting on a private recipe you cannot see fails
	// the same way reading it does.
	if _, err := s.recipeService.GetRecipe(ctx, in.RecipeID, in.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  content,
		UserID:   in.UserID,
		RecipeID: in.RecipeID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID, in.UserID)
}

// ListComments returns a recipe's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, recipeID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.recipeService.GetRecipe(ctx, recipeID, currentUserID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByRecipe(ctx, recipeID, limit, offset, currentUserID)
}

// DeleteComment removes a comment. Author-only; comments are never edited.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", commentID)
		}
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}

// ToggleCommentLike flips the caller's like on a comment and returns the
// updated comment.
func (s *CommentService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, err
	}
	if _, err := s.commentRepo.ToggleLike(ctx, userID, commentID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID, userID)
}
