package models

import "time"

// RecipeLike records that a user likes a recipe.
// The combination of UserID and RecipeID must be unique.
type RecipeLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike records that a user likes a comment.
// The combination of UserID and CommentID must be unique.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}
