package repository

import (
	"context"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	commenter := createTestUser(t, db, "Commenter", "commenter@example.com")
	recipe := createTestRecipe(t, db, author.ID, "Carbonara", false)

	comment := &models.Comment{Content: "Delicious", UserID: commenter.ID, RecipeID: recipe.ID}
	require.NoError(t, repo.Create(ctx, comment))
	require.NotZero(t, comment.ID)

	t.Run("get by id with author preload", func(t *testing.T) {
		got, err := repo.GetByID(ctx, comment.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, "Delicious", got.Content)
		assert.Equal(t, commenter.ID, got.User.ID)
		assert.Equal(t, 0, got.LikeCount)
	})

	t.Run("list by recipe newest first", func(t *testing.T) {
		second := &models.Comment{Content: "Making this tonight", UserID: author.ID, RecipeID: recipe.ID}
		require.NoError(t, repo.Create(ctx, second))

		comments, err := repo.ListByRecipe(ctx, recipe.ID, 20, 0, 0)
		require.NoError(t, err)
		require.Len(t, comments, 2)
	})

	t.Run("delete hides the comment", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, comment.ID))

		_, err := repo.GetByID(ctx, comment.ID, 0)
		assert.Error(t, err)

		comments, err := repo.ListByRecipe(ctx, recipe.ID, 20, 0, 0)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})
}

func TestCommentRepository_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	fan := createTestUser(t, db, "Fan", "fan@example.com")
	recipe := createTestRecipe(t, db, author.ID, "Carbonara", false)

	comment := &models.Comment{Content: "Delicious", UserID: author.ID, RecipeID: recipe.ID}
	require.NoError(t, repo.Create(ctx, comment))

	liked, err := repo.ToggleLike(ctx, fan.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := repo.GetByID(ctx, comment.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikeCount)
	assert.True(t, got.Liked)

	liked, err = repo.ToggleLike(ctx, fan.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, err = repo.GetByID(ctx, comment.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikeCount)
	assert.False(t, got.Liked)
}
