package service

import (
	"context"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@example.com")
	bob := env.register(t, "Bob", "bob@example.com")

	t.Run("self follow rejected", func(t *testing.T) {
		err := env.follows.Follow(ctx, alice, alice)
		requireAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("follow unknown user is not found", func(t *testing.T) {
		err := env.follows.Follow(ctx, alice, 9999)
		requireAppError(t, err, "NOT_FOUND")
	})

	t.Run("follow then duplicate follow", func(t *testing.T) {
		require.NoError(t, env.follows.Follow(ctx, alice, bob))

		var followed models.User
		require.NoError(t, env.db.First(&followed, bob).Error)
		assert.Equal(t, 1, followed.FollowerCount)

		// Second follow conflicts and counters stay put.
		err := env.follows.Follow(ctx, alice, bob)
		requireAppError(t, err, "CONFLICT")

		require.NoError(t, env.db.First(&followed, bob).Error)
		assert.Equal(t, 1, followed.FollowerCount)
	})

	t.Run("is following and lists", func(t *testing.T) {
		following, err := env.follows.IsFollowing(ctx, alice, bob)
		require.NoError(t, err)
		assert.True(t, following)

		followers, err := env.follows.Followers(ctx, bob, 20, 0)
		require.NoError(t, err)
		require.Len(t, followers, 1)
		assert.Equal(t, alice, followers[0].ID)

		followees, err := env.follows.Following(ctx, alice, 20, 0)
		require.NoError(t, err)
		require.Len(t, followees, 1)
		assert.Equal(t, bob, followees[0].ID)
	})

	t.Run("unfollow", func(t *testing.T) {
		require.NoError(t, env.follows.Unfollow(ctx, alice, bob))

		err := env.follows.Unfollow(ctx, alice, bob)
		requireAppError(t, err, "VALIDATION_ERROR")

		var follower models.User
		require.NoError(t, env.db.First(&follower, alice).Error)
		assert.Equal(t, 0, follower.FollowingCount)
	})
}
