package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	RecipeKeyPrefix    = "recipe:%d"
	RecentListKey      = "recipes:recent"
	TrendingListKey    = "recipes:trending"
	RevokedTokenPrefix = "revoked:%s"
)

const (
	UserTTL   = 5 * time.Minute
	RecipeTTL = 10 * time.Minute
	ListTTL   = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

func revokedTokenKey(jti string) string {
	return fmt.Sprintf(RevokedTokenPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
}

// InvalidateRecipeLists drops the recent and trending list entries. Called on
// any write that can change list membership or ordering.
func InvalidateRecipeLists(ctx context.Context) {
	Invalidate(ctx, RecentListKey)
	Invalidate(ctx, TrendingListKey)
}
