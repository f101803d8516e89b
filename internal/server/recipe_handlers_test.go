package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeLifecycleHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, aliceID := signupUser(t, app, "Alice", uniqueEmail("alice"))
	bobToken, _ := signupUser(t, app, "Bob", uniqueEmail("bob"))

	recipeID := createRecipeHTTP(t, app, aliceToken, "Carbonara")
	base := fmt.Sprintf("/api/recipes/%d", recipeID)

	// Anyone can read a public recipe; version 1 is current.
	resp, body := doJSON(t, app, http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Carbonara", body["name"])
	assert.Equal(t, float64(aliceID), body["original_author_id"])
	current, _ := body["current_version"].(map[string]any)
	require.NotNil(t, current)
	assert.Equal(t, float64(1), current["version_number"])

	// Edits require a changelog.
	resp, _ = doJSON(t, app, http.MethodPut, base, aliceToken, map[string]any{
		"name":     "Carbonara",
		"servings": 4,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A valid edit appends version 2.
	resp, body = doJSON(t, app, http.MethodPut, base, aliceToken, map[string]any{
		"name":      "Carbonara Classica",
		"servings":  6,
		"changelog": "Scaled up for guests",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Carbonara Classica", body["name"])
	current, _ = body["current_version"].(map[string]any)
	require.NotNil(t, current)
	assert.Equal(t, float64(2), current["version_number"])

	// Only the author can edit.
	resp, _ = doJSON(t, app, http.MethodPut, base, bobToken, map[string]any{
		"name":      "Hijacked",
		"servings":  1,
		"changelog": "mine now",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// History lists both versions, newest first.
	resp, history := doJSONList(t, app, http.MethodGet, base+"/versions", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, history, 2)
	assert.Equal(t, float64(2), history[0]["version_number"])
	assert.Equal(t, float64(1), history[1]["version_number"])
	v1ID := uint(history[1]["id"].(float64))

	// Single version lookup; a version outside the lineage is a 400.
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("%s/versions/%d", base, v1ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, base+"/versions/99999", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Revert to version 1 creates version 3 with version 1's content.
	resp, body = doJSON(t, app, http.MethodPost, base+"/revert", aliceToken, map[string]any{
		"version_id": v1ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	current, _ = body["current_version"].(map[string]any)
	require.NotNil(t, current)
	assert.Equal(t, float64(3), current["version_number"])
	assert.Equal(t, float64(4), current["servings"])
	assert.Equal(t, "Reverted to version 1", current["changelog"])

	// Reverting requires a version_id.
	resp, _ = doJSON(t, app, http.MethodPost, base+"/revert", aliceToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Delete is author-only.
	resp, _ = doJSON(t, app, http.MethodDelete, base, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, base, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestForkRecipeHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", uniqueEmail("alice"))
	bobToken, bobID := signupUser(t, app, "Bob", uniqueEmail("bob"))

	recipeID := createRecipeHTTP(t, app, aliceToken, "Sourdough")

	resp, fork := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/recipes/%d/fork", recipeID), bobToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Sourdough (Forked)", fork["name"])
	assert.Equal(t, float64(bobID), fork["original_author_id"])
	assert.Equal(t, float64(recipeID), fork["forked_from_id"])
	assert.Equal(t, false, fork["is_private"])

	forkID := uint(fork["id"].(float64))

	// The fork inherits the source's version history.
	resp, history := doJSONList(t, app, http.MethodGet, fmt.Sprintf("/api/recipes/%d/versions", forkID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, history, 1)

	// The source lists its forks.
	resp, forks := doJSONList(t, app, http.MethodGet, fmt.Sprintf("/api/recipes/%d/forks", recipeID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, forks, 1)
	assert.Equal(t, float64(forkID), forks[0]["id"])
}

func TestPrivateRecipeVisibilityHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", uniqueEmail("alice"))
	bobToken, _ := signupUser(t, app, "Bob", uniqueEmail("bob"))

	resp, body := doJSON(t, app, http.MethodPost, "/api/recipes", aliceToken, map[string]any{
		"name":        "Secret Sauce",
		"description": "Family secret",
		"cuisine":     "French",
		"servings":    2,
		"is_private":  true,
		"changelog":   "Initial version",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	recipeID := uint(body["id"].(float64))
	base := fmt.Sprintf("/api/recipes/%d", recipeID)

	// The author sees it; others and anonymous callers do not.
	resp, _ = doJSON(t, app, http.MethodGet, base, aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, base, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Private recipes cannot be forked by others.
	resp, _ = doJSON(t, app, http.MethodPost, base+"/fork", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Private recipes never appear in the public feed.
	resp, feed := doJSONList(t, app, http.MethodGet, "/api/recipes/recent", bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, r := range feed {
		assert.NotEqual(t, float64(recipeID), r["id"])
	}
}

func TestRecipeLikesHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", uniqueEmail("alice"))
	bobToken, _ := signupUser(t, app, "Bob", uniqueEmail("bob"))

	recipeID := createRecipeHTTP(t, app, aliceToken, "Ramen")
	base := fmt.Sprintf("/api/recipes/%d", recipeID)

	resp, body := doJSON(t, app, http.MethodPost, base+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["like_count"])
	assert.Equal(t, true, body["is_liked"])

	// Liking twice is an error, not a no-op.
	resp, _ = doJSON(t, app, http.MethodPost, base+"/like", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Like counts are public; the liked flag tracks the caller.
	resp, body = doJSON(t, app, http.MethodGet, base+"/likes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["like_count"])
	assert.Equal(t, false, body["is_liked"])

	resp, body = doJSON(t, app, http.MethodPost, base+"/unlike", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["like_count"])

	// Unliking without a like is also an error.
	resp, _ = doJSON(t, app, http.MethodPost, base+"/unlike", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrendingRecipesHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", uniqueEmail("alice"))
	bobToken, _ := signupUser(t, app, "Bob", uniqueEmail("bob"))

	quiet := createRecipeHTTP(t, app, aliceToken, "Quiet Recipe")
	popular := createRecipeHTTP(t, app, aliceToken, "Popular Recipe")

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/recipes/%d/like", popular), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, trending := doJSONList(t, app, http.MethodGet, "/api/recipes/trending", bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, trending)
	assert.Equal(t, float64(popular), trending[0]["id"])

	found := false
	for _, r := range trending {
		if r["id"] == float64(quiet) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetUserRecipesHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, aliceID := signupUser(t, app, "Alice", uniqueEmail("alice"))
	bobToken, _ := signupUser(t, app, "Bob", uniqueEmail("bob"))

	createRecipeHTTP(t, app, aliceToken, "Public Dish")
	resp, _ := doJSON(t, app, http.MethodPost, "/api/recipes", aliceToken, map[string]any{
		"name":        "Hidden Dish",
		"description": "shh",
		"cuisine":     "Fusion",
		"servings":    1,
		"is_private":  true,
		"changelog":   "Initial version",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	path := fmt.Sprintf("/api/users/%d/recipes", aliceID)

	// The author sees both; everyone else only the public one.
	resp, mine := doJSONList(t, app, http.MethodGet, path, aliceToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, mine, 2)

	resp, theirs := doJSONList(t, app, http.MethodGet, path, bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, theirs, 1)
	assert.Equal(t, "Public Dish", theirs[0]["name"])
}

func TestCreateRecipeValidationHTTP(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "Alice", uniqueEmail("alice"))

	tests := []struct {
		name string
		body map[string]any
	}{
		{"Missing Name", map[string]any{
			"description": "d", "cuisine": "c", "servings": 2, "changelog": "v1",
		}},
		{"Missing Changelog", map[string]any{
			"name": "Dish", "description": "d", "cuisine": "c", "servings": 2,
		}},
		{"Zero Servings", map[string]any{
			"name": "Dish", "description": "d", "cuisine": "c", "servings": 0, "changelog": "v1",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/api/recipes", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
