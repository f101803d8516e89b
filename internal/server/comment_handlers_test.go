package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycleHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", uniqueEmail("alice"))
	bobToken, bobID := signupUser(t, app, "Bob", uniqueEmail("bob"))

	recipeID := createRecipeHTTP(t, app, aliceToken, "Paella")
	commentsPath := fmt.Sprintf("/api/recipes/%d/comments", recipeID)

	resp, comment := doJSON(t, app, http.MethodPost, commentsPath, bobToken, map[string]string{
		"content": "Looks delicious!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Looks delicious!", comment["content"])
	assert.Equal(t, float64(bobID), comment["user_id"])
	commentID := uint(comment["id"].(float64))

	// Comments are public.
	resp, comments := doJSONList(t, app, http.MethodGet, commentsPath, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, comments, 1)

	// Comment likes toggle.
	likePath := fmt.Sprintf("/api/comments/%d/like", commentID)
	resp, liked := doJSON(t, app, http.MethodPost, likePath, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), liked["like_count"])
	assert.Equal(t, true, liked["liked"])

	resp, liked = doJSON(t, app, http.MethodPost, likePath, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), liked["like_count"])
	assert.Equal(t, false, liked["liked"])

	// Only the comment author can delete it.
	deletePath := fmt.Sprintf("/api/comments/%d", commentID)
	resp, _ = doJSON(t, app, http.MethodDelete, deletePath, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, deletePath, bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, comments = doJSONList(t, app, http.MethodGet, commentsPath, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, comments)
}

func TestCommentValidationHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", uniqueEmail("alice"))
	bobToken, _ := signupUser(t, app, "Bob", uniqueEmail("bob"))

	recipeID := createRecipeHTTP(t, app, aliceToken, "Gazpacho")
	commentsPath := fmt.Sprintf("/api/recipes/%d/comments", recipeID)

	// Empty and oversized comments are rejected.
	resp, _ := doJSON(t, app, http.MethodPost, commentsPath, bobToken, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, commentsPath, bobToken, map[string]string{
		"content": strings.Repeat("a", 2001),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Commenting on a missing recipe is a 404.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/recipes/99999/comments", bobToken, map[string]string{
		"content": "hello?",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentOnPrivateRecipeHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", uniqueEmail("alice"))
	bobToken, _ := signupUser(t, app, "Bob", uniqueEmail("bob"))

	resp, body := doJSON(t, app, http.MethodPost, "/api/recipes", aliceToken, map[string]any{
		"name":        "Private Stew",
		"description": "secret",
		"cuisine":     "Irish",
		"servings":    3,
		"is_private":  true,
		"changelog":   "Initial version",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	recipeID := uint(body["id"].(float64))
	commentsPath := fmt.Sprintf("/api/recipes/%d/comments", recipeID)

	// Outsiders can neither read nor write comments on a private recipe.
	resp, _ = doJSON(t, app, http.MethodPost, commentsPath, bobToken, map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, commentsPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The author can.
	resp, _ = doJSON(t, app, http.MethodPost, commentsPath, aliceToken, map[string]string{"content": "note to self"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
