package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowLifecycleHTTP(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, aliceID := signupUser(t, app, "Alice", uniqueEmail("alice"))
	_, bobID := signupUser(t, app, "Bob", uniqueEmail("bob"))

	followPath := fmt.Sprintf("/api/users/%d/follow", bobID)
	unfollowPath := fmt.Sprintf("/api/users/%d/unfollow", bobID)
	isFollowingPath := fmt.Sprintf("/api/users/%d/is-following", bobID)

	resp, body := doJSON(t, app, http.MethodGet, isFollowingPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_following"])

	resp, _ = doJSON(t, app, http.MethodPost, followPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Following twice is a conflict.
	resp, _ = doJSON(t, app, http.MethodPost, followPath, aliceToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, isFollowingPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_following"])

	// Counters are visible on the public profiles.
	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", bobID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["follower_count"])

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", aliceID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["following_count"])

	// Follower and following listings.
	resp, followers := doJSONList(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/followers", bobID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, followers, 1)
	assert.Equal(t, float64(aliceID), followers[0]["id"])

	resp, following := doJSONList(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/following", aliceID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, following, 1)
	assert.Equal(t, float64(bobID), following[0]["id"])

	resp, _ = doJSON(t, app, http.MethodPost, unfollowPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Unfollowing without a follow edge is an error.
	resp, _ = doJSON(t, app, http.MethodPost, unfollowPath, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFollowEdgeCasesHTTP(t *testing.T) {
	_, app := newTestServer(t)
	token, userID := signupUser(t, app, "Loner", uniqueEmail("loner"))

	// Self-follow is rejected.
	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", userID), token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Following a missing user is a 404.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/99999/follow", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Listing followers of a missing user is a 404 too.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/99999/followers", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
