package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"forkful/internal/cache"
	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "SecurePass12!@"

// newTestServer wires a Server against an in-memory sqlite database and a
// miniredis instance, with the real route table installed.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Keep the shared in-memory database alive across pooled connections.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		Port:      "8340",
		JWTSecret: "test_secret",
	}

	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupRoutes(app)
	return s, app
}

// doJSON issues a request against the test app, optionally authenticated,
// and decodes the JSON response body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// doJSONList is doJSON for endpoints returning a top-level JSON array.
func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

// signupUser registers a user over HTTP and returns (token, userID).
func signupUser(t *testing.T, app *fiber.App, name, email string) (string, uint) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	require.NotZero(t, id)
	return token, uint(id)
}

// createRecipeHTTP creates a minimal valid recipe over HTTP and returns its ID.
func createRecipeHTTP(t *testing.T, app *fiber.App, token, name string) uint {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/recipes", token, map[string]any{
		"name":        name,
		"description": "A test recipe",
		"cuisine":     "Italian",
		"tags":        []string{"test"},
		"servings":    4,
		"changelog":   "Initial version",
		"ingredients": []map[string]any{
			{"name": "flour", "amount": 500, "unit": "g"},
		},
		"instructions": []map[string]any{
			{"step_number": 1, "description": "Mix everything"},
		},
		"cooking_time": map[string]any{
			"prep": map[string]any{"value": 10, "unit": "minutes"},
			"cook": map[string]any{"value": 20, "unit": "minutes"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	id, _ := body["id"].(float64)
	require.NotZero(t, id)
	return uint(id)
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, randomSuffix())
}

var emailCounter int

func randomSuffix() string {
	emailCounter++
	return fmt.Sprintf("%d", emailCounter)
}
