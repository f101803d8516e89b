package repository

import (
	"testing"

	"forkful/internal/database"
	"forkful/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
// Pinning the pool to one connection keeps the in-memory database alive
// across queries.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	user := &models.User{Name: name, Email: email, Password: "hashed"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestRecipe inserts a recipe with a single version and the matching
// history row, mirroring what the recipe service does on create.
func createTestRecipe(t *testing.T, db *gorm.DB, authorID uint, name string, private bool) *models.Recipe {
	recipe := &models.Recipe{Name: name, OriginalAuthorID: authorID, IsPrivate: private}
	require.NoError(t, db.Create(recipe).Error)

	version := &models.Version{
		RecipeID:      &recipe.ID,
		AuthorID:      authorID,
		VersionNumber: 1,
		Changelog:     "Initial version",
	}
	require.NoError(t, db.Create(version).Error)
	require.NoError(t, db.Create(&models.RecipeVersion{
		RecipeID:  recipe.ID,
		VersionID: version.ID,
		Position:  1,
	}).Error)

	recipe.CurrentVersionID = &version.ID
	require.NoError(t, db.Model(recipe).Update("current_version_id", version.ID).Error)
	return recipe
}
