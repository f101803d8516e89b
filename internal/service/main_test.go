package service

import (
	"context"
	"testing"

	"forkful/internal/database"
	"forkful/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires every service against one in-memory sqlite database.
type testEnv struct {
	db       *gorm.DB
	users    *UserService
	recipes  *RecipeService
	comments *CommentService
	follows  *FollowService
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	recipes := NewRecipeService(recipeRepo, versionRepo, db)
	return &testEnv{
		db:       db,
		users:    NewUserService(userRepo),
		recipes:  recipes,
		comments: NewCommentService(commentRepo, recipes),
		follows:  NewFollowService(followRepo, userRepo),
	}
}

func (e *testEnv) register(t *testing.T, name, email string) uint {
	user, err := e.users.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: "SecurePass12!@",
	})
	require.NoError(t, err)
	return user.ID
}
