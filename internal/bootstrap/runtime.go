// Package bootstrap wires process-level dependencies (database, Redis,
// optional demo data) for the application entry points.
package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"forkful/internal/cache"
	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/models"
	"forkful/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo populates an empty development database with demo data
	// so a fresh checkout has recipes to browse.
	SeedDemo    bool
	DemoUsers   int
	DemoRecipes int
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemo {
		if err := seedDemoIfEmpty(cfg, db, opts); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

// seedDemoIfEmpty runs the seeder on a development database that has no
// users yet. Non-development environments and populated databases are left
// untouched.
func seedDemoIfEmpty(cfg *config.Config, db *gorm.DB, opts Options) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") {
		return nil
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	users := opts.DemoUsers
	if users <= 0 {
		users = 10
	}
	recipes := opts.DemoRecipes
	if recipes <= 0 {
		recipes = 30
	}

	log.Printf("empty development database, seeding %d users and %d recipes", users, recipes)
	return seed.NewSeeder(db, seed.Options{
		NumUsers:   users,
		NumRecipes: recipes,
		MaxDays:    60,
	}).Run()
}
