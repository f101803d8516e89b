package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
	// SkipBcrypt stores plaintext passwords for faster local seeding.
	SkipBcrypt bool
	// MaxDays bounds how far back seeded created_at timestamps go.
	MaxDays int
}

// Seeder populates the database with a realistic social mesh of users,
// recipes, forks, comments, likes and follows.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		opts:    opts,
		factory: NewFactory(db, opts),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes the full seeding pipeline.
func (s *Seeder) Run() error {
	log.Printf("Starting database seeding with %d users and %d recipes...", s.opts.NumUsers, s.opts.NumRecipes)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := s.SeedUsers(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	follows, err := s.SeedFollowMesh(users)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("created %d follow edges", follows)

	recipes, err := s.SeedRecipes(users, s.opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to create recipes: %w", err)
	}
	log.Printf("created %d recipes", len(recipes))

	forks, err := s.SeedForks(users, recipes)
	if err != nil {
		return fmt.Errorf("failed to create forks: %w", err)
	}
	log.Printf("created %d forks", forks)

	comments, likes, err := s.SeedEngagement(users, recipes)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("created %d comments and %d likes", comments, likes)

	log.Println("Database seeding completed")
	return nil
}

// ClearAll removes all seeded data. On PostgreSQL this truncates with
// identity restart; other dialects (sqlite in tests) fall back to deletes.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")

	if s.db.Dialector.Name() == "postgres" {
		return s.db.Exec(`TRUNCATE TABLE comment_likes, comments, recipe_likes,
			recipe_versions, recipes, versions, follows, users RESTART IDENTITY CASCADE`).Error
	}

	for _, table := range []string{
		"comment_likes", "comments", "recipe_likes",
		"recipe_versions", "recipes", "versions", "follows", "users",
	} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates n users.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedFollowMesh creates a randomized follow graph: every user follows a
// handful of others. Returns the number of edges created.
func (s *Seeder) SeedFollowMesh(users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		target := 1 + s.rng.Intn(4)
		if target > len(users)-1 {
			target = len(users) - 1
		}
		seen := map[uint]bool{follower.ID: true}
		for len(seen)-1 < target {
			followed := users[s.rng.Intn(len(users))]
			if seen[followed.ID] {
				continue
			}
			seen[followed.ID] = true
			if err := s.factory.CreateFollow(follower, followed); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// SeedRecipes creates n recipes spread across the given users, each with a
// version history between one and four entries deep.
func (s *Seeder) SeedRecipes(users []*models.User, n int) ([]*models.Recipe, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("cannot seed recipes without users")
	}

	recipes := make([]*models.Recipe, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		recipe, err := s.factory.CreateRecipe(author, 1+s.rng.Intn(4))
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// SeedForks forks roughly one in five public recipes to a random non-author.
func (s *Seeder) SeedForks(users []*models.User, recipes []*models.Recipe) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, recipe := range recipes {
		if recipe.IsPrivate || s.rng.Intn(5) != 0 {
			continue
		}
		forker := users[s.rng.Intn(len(users))]
		if forker.ID == recipe.OriginalAuthorID {
			continue
		}
		if _, err := s.factory.ForkRecipe(forker, recipe); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// SeedEngagement sprinkles comments and likes over the public recipes.
// Returns (comments, likes) created.
func (s *Seeder) SeedEngagement(users []*models.User, recipes []*models.Recipe) (int, int, error) {
	comments, likes := 0, 0
	for _, recipe := range recipes {
		if recipe.IsPrivate {
			continue
		}

		numComments := s.rng.Intn(4)
		for i := 0; i < numComments; i++ {
			commenter := users[s.rng.Intn(len(users))]
			comment, err := s.factory.CreateComment(commenter, recipe)
			if err != nil {
				return comments, likes, err
			}
			comments++

			// Some comments attract a like.
			if s.rng.Intn(2) == 0 {
				liker := users[s.rng.Intn(len(users))]
				if err := s.factory.CreateCommentLike(liker, comment); err != nil {
					return comments, likes, err
				}
				likes++
			}
		}

		numLikes := s.rng.Intn(len(users))
		seen := map[uint]bool{}
		for i := 0; i < numLikes; i++ {
			liker := users[s.rng.Intn(len(users))]
			if seen[liker.ID] {
				continue
			}
			seen[liker.ID] = true
			if err := s.factory.CreateRecipeLike(liker, recipe); err != nil {
				return comments, likes, err
			}
			likes++
		}
	}
	return comments, likes, nil
}
