// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"forkful/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPassword is the password assigned to every seeded user.
const DefaultPassword = "SeedPassword12!@"

var (
	cuisines = []string{
		"Italian", "French", "Japanese", "Mexican", "Indian", "Thai",
		"Chinese", "Greek", "Spanish", "Korean", "Vietnamese", "Moroccan",
		"Turkish", "Lebanese", "Brazilian", "Peruvian", "Ethiopian", "Fusion",
	}

	recipeTags = []string{
		"vegetarian", "vegan", "gluten-free", "quick", "comfort-food",
		"spicy", "baking", "grilling", "one-pot", "weeknight", "dessert",
		"breakfast", "budget", "high-protein", "slow-cooked", "seasonal",
	}

	units = []string{"g", "kg", "ml", "l", "tbsp", "tsp", "cup", "piece", "clove", "pinch"}

	changelogs = []string{
		"Initial version",
		"Reduced the salt",
		"Swapped butter for olive oil",
		"Doubled the garlic",
		"Adjusted cooking time",
		"Added a resting step",
		"Simplified the instructions",
		"Scaled up for a crowd",
	}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand

	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a timestamp spread over the configured MaxDays window so
// seeded feeds look organic.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// password returns the bcrypt hash for DefaultPassword, computed once.
// SkipBcrypt stores the plaintext for faster local seeding.
func (f *Factory) password() string {
	if f.opts.SkipBcrypt {
		return DefaultPassword
	}
	if f.passwordHash == "" {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		f.passwordHash = string(hashed)
	}
	return f.passwordHash
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:           gofakeit.Name(),
		Email:          fmt.Sprintf("%d.%s", gofakeit.Number(100, 999), gofakeit.Email()),
		Password:       f.password(),
		Bio:            gofakeit.Sentence(10),
		Location:       gofakeit.City(),
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// buildContent generates a plausible set of ingredients and instructions.
func (f *Factory) buildContent() (datatypes.JSONSlice[models.Ingredient], datatypes.JSONSlice[models.Instruction], datatypes.JSONType[models.CookingTime]) {
	numIngredients := 3 + f.rng.Intn(6)
	ingredients := make([]models.Ingredient, 0, numIngredients)
	for i := 0; i < numIngredients; i++ {
		ingredients = append(ingredients, models.Ingredient{
			Name:   strings.ToLower(gofakeit.Fruit()),
			Amount: float64(10 * (1 + f.rng.Intn(50))),
			Unit:   units[f.rng.Intn(len(units))],
		})
	}

	numSteps := 2 + f.rng.Intn(5)
	instructions := make([]models.Instruction, 0, numSteps)
	for i := 0; i < numSteps; i++ {
		instructions = append(instructions, models.Instruction{
			StepNumber:  i + 1,
			Description: gofakeit.Sentence(12),
		})
	}

	cooking := models.CookingTime{
		Prep: models.TimeSpan{Value: 5 + f.rng.Intn(25), Unit: "minutes"},
		Cook: models.TimeSpan{Value: 10 + f.rng.Intn(110), Unit: "minutes"},
	}

	return datatypes.NewJSONSlice(ingredients), datatypes.NewJSONSlice(instructions), datatypes.NewJSONType(cooking)
}

// CreateRecipe constructs and persists a recipe with `numVersions` versions,
// mirroring the append-only history layout the API maintains: one row in
// recipe_versions per version and current_version_id pointing at the newest.
func (f *Factory) CreateRecipe(author *models.User, numVersions int, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	if numVersions < 1 {
		numVersions = 1
	}

	tagCount := 1 + f.rng.Intn(3)
	tags := make([]string, 0, tagCount)
	for i := 0; i < tagCount; i++ {
		tags = append(tags, recipeTags[f.rng.Intn(len(recipeTags))])
	}

	recipe := &models.Recipe{
		Name:             gofakeit.Dinner(),
		Description:      gofakeit.Paragraph(1, 2, 8, " "),
		Cuisine:          cuisines[f.rng.Intn(len(cuisines))],
		Tags:             datatypes.NewJSONSlice(tags),
		OriginalAuthorID: author.ID,
		IsPrivate:        f.rng.Intn(10) == 0,
		CreatedAt:        f.pastTime(),
	}

	for _, override := range overrides {
		override(recipe)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		var parentID *uint
		for n := 1; n <= numVersions; n++ {
			ingredients, instructions, cooking := f.buildContent()
			changelog := changelogs[0]
			if n > 1 {
				changelog = changelogs[1+f.rng.Intn(len(changelogs)-1)]
			}

			version := &models.Version{
				RecipeID:        &recipe.ID,
				AuthorID:        author.ID,
				VersionNumber:   n,
				Ingredients:     ingredients,
				Instructions:    instructions,
				CookingTime:     cooking,
				Servings:        2 + f.rng.Intn(8),
				Changelog:       changelog,
				ParentVersionID: parentID,
				CreatedAt:       recipe.CreatedAt.Add(time.Duration(n-1) * time.Hour),
			}
			if err := tx.Create(version).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.RecipeVersion{
				RecipeID:  recipe.ID,
				VersionID: version.ID,
				Position:  n,
			}).Error; err != nil {
				return err
			}
			parentID = &version.ID
			recipe.CurrentVersionID = &version.ID
		}

		return tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Update("current_version_id", recipe.CurrentVersionID).Error
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// ForkRecipe persists a fork of `source` owned by `user`, aliasing the
// source's whole version history the way the fork endpoint does.
func (f *Factory) ForkRecipe(user *models.User, source *models.Recipe) (*models.Recipe, error) {
	fork := &models.Recipe{
		Name:             source.Name + " (Forked)",
		Description:      source.Description,
		Cuisine:          source.Cuisine,
		Tags:             source.Tags,
		OriginalAuthorID: user.ID,
		ForkedFromID:     &source.ID,
		CurrentVersionID: source.CurrentVersionID,
		IsPrivate:        false,
		CreatedAt:        f.pastTime(),
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fork).Error; err != nil {
			return err
		}

		var history []models.RecipeVersion
		if err := tx.Where("recipe_id = ?", source.ID).Order("position ASC").Find(&history).Error; err != nil {
			return err
		}
		for _, entry := range history {
			if err := tx.Create(&models.RecipeVersion{
				RecipeID:  fork.ID,
				VersionID: entry.VersionID,
				Position:  entry.Position,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fork, nil
}

// CreateComment constructs and persists a comment on the provided recipe
// authored by the provided user.
func (f *Factory) CreateComment(user *models.User, recipe *models.Recipe, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(8),
		UserID:   user.ID,
		RecipeID: recipe.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateRecipeLike persists a like from `user` on `recipe`.
func (f *Factory) CreateRecipeLike(user *models.User, recipe *models.Recipe) error {
	return f.db.Create(&models.RecipeLike{
		UserID:   user.ID,
		RecipeID: recipe.ID,
	}).Error
}

// CreateCommentLike persists a like from `user` on `comment`.
func (f *Factory) CreateCommentLike(user *models.User, comment *models.Comment) error {
	return f.db.Create(&models.CommentLike{
		UserID:    user.ID,
		CommentID: comment.ID,
	}).Error
}

// CreateFollow persists a follow edge and keeps the denormalized counters in
// step, matching what the follow endpoint maintains.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Follow{
			FollowerID: follower.ID,
			FollowedID: followed.ID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", follower.ID).
			Update("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followed.ID).
			Update("follower_count", gorm.Expr("follower_count + 1")).Error
	})
}
