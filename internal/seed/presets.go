package seed

import (
	_ "embed"
	"fmt"
	"sort"

	"forkful/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed presets.yml
var presetsYAML []byte

type presetIngredient struct {
	Name   string  `yaml:"name"`
	Amount float64 `yaml:"amount"`
	Unit   string  `yaml:"unit"`
}

type presetRecipe struct {
	Name         string             `yaml:"name"`
	Description  string             `yaml:"description"`
	Cuisine      string             `yaml:"cuisine"`
	Tags         []string           `yaml:"tags"`
	Servings     int                `yaml:"servings"`
	PrepMinutes  int                `yaml:"prep_minutes"`
	CookMinutes  int                `yaml:"cook_minutes"`
	Ingredients  []presetIngredient `yaml:"ingredients"`
	Instructions []string           `yaml:"instructions"`
}

func loadPresets() (map[string][]presetRecipe, error) {
	presets := map[string][]presetRecipe{}
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return presets, nil
}

// PresetNames lists the available curated presets.
func PresetNames() ([]string, error) {
	presets, err := loadPresets()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ApplyPreset seeds the curated recipes of the named preset, owned by a
// single curator account. Unlike the randomized seeder, preset content is
// hand-written so demo environments have recognizable dishes.
func (s *Seeder) ApplyPreset(name string) error {
	presets, err := loadPresets()
	if err != nil {
		return err
	}
	recipes, ok := presets[name]
	if !ok {
		available, _ := PresetNames()
		return fmt.Errorf("unknown preset %q, available: %v", name, available)
	}

	curator, err := s.factory.CreateUser(func(u *models.User) {
		u.Name = "Forkful Kitchen"
		u.Bio = "Curated recipes from the Forkful team."
	})
	if err != nil {
		return err
	}

	for _, preset := range recipes {
		if err := s.createPresetRecipe(curator, preset); err != nil {
			return fmt.Errorf("preset recipe %q: %w", preset.Name, err)
		}
	}
	return nil
}

func (s *Seeder) createPresetRecipe(curator *models.User, preset presetRecipe) error {
	ingredients := make([]models.Ingredient, 0, len(preset.Ingredients))
	for _, ing := range preset.Ingredients {
		ingredients = append(ingredients, models.Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	instructions := make([]models.Instruction, 0, len(preset.Instructions))
	for i, step := range preset.Instructions {
		instructions = append(instructions, models.Instruction{
			StepNumber:  i + 1,
			Description: step,
		})
	}
	cooking := models.CookingTime{
		Prep: models.TimeSpan{Value: preset.PrepMinutes, Unit: "minutes"},
		Cook: models.TimeSpan{Value: preset.CookMinutes, Unit: "minutes"},
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		recipe := &models.Recipe{
			Name:             preset.Name,
			Description:      preset.Description,
			Cuisine:          preset.Cuisine,
			Tags:             datatypes.NewJSONSlice(preset.Tags),
			OriginalAuthorID: curator.ID,
		}
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		version := &models.Version{
			RecipeID:      &recipe.ID,
			AuthorID:      curator.ID,
			VersionNumber: 1,
			Ingredients:   datatypes.NewJSONSlice(ingredients),
			Instructions:  datatypes.NewJSONSlice(instructions),
			CookingTime:   datatypes.NewJSONType(cooking),
			Servings:      preset.Servings,
			Changelog:     "Initial version",
		}
		if err := tx.Create(version).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.RecipeVersion{
			RecipeID:  recipe.ID,
			VersionID: version.ID,
			Position:  1,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Update("current_version_id", version.ID).Error
	})
}
