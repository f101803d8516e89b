package seed

import (
	"testing"

	"forkful/internal/models"
)

func TestPresetNames(t *testing.T) {
	names, err := PresetNames()
	if err != nil {
		t.Fatalf("load presets: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("expected at least one preset")
	}

	found := false
	for _, n := range names {
		if n == "classics" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected classics preset, got %v", names)
	}
}

func TestApplyPreset(t *testing.T) {
	db := openSeedTestDB(t)
	seeder := NewSeeder(db, Options{SkipBcrypt: true})

	if err := seeder.ApplyPreset("classics"); err != nil {
		t.Fatalf("apply preset: %v", err)
	}

	var recipes []models.Recipe
	if err := db.Preload("CurrentVersion").Find(&recipes).Error; err != nil {
		t.Fatalf("load recipes: %v", err)
	}
	if len(recipes) < 4 {
		t.Fatalf("expected at least 4 curated recipes, got %d", len(recipes))
	}

	for _, r := range recipes {
		if r.CurrentVersion == nil {
			t.Fatalf("recipe %q has no current version", r.Name)
		}
		if r.CurrentVersion.VersionNumber != 1 {
			t.Fatalf("curated recipe %q should start at version 1", r.Name)
		}
		if len(r.CurrentVersion.Ingredients) == 0 {
			t.Fatalf("curated recipe %q has no ingredients", r.Name)
		}
		if r.CurrentVersion.Servings <= 0 {
			t.Fatalf("curated recipe %q has invalid servings", r.Name)
		}
	}

	var curator models.User
	if err := db.Where("name = ?", "Forkful Kitchen").First(&curator).Error; err != nil {
		t.Fatalf("curator user missing: %v", err)
	}
}

func TestApplyPresetUnknown(t *testing.T) {
	db := openSeedTestDB(t)
	seeder := NewSeeder(db, Options{SkipBcrypt: true})

	if err := seeder.ApplyPreset("does-not-exist"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
