// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Ingredient is one entry in a version's ingredient list.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Notes  string  `json:"notes,omitempty"`
}

// Instruction is one ordered step in a version's instructions.
type Instruction struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
}

// TimeSpan is a duration with an explicit unit ("minutes" or "hours").
type TimeSpan struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// CookingTime holds preparation and cooking durations.
type CookingTime struct {
	Prep TimeSpan `json:"prep"`
	Cook TimeSpan `json:"cook"`
}

// VersionImage is an image reference attached to a version.
type VersionImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Version is an immutable snapshot of recipe content. Rows are only ever
// inserted (create, edit, fork's first edit, revert) and are deleted solely
// as part of a recipe-delete cascade. Edits must never mutate an existing
// version: forked recipes alias versions owned by their source.
type Version struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// RecipeID is the owning recipe. It is nullable because a version can
	// outlive its owner: when a recipe is deleted, versions still aliased
	// by a surviving fork's history are kept with recipe_id nulled.
	RecipeID *uint `gorm:"uniqueIndex:idx_version_number" json:"recipe_id"`
	AuthorID uint  `gorm:"not null" json:"author_id"`
	Author   User  `gorm:"foreignKey:AuthorID" json:"author"`
	// VersionNumber is 1-based and gapless within the owning recipe.
	VersionNumber int                                   `gorm:"not null;uniqueIndex:idx_version_number" json:"version_number"`
	Ingredients   datatypes.JSONSlice[Ingredient]       `json:"ingredients"`
	Instructions  datatypes.JSONSlice[Instruction]      `json:"instructions"`
	CookingTime   datatypes.JSONType[CookingTime]       `json:"cooking_time"`
	Servings      int                                   `gorm:"not null" json:"servings"`
	Notes         string                                `gorm:"type:text" json:"notes"`
	Images        datatypes.JSONSlice[VersionImage]     `json:"images"`
	Changelog     string                                `gorm:"type:text;not null" json:"changelog"`
	// ParentVersionID records provenance: the version this one was derived
	// from (previous current on edit, the copied source on revert).
	ParentVersionID *uint `json:"parent_version_id"`
	// RevertedFromID is set only on versions created by a revert; it points
	// at the version that was current when the revert happened.
	RevertedFromID *uint     `json:"reverted_from_id"`
	CreatedAt      time.Time `json:"created_at"`
}
