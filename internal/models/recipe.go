// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Recipe is the top-level shareable entity. Its content lives in immutable
// Version rows; the recipe itself only carries metadata and the pointers
// current_version_id / version history (see RecipeVersion).
type Recipe struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	Name             string                      `gorm:"not null" json:"name"`
	Description      string                      `gorm:"type:text;not null" json:"description"`
	Cuisine          string                      `gorm:"not null" json:"cuisine"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`
	OriginalAuthorID uint                        `gorm:"not null;index" json:"original_author_id"`
	OriginalAuthor   User                        `gorm:"foreignKey:OriginalAuthorID" json:"original_author"`
	// CurrentVersionID must always reference a member of the recipe's
	// version history. It is nil only inside the creation transaction,
	// before version #1 is inserted.
	CurrentVersionID *uint    `gorm:"index" json:"current_version_id"`
	CurrentVersion   *Version `gorm:"foreignKey:CurrentVersionID" json:"current_version,omitempty"`
	// ForkedFromID points at the source recipe. It is nulled, not left
	// dangling, when the source is deleted.
	ForkedFromID *uint     `gorm:"index" json:"forked_from_id"`
	ForkedFrom   *Recipe   `gorm:"foreignKey:ForkedFromID" json:"forked_from,omitempty"`
	IsPrivate    bool      `gorm:"not null;default:false" json:"is_private"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Computed at query time via subqueries; never persisted, so the
	// count-equals-set invariant cannot drift.
	LikeCount    int  `gorm:"->" json:"like_count"`
	CommentCount int  `gorm:"->" json:"comment_count"`
	ForkCount    int  `gorm:"->" json:"fork_count"`
	Liked        bool `gorm:"->" json:"liked"`
}

// RecipeVersion is one entry in a recipe's ordered, append-only version
// history. Forking aliases the source's entries rather than copying version
// content, so a VersionID may appear in the history of several recipes.
type RecipeVersion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_recipe_version" json:"recipe_id"`
	VersionID uint      `gorm:"not null;uniqueIndex:idx_recipe_version;index" json:"version_id"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (RecipeVersion) TableName() string {
	return "recipe_versions"
}
