// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in the Forkful application.
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	Email          string `gorm:"unique;not null" json:"email"`
	Password       string `gorm:"not null" json:"-"`
	Bio            string `gorm:"size:500" json:"bio"`
	Location       string `json:"location"`
	ProfilePicture string `json:"profile_picture"`
	// FollowerCount and FollowingCount are persisted denormalized counters,
	// updated in the same transaction as the follow edge write.
	FollowerCount  int            `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount int            `gorm:"not null;default:0" json:"following_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Recipes        []Recipe       `gorm:"foreignKey:OriginalAuthorID" json:"recipes,omitempty"`
}
