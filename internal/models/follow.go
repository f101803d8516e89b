package models

import "time"

// Follow is a directed edge in the social graph: follower follows followed.
// The pair is unique and self-follows are rejected before insert.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
