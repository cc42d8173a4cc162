package models

import (
	"time"
)

// Post represents a photo post. The image URI points at an asset stored
// on disk and served statically. Likes and favorites live in join tables
// (Like, Favorite); the id slices here are computed at query time.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Image       string    `gorm:"not null" json:"image"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// LikedBy holds the ids of users who liked this post (computed).
	LikedBy []uint `gorm:"-" json:"likes"`
	// SavedBy holds the ids of users who saved this post (computed).
	SavedBy []uint `gorm:"-" json:"favorites"`
	// Comments on this post; computed by reverse lookup, loaded on demand.
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}
