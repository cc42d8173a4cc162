package models

import (
	"time"
)

// Like records that a user liked a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite records that a user saved a post for later.
// The combination of UserID and PostID must be unique.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_fav_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
