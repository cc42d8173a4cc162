// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role distinguishes regular users from administrators.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"
	// RoleAdmin grants unrestricted mutation rights over other users' resources.
	RoleAdmin Role = "admin"
)

// User represents a registered account in the Photogram application.
// The password hash and role are never serialized in API responses.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Fullname  string    `json:"fullname"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Website   string    `json:"website"`
	Bio       string    `json:"bio"`
	Phone     string    `json:"phone"`
	Genre     string    `json:"genre"`
	Avatar    string    `json:"avatar"`
	Role      Role      `gorm:"type:varchar(20);default:'user'" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Posts owned by this user; computed by reverse lookup, loaded on demand.
	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	// SavedPosts are posts this user has favorited; computed at query time.
	SavedPosts []Post `gorm:"-" json:"saved_posts,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
