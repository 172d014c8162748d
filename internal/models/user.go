// Package models contains data structures for the application's domain models.
package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Role determines what a user account may do. The first registered account
// becomes the site admin; every account after that is a member.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User represents a registered account. Password holds the salted digest
// only and is never serialized.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Name      string     `gorm:"not null" json:"name"`
	Role      Role       `gorm:"not null;default:member" json:"role"`
	Avatar    string     `gorm:"-" json:"avatar_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Posts     []BlogPost `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GravatarURL returns the avatar image URL for the user's email.
// Size 100, "retro" fallback and rating "g" match the comment-section
// avatars the rendering layer expects.
func (u *User) GravatarURL() string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=100&d=retro&r=g", hex.EncodeToString(sum[:]))
}
