package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered player or administrator.
type User struct {
	ID       string `json:"id" gorm:"type:char(24);primaryKey"`
	FullName string `json:"fullName" gorm:"size:100;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password string `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed

	Role Role `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`

	// OwnedGames is a denormalized cache of the purchase relation, maintained
	// in the same transaction as the purchase record.
	OwnedGames []*Game `json:"ownedGames,omitempty" gorm:"many2many:user_owned_games"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an identifier before inserting the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the password-free projection returned by auth endpoints.
type PublicUser struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	OwnedGames []*Game   `json:"ownedGames,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Public returns the user's public profile.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       u.Role,
		OwnedGames: u.OwnedGames,
		CreatedAt:  u.CreatedAt,
	}
}
