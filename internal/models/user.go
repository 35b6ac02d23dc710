package models

import (
	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */
// User represents the user entity
type User struct {
	gorm.Model
	Email    string  `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Name     *string `gorm:"size:150" json:"name"`
	Password string  `gorm:"size:128" json:"-"` // bcrypt hash, never serialized
}

// DisplayName returns the name, or an empty string when none was set.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}

/** -------------------- DTOs -------------------- */
// Request
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type UpdateNameRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}

type SearchUsersQuery struct {
	Email string `form:"email" binding:"omitempty,email"`
	Name  string `form:"name" binding:"max=100"`
}

// Response
// UserResponse is the display projection of a user.
type UserResponse struct {
	ID    uint    `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// TokenPair is returned on login and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
