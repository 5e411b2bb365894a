package models

import "time"

// User is a registered account. PasswordHash and the refresh token state are
// never serialized.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`

	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// AuthUser is the identity the bearer guard attaches to the request context.
// It is what every downstream component sees as "the caller".
type AuthUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
