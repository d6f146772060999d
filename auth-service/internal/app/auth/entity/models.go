package entity

import (
	"time"

	"github.com/google/uuid"
)

// Roles known to the platform. New users always start as RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account row in PostgreSQL. The password hash never leaves the
// service.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken is the stored side of a refresh token. Tokens live in Redis
// with a TTL, so ExpiresAt is reconstructed from the remaining TTL on read.
type RefreshToken struct {
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair is the access/refresh pair returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
