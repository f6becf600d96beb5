package domain

import (
	"context"
	"time"
)

// User represents a registered reader account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserStats aggregates a user's review activity.
type UserStats struct {
	TotalReviews  int     `json:"totalReviews"`
	AverageRating float64 `json:"avgRating"`
	TotalLikes    int     `json:"totalLikes"`
}

// TokenPair holds an issued access token and its expiry metadata.
type TokenPair struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput is the payload for authenticating an existing account.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *User) error
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Delete removes a user and, via cascade, everything they own.
	Delete(ctx context.Context, id string) error
	// Stats returns aggregate review activity for a user.
	Stats(ctx context.Context, id string) (*UserStats, error)
}
