package repository

import (
	"context"

	"github.com/1013vishalsharma/payment-api/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create persists a new user. Returns ErrUserAlreadyExists when the
	// email is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound when
	// no user is registered under the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
