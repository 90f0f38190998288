package repository

import (
	"context"
	"sync"

	"github.com/1013vishalsharma/payment-api/internal/domain"
)

// MemoryUserRepository implements UserRepository using in-memory storage
// This is useful for testing and development
type MemoryUserRepository struct {
	byEmail map[string]*domain.User
	mu      sync.RWMutex
}

// NewMemoryUserRepository creates a new in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byEmail: make(map[string]*domain.User)}
}

// Create creates a new user record
func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrUserAlreadyExists
	}

	// Clone to avoid external modifications
	u := *user
	r.byEmail[user.Email] = &u

	return nil
}

// GetByEmail retrieves a user by email
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.byEmail[email]
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	u := *user
	return &u, nil
}
