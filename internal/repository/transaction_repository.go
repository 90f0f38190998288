package repository

import (
	"context"

	"github.com/1013vishalsharma/payment-api/internal/domain"
)

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	// Create persists a new transaction record
	Create(ctx context.Context, txn *domain.Transaction) error

	// GetByID retrieves a transaction by its ID. Returns
	// ErrTransactionNotFound when the ID is unknown.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)

	// GetByUserID retrieves all transactions recorded for a user, newest
	// first. A user with no transactions gets an empty slice.
	GetByUserID(ctx context.Context, userID string) ([]*domain.Transaction, error)

	// MarkRefunded atomically flips the transaction from SUCCESS to
	// REFUNDED and returns the refunded transaction. Returns
	// ErrTransactionNotFound for an unknown ID and ErrAlreadyRefunded
	// when the transaction was refunded before; under concurrent calls
	// exactly one caller wins the transition.
	MarkRefunded(ctx context.Context, id string) (*domain.Transaction, error)
}
