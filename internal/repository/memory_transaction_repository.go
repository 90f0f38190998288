package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/1013vishalsharma/payment-api/internal/domain"
)

// MemoryTransactionRepository implements TransactionRepository using
// in-memory storage. This is useful for testing and development.
type MemoryTransactionRepository struct {
	txns   map[string]*domain.Transaction
	byUser map[string][]string // userID -> []transactionID
	mu     sync.RWMutex
}

// NewMemoryTransactionRepository creates a new in-memory transaction repository
func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{
		txns:   make(map[string]*domain.Transaction),
		byUser: make(map[string][]string),
	}
}

// Create creates a new transaction record
func (r *MemoryTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Clone to avoid external modifications
	t := *txn
	r.txns[txn.ID] = &t
	r.byUser[txn.UserID] = append(r.byUser[txn.UserID], txn.ID)

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *MemoryTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txn, exists := r.txns[id]
	if !exists {
		return nil, domain.ErrTransactionNotFound
	}

	t := *txn
	return &t, nil
}

// GetByUserID retrieves all transactions for a user, newest first
func (r *MemoryTransactionRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	result := make([]*domain.Transaction, 0, len(ids))
	for _, id := range ids {
		if txn, exists := r.txns[id]; exists {
			t := *txn
			result = append(result, &t)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	return result, nil
}

// MarkRefunded flips the transaction from SUCCESS to REFUNDED. The
// check and the write happen under one lock, so concurrent refunds of
// the same transaction see exactly one winner.
func (r *MemoryTransactionRepository) MarkRefunded(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn, exists := r.txns[id]
	if !exists {
		return nil, domain.ErrTransactionNotFound
	}
	if txn.Status == domain.PaymentStatusRefunded {
		return nil, domain.ErrAlreadyRefunded
	}

	txn.Status = domain.PaymentStatusRefunded

	t := *txn
	return &t, nil
}

// Clear clears all data (for testing)
func (r *MemoryTransactionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.txns = make(map[string]*domain.Transaction)
	r.byUser = make(map[string][]string)
}
