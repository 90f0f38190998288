package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/pkg/database"
	"github.com/jackc/pgx/v5"
)

// selectColumns defines the columns to select for transaction queries
const selectColumns = `id, amount, payment_method, currency, user_id, status, transaction_timestamp`

// PostgresTransactionRepository implements TransactionRepository using PostgreSQL
type PostgresTransactionRepository struct {
	db *database.PostgresDB
}

// NewPostgresTransactionRepository creates a new PostgreSQL transaction repository
func NewPostgresTransactionRepository(db *database.PostgresDB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

// Create creates a new transaction record
func (r *PostgresTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, amount, payment_method, currency, user_id, status, transaction_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Pool().Exec(ctx, query,
		txn.ID,
		txn.Amount,
		string(txn.PaymentMethod),
		string(txn.Currency),
		txn.UserID,
		string(txn.Status),
		txn.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *PostgresTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions WHERE id = $1`
	return r.scanTransaction(r.db.Pool().QueryRow(ctx, query, id))
}

// GetByUserID retrieves all transactions for a user, newest first
func (r *PostgresTransactionRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions WHERE user_id = $1 ORDER BY transaction_timestamp DESC`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]*domain.Transaction, 0)
	for rows.Next() {
		txn, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// MarkRefunded flips the transaction from SUCCESS to REFUNDED. The
// conditional UPDATE makes the transition atomic: concurrent refunds of
// the same transaction race on the row and exactly one wins.
func (r *PostgresTransactionRepository) MarkRefunded(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $2
		WHERE id = $1 AND status = $3
		RETURNING ` + selectColumns

	txn, err := r.scanTransaction(r.db.Pool().QueryRow(ctx, query, id,
		string(domain.PaymentStatusRefunded), string(domain.PaymentStatusSuccess)))
	if err == nil {
		return txn, nil
	}
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return nil, err
	}

	// No row transitioned: the ID is unknown or the transaction was
	// refunded already. A losing concurrent refund lands here and sees
	// the REFUNDED row the winner left behind.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == domain.PaymentStatusRefunded {
		return nil, domain.ErrAlreadyRefunded
	}
	return nil, domain.ErrTransactionNotFound
}

// scanTransaction scans a single transaction from a row
func (r *PostgresTransactionRepository) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var method, currency, status string

	err := row.Scan(
		&txn.ID,
		&txn.Amount,
		&method,
		&currency,
		&txn.UserID,
		&status,
		&txn.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.PaymentMethod = domain.PaymentMethod(method)
	txn.Currency = domain.Currency(currency)
	txn.Status = domain.PaymentStatus(status)
	return &txn, nil
}
