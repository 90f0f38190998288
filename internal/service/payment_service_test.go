package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/internal/dto"
	"github.com/1013vishalsharma/payment-api/internal/repository"
	"github.com/1013vishalsharma/payment-api/internal/strategy"
)

func newPaymentService() PaymentService {
	registry := strategy.NewRegistry(strategy.NewCreditCardStrategy(), strategy.NewPayPalStrategy())
	return NewPaymentService(repository.NewMemoryTransactionRepository(), registry)
}

var testUser = &domain.User{ID: "user-1", Name: "Test User", Email: "a@b.com"}

func TestPaymentService_MakePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("records a successful transaction", func(t *testing.T) {
		svc := newPaymentService()
		txn, err := svc.MakePayment(ctx, testUser, &dto.PaymentRequest{
			Amount:        100.00,
			PaymentMethod: domain.PaymentMethodCreditCard,
			Currency:      domain.CurrencyUSD,
		})
		if err != nil {
			t.Fatalf("MakePayment() error = %v", err)
		}
		if txn.ID == "" {
			t.Error("MakePayment() transaction ID is empty")
		}
		if txn.Status != domain.PaymentStatusSuccess {
			t.Errorf("MakePayment() status = %s, want SUCCESS", txn.Status)
		}
		if txn.UserID != testUser.ID {
			t.Errorf("MakePayment() user ID = %q, want %q", txn.UserID, testUser.ID)
		}
	})

	t.Run("rejects unsupported payment method", func(t *testing.T) {
		svc := newPaymentService()
		_, err := svc.MakePayment(ctx, testUser, &dto.PaymentRequest{
			Amount:        100.00,
			PaymentMethod: "BANK_TRANSFER",
			Currency:      domain.CurrencyUSD,
		})
		if !errors.Is(err, domain.ErrUnsupportedMethod) {
			t.Errorf("MakePayment() error = %v, want ErrUnsupportedMethod", err)
		}
	})
}

func TestPaymentService_FetchTransactions(t *testing.T) {
	ctx := context.Background()
	svc := newPaymentService()

	t.Run("empty history for a fresh user", func(t *testing.T) {
		txns, err := svc.FetchTransactions(ctx, testUser)
		if err != nil {
			t.Fatalf("FetchTransactions() error = %v", err)
		}
		if len(txns) != 0 {
			t.Errorf("FetchTransactions() returned %d transactions, want 0", len(txns))
		}
	})

	t.Run("only the user's own transactions", func(t *testing.T) {
		other := &domain.User{ID: "user-2", Email: "c@d.com"}
		req := &dto.PaymentRequest{
			Amount:        50.00,
			PaymentMethod: domain.PaymentMethodPayPal,
			Currency:      domain.CurrencyEUR,
		}
		for _, u := range []*domain.User{testUser, testUser, other} {
			if _, err := svc.MakePayment(ctx, u, req); err != nil {
				t.Fatalf("MakePayment() error = %v", err)
			}
		}

		txns, err := svc.FetchTransactions(ctx, testUser)
		if err != nil {
			t.Fatalf("FetchTransactions() error = %v", err)
		}
		if len(txns) != 2 {
			t.Fatalf("FetchTransactions() returned %d transactions, want 2", len(txns))
		}
		for _, txn := range txns {
			if txn.UserID != testUser.ID {
				t.Errorf("FetchTransactions() leaked transaction for user %q", txn.UserID)
			}
		}
	})
}

func TestPaymentService_FetchTransactionStatus(t *testing.T) {
	ctx := context.Background()
	svc := newPaymentService()

	txn, err := svc.MakePayment(ctx, testUser, &dto.PaymentRequest{
		Amount:        100.00,
		PaymentMethod: domain.PaymentMethodCreditCard,
		Currency:      domain.CurrencyUSD,
	})
	if err != nil {
		t.Fatalf("MakePayment() error = %v", err)
	}

	t.Run("reports SUCCESS before refund", func(t *testing.T) {
		status, err := svc.FetchTransactionStatus(ctx, txn.ID)
		if err != nil {
			t.Fatalf("FetchTransactionStatus() error = %v", err)
		}
		if status != domain.PaymentStatusSuccess {
			t.Errorf("FetchTransactionStatus() = %s, want SUCCESS", status)
		}
	})

	t.Run("reports REFUNDED after refund", func(t *testing.T) {
		if _, err := svc.RefundTransaction(ctx, txn.ID); err != nil {
			t.Fatalf("RefundTransaction() error = %v", err)
		}
		status, err := svc.FetchTransactionStatus(ctx, txn.ID)
		if err != nil {
			t.Fatalf("FetchTransactionStatus() error = %v", err)
		}
		if status != domain.PaymentStatusRefunded {
			t.Errorf("FetchTransactionStatus() = %s, want REFUNDED", status)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := svc.FetchTransactionStatus(ctx, "missing"); !errors.Is(err, domain.ErrTransactionNotFound) {
			t.Errorf("FetchTransactionStatus() error = %v, want ErrTransactionNotFound", err)
		}
	})
}

func TestPaymentService_RefundTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("refunds exactly once", func(t *testing.T) {
		svc := newPaymentService()
		txn, err := svc.MakePayment(ctx, testUser, &dto.PaymentRequest{
			Amount:        100.00,
			PaymentMethod: domain.PaymentMethodCreditCard,
			Currency:      domain.CurrencyUSD,
		})
		if err != nil {
			t.Fatalf("MakePayment() error = %v", err)
		}

		refunded, err := svc.RefundTransaction(ctx, txn.ID)
		if err != nil {
			t.Fatalf("RefundTransaction() error = %v", err)
		}
		if refunded.Status != domain.PaymentStatusRefunded {
			t.Errorf("RefundTransaction() status = %s, want REFUNDED", refunded.Status)
		}

		if _, err := svc.RefundTransaction(ctx, txn.ID); !errors.Is(err, domain.ErrAlreadyRefunded) {
			t.Errorf("second RefundTransaction() error = %v, want ErrAlreadyRefunded", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := newPaymentService()
		if _, err := svc.RefundTransaction(ctx, "missing"); !errors.Is(err, domain.ErrTransactionNotFound) {
			t.Errorf("RefundTransaction() error = %v, want ErrTransactionNotFound", err)
		}
	})

	t.Run("concurrent refunds yield one success and one already-refunded", func(t *testing.T) {
		svc := newPaymentService()
		txn, err := svc.MakePayment(ctx, testUser, &dto.PaymentRequest{
			Amount:        100.00,
			PaymentMethod: domain.PaymentMethodCreditCard,
			Currency:      domain.CurrencyUSD,
		})
		if err != nil {
			t.Fatalf("MakePayment() error = %v", err)
		}

		results := make(chan error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.RefundTransaction(ctx, txn.ID)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var wins, alreadyRefunded int
		for err := range results {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, domain.ErrAlreadyRefunded):
				alreadyRefunded++
			default:
				t.Errorf("RefundTransaction() unexpected error = %v", err)
			}
		}
		if wins != 1 || alreadyRefunded != 1 {
			t.Errorf("RefundTransaction() wins = %d, already-refunded = %d, want 1 and 1", wins, alreadyRefunded)
		}
	})
}
