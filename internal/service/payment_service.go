package service

import (
	"context"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/internal/dto"
	"github.com/1013vishalsharma/payment-api/internal/repository"
	"github.com/1013vishalsharma/payment-api/internal/strategy"
	"github.com/1013vishalsharma/payment-api/pkg/logger"
	"github.com/1013vishalsharma/payment-api/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// PaymentService defines the interface for payment operations
type PaymentService interface {
	// MakePayment processes a payment for the user and records the
	// resulting transaction
	MakePayment(ctx context.Context, user *domain.User, req *dto.PaymentRequest) (*domain.Transaction, error)
	// FetchTransactions retrieves the user's transaction history,
	// newest first
	FetchTransactions(ctx context.Context, user *domain.User) ([]*domain.Transaction, error)
	// FetchTransactionStatus retrieves the lifecycle status of a
	// transaction
	FetchTransactionStatus(ctx context.Context, id string) (domain.PaymentStatus, error)
	// RefundTransaction refunds a transaction exactly once
	RefundTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

// paymentService implements PaymentService
type paymentService struct {
	txnRepo    repository.TransactionRepository
	strategies *strategy.Registry
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(txnRepo repository.TransactionRepository, strategies *strategy.Registry) PaymentService {
	return &paymentService{
		txnRepo:    txnRepo,
		strategies: strategies,
	}
}

// MakePayment processes a payment via the strategy registered for the
// requested method and records the resulting transaction.
func (s *paymentService) MakePayment(ctx context.Context, user *domain.User, req *dto.PaymentRequest) (*domain.Transaction, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.make_payment")
	defer span.End()

	span.SetAttributes(
		attribute.String("payment.method", string(req.PaymentMethod)),
		attribute.Float64("payment.amount", req.Amount),
	)
	logger.Get().Info("Processing payment",
		zap.String("method", string(req.PaymentMethod)),
		zap.Float64("amount", req.Amount),
		zap.String("user_id", user.ID))

	processor, ok := s.strategies.Resolve(req.PaymentMethod)
	if !ok {
		span.SetStatus(codes.Error, "unsupported payment method")
		return nil, domain.ErrUnsupportedMethod
	}

	txn := processor.Process(*req)
	txn.UserID = user.ID

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("transaction.id", txn.ID))
	return txn, nil
}

// FetchTransactions retrieves the user's transaction history
func (s *paymentService) FetchTransactions(ctx context.Context, user *domain.User) ([]*domain.Transaction, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.fetch_transactions")
	defer span.End()

	span.SetAttributes(attribute.String("user.id", user.ID))

	txns, err := s.txnRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return txns, nil
}

// FetchTransactionStatus retrieves the lifecycle status of a transaction
func (s *paymentService) FetchTransactionStatus(ctx context.Context, id string) (domain.PaymentStatus, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.fetch_status")
	defer span.End()

	span.SetAttributes(attribute.String("transaction.id", id))

	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return txn.Status, nil
}

// RefundTransaction refunds a transaction. The repository performs the
// status transition atomically, so repeated or concurrent refunds of
// the same transaction yield exactly one success.
func (s *paymentService) RefundTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.refund")
	defer span.End()

	span.SetAttributes(attribute.String("transaction.id", id))
	logger.Get().Info("Refunding transaction", zap.String("transaction_id", id))

	txn, err := s.txnRepo.MarkRefunded(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return txn, nil
}
