package strategy

import (
	"time"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/internal/dto"
	"github.com/1013vishalsharma/payment-api/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreditCardStrategy simulates processing a payment through a credit
// card gateway.
type CreditCardStrategy struct{}

// NewCreditCardStrategy creates the credit card processing strategy
func NewCreditCardStrategy() *CreditCardStrategy {
	return &CreditCardStrategy{}
}

func (s *CreditCardStrategy) Method() domain.PaymentMethod {
	return domain.PaymentMethodCreditCard
}

// Process settles the payment and records a successful transaction
func (s *CreditCardStrategy) Process(req dto.PaymentRequest) *domain.Transaction {
	logger.Get().Info("Processing payment via credit card",
		zap.Float64("amount", req.Amount),
		zap.String("currency", string(req.Currency)))

	return &domain.Transaction{
		ID:            uuid.New().String(),
		Amount:        req.Amount,
		PaymentMethod: domain.PaymentMethodCreditCard,
		Currency:      req.Currency,
		Status:        domain.PaymentStatusSuccess,
		Timestamp:     time.Now(),
	}
}
