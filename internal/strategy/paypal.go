package strategy

import (
	"time"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/internal/dto"
	"github.com/1013vishalsharma/payment-api/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayPalStrategy simulates processing a payment through PayPal.
type PayPalStrategy struct{}

// NewPayPalStrategy creates the PayPal processing strategy
func NewPayPalStrategy() *PayPalStrategy {
	return &PayPalStrategy{}
}

func (s *PayPalStrategy) Method() domain.PaymentMethod {
	return domain.PaymentMethodPayPal
}

// Process settles the payment and records a successful transaction
func (s *PayPalStrategy) Process(req dto.PaymentRequest) *domain.Transaction {
	logger.Get().Info("Processing payment via PayPal",
		zap.Float64("amount", req.Amount),
		zap.String("currency", string(req.Currency)))

	return &domain.Transaction{
		ID:            uuid.New().String(),
		Amount:        req.Amount,
		PaymentMethod: domain.PaymentMethodPayPal,
		Currency:      req.Currency,
		Status:        domain.PaymentStatusSuccess,
		Timestamp:     time.Now(),
	}
}
