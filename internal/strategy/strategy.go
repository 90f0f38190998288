package strategy

import (
	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/internal/dto"
)

// Strategy processes a payment for one payment method and produces the
// resulting transaction. Implementations here simulate the gateway call;
// a real integration would slot in behind the same interface.
type Strategy interface {
	Method() domain.PaymentMethod
	Process(req dto.PaymentRequest) *domain.Transaction
}

// Registry maps payment methods to their processing strategies. The set
// of supported methods is fixed at construction, so resolution is a
// plain map lookup with no fallback path.
type Registry struct {
	strategies map[domain.PaymentMethod]Strategy
}

// NewRegistry builds a registry over the given strategies, keyed by the
// method each strategy reports.
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[domain.PaymentMethod]Strategy, len(strategies))}
	for _, s := range strategies {
		r.strategies[s.Method()] = s
	}
	return r
}

// Resolve returns the strategy for the given method, or false when the
// method is not supported.
func (r *Registry) Resolve(method domain.PaymentMethod) (Strategy, bool) {
	s, ok := r.strategies[method]
	return s, ok
}
