package domain

import "time"

// PaymentStatus represents the lifecycle state of a transaction.
// The only transition is SUCCESS -> REFUNDED; REFUNDED is terminal.
type PaymentStatus string

const (
	PaymentStatusSuccess  PaymentStatus = "SUCCESS"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod represents the method used to execute a payment
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodPayPal     PaymentMethod = "PAY_PAL"
)

// Valid reports whether the method is one of the supported variants
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal:
		return true
	}
	return false
}

// Currency represents the currency a transaction is denominated in
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyINR Currency = "INR"
)

// Valid reports whether the currency is one of the supported variants
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyINR:
		return true
	}
	return false
}

// Transaction represents a recorded money movement. Transactions are
// created with status SUCCESS and are never deleted; a refund flips the
// status to REFUNDED exactly once.
type Transaction struct {
	ID            string        `json:"id"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Currency      Currency      `json:"currency"`
	UserID        string        `json:"userId"`
	Status        PaymentStatus `json:"status"`
	Timestamp     time.Time     `json:"transactionTimestamp"`
}

// Refundable reports whether the transaction can still be refunded
func (t *Transaction) Refundable() bool {
	return t.Status == PaymentStatusSuccess
}
