package dto

import (
	"errors"
	"strings"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/go-playground/validator/v10"
)

// PaymentRequest is the body for POST /api/payments
type PaymentRequest struct {
	Amount        float64              `json:"paymentAmount" binding:"required,gt=0"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required"`
	Currency      domain.Currency      `json:"currency" binding:"required"`
}

// fieldMessages maps struct field + failed rule to the message surfaced
// to the caller. Unknown combinations fall back to a generic message.
var fieldMessages = map[string]string{
	"Amount.required":        "Payment amount should be greater than 0.0",
	"Amount.gt":              "Payment amount should be greater than 0.0",
	"PaymentMethod.required": "Payment method cannot be blank",
	"Currency.required":      "Currency is mandatory",
	"Name.required":          "Name cannot be null or empty",
	"Email.required":         "email cannot be null or empty",
	"Email.email":            "Please enter a valid email",
	"Password.required":      "Password cannot be blank",
}

// ValidationMessage flattens a binding error into a single message with
// individual field errors joined by ", ".
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
			messages = append(messages, msg)
			continue
		}
		messages = append(messages, fe.Field()+" is not valid")
	}
	return strings.Join(messages, ", ")
}
