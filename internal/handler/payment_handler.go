package handler

import (
	"errors"
	"net/http"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/internal/dto"
	"github.com/1013vishalsharma/payment-api/internal/middleware"
	"github.com/1013vishalsharma/payment-api/internal/service"
	"github.com/1013vishalsharma/payment-api/pkg/response"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment HTTP requests. All routes sit behind
// the authentication gate, so the current user is always present.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// MakePayment handles payment execution
// POST /api/payments
func (h *PaymentHandler) MakePayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, domain.ErrNotAuthenticated.Error())
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, dto.ValidationMessage(err))
		return
	}

	txn, err := h.paymentService.MakePayment(c.Request.Context(), user, &req)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedMethod) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

// TransactionHistory returns the user's transactions, newest first
// GET /api/payments/history
func (h *PaymentHandler) TransactionHistory(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, domain.ErrNotAuthenticated.Error())
		return
	}

	txns, err := h.paymentService.FetchTransactions(c.Request.Context(), user)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, txns)
}

// TransactionStatus returns the lifecycle status of a transaction
// GET /api/payments/:id/status
func (h *PaymentHandler) TransactionStatus(c *gin.Context) {
	status, err := h.paymentService.FetchTransactionStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Refund refunds a transaction exactly once
// POST /api/payments/:id/refund
func (h *PaymentHandler) Refund(c *gin.Context) {
	txn, err := h.paymentService.RefundTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, domain.ErrAlreadyRefunded):
			// A repeat refund is reported like a missing transaction:
			// the refundable transaction no longer exists.
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, txn)
}
