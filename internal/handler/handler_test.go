package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/1013vishalsharma/payment-api/internal/auth"
	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/internal/middleware"
	"github.com/1013vishalsharma/payment-api/internal/repository"
	"github.com/1013vishalsharma/payment-api/internal/service"
	"github.com/1013vishalsharma/payment-api/internal/strategy"
	"github.com/1013vishalsharma/payment-api/internal/token"
	"github.com/1013vishalsharma/payment-api/pkg/response"
	"github.com/gin-gonic/gin"
)

// newTestAPI wires the full HTTP surface over in-memory repositories
func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := token.NewService([]byte("test-secret-key"), token.DefaultTTL)
	userService := service.NewUserService(repository.NewMemoryUserRepository(), tokens)
	paymentService := service.NewPaymentService(
		repository.NewMemoryTransactionRepository(),
		strategy.NewRegistry(strategy.NewCreditCardStrategy(), strategy.NewPayPalStrategy()),
	)

	registry := auth.NewRegistry()
	registry.Register(auth.CredentialKindBearer, auth.NewBearerProvider(tokens, userService))

	userHandler := NewUserHandler(userService)
	paymentHandler := NewPaymentHandler(paymentService)

	router := gin.New()
	users := router.Group("/api/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
	}

	payments := router.Group("/api/payments")
	payments.Use(middleware.Authentication(registry))
	{
		payments.POST("", paymentHandler.MakePayment)
		payments.GET("/history", paymentHandler.TransactionHistory)
		payments.GET("/:id/status", paymentHandler.TransactionStatus)
		payments.POST("/:id/refund", paymentHandler.Refund)
	}

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates a user and returns a live token for it
func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/users/register",
		`{"name":"Test User","email":"`+email+`","password":"secret"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/users/login",
		`{"email":"`+email+`","password":"secret"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal login body: %v", err)
	}
	if body.Token == "" {
		t.Fatal("login returned empty token")
	}
	return body.Token
}

func TestUserEndpoints(t *testing.T) {
	t.Run("register returns 201", func(t *testing.T) {
		router := newTestAPI(t)
		rec := doJSON(t, router, http.MethodPost, "/api/users/register",
			`{"name":"Test User","email":"a@b.com","password":"secret"}`, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("register rejects invalid email", func(t *testing.T) {
		router := newTestAPI(t)
		rec := doJSON(t, router, http.MethodPost, "/api/users/register",
			`{"name":"Test User","email":"not-an-email","password":"secret"}`, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}

		var body response.ErrorDetails
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal error body: %v", err)
		}
		if body.Message != "Please enter a valid email" {
			t.Errorf("message = %q", body.Message)
		}
	})

	t.Run("login with wrong password returns 401", func(t *testing.T) {
		router := newTestAPI(t)
		registerAndLogin(t, router, "a@b.com")

		rec := doJSON(t, router, http.MethodPost, "/api/users/login",
			`{"email":"a@b.com","password":"wrong"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("login for unknown user returns 404", func(t *testing.T) {
		router := newTestAPI(t)
		rec := doJSON(t, router, http.MethodPost, "/api/users/login",
			`{"email":"nobody@b.com","password":"secret"}`, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestPaymentFlow(t *testing.T) {
	router := newTestAPI(t)
	bearer := registerAndLogin(t, router, "a@b.com")

	t.Run("payment succeeds with a live token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/payments",
			`{"paymentAmount":100.00,"paymentMethod":"CREDIT_CARD","currency":"USD"}`, bearer)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var txn domain.Transaction
		if err := json.Unmarshal(rec.Body.Bytes(), &txn); err != nil {
			t.Fatalf("unmarshal transaction: %v", err)
		}
		if txn.ID == "" {
			t.Error("transaction ID is empty")
		}
		if txn.Status != domain.PaymentStatusSuccess {
			t.Errorf("status = %s, want SUCCESS", txn.Status)
		}
		if txn.Amount != 100.00 {
			t.Errorf("amount = %v, want 100.00", txn.Amount)
		}
	})

	t.Run("history lists the recorded transaction", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/payments/history", "", bearer)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var txns []domain.Transaction
		if err := json.Unmarshal(rec.Body.Bytes(), &txns); err != nil {
			t.Fatalf("unmarshal history: %v", err)
		}
		if len(txns) != 1 {
			t.Fatalf("history length = %d, want 1", len(txns))
		}
	})

	t.Run("payment rejects non-positive amount", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/payments",
			`{"paymentAmount":0,"paymentMethod":"CREDIT_CARD","currency":"USD"}`, bearer)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}

		var body response.ErrorDetails
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal error body: %v", err)
		}
		if !strings.Contains(body.Message, "Payment amount should be greater than 0.0") {
			t.Errorf("message = %q", body.Message)
		}
	})

	t.Run("payment without token returns 401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/payments",
			`{"paymentAmount":100.00,"paymentMethod":"CREDIT_CARD","currency":"USD"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}

		var body response.ErrorDetails
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal error body: %v", err)
		}
		if body.Message != domain.ErrCredentialMissing.Error() {
			t.Errorf("message = %q", body.Message)
		}
	})
}

func TestRefundFlow(t *testing.T) {
	router := newTestAPI(t)
	bearer := registerAndLogin(t, router, "a@b.com")

	rec := doJSON(t, router, http.MethodPost, "/api/payments",
		`{"paymentAmount":50.00,"paymentMethod":"PAY_PAL","currency":"EUR"}`, bearer)
	if rec.Code != http.StatusOK {
		t.Fatalf("payment status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var txn domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &txn); err != nil {
		t.Fatalf("unmarshal transaction: %v", err)
	}

	t.Run("status reports SUCCESS", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/payments/"+txn.ID+"/status", "", bearer)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if got := strings.Trim(rec.Body.String(), `"`); got != string(domain.PaymentStatusSuccess) {
			t.Errorf("body = %q, want SUCCESS", got)
		}
	})

	t.Run("refund succeeds once", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/payments/"+txn.ID+"/refund", "", bearer)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var refunded domain.Transaction
		if err := json.Unmarshal(rec.Body.Bytes(), &refunded); err != nil {
			t.Fatalf("unmarshal refund body: %v", err)
		}
		if refunded.Status != domain.PaymentStatusRefunded {
			t.Errorf("status = %s, want REFUNDED", refunded.Status)
		}
	})

	t.Run("repeat refund returns 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/payments/"+txn.ID+"/refund", "", bearer)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("status reports REFUNDED after refund", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/payments/"+txn.ID+"/status", "", bearer)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if got := strings.Trim(rec.Body.String(), `"`); got != string(domain.PaymentStatusRefunded) {
			t.Errorf("body = %q, want REFUNDED", got)
		}
	})

	t.Run("refund of unknown transaction returns 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/payments/missing/refund", "", bearer)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("health is always ok", func(t *testing.T) {
		h := NewHealthHandler("payment-api", nil)
		router := gin.New()
		router.GET("/health", h.Health)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("ready fails when a dependency is down", func(t *testing.T) {
		h := NewHealthHandler("payment-api", map[string]HealthChecker{
			"postgres": func(ctx context.Context) error { return context.DeadlineExceeded },
		})
		router := gin.New()
		router.GET("/ready", h.Ready)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
	})
}
