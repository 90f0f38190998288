package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/1013vishalsharma/payment-api/internal/domain"
)

func newTestService() *Service {
	return NewService([]byte("test-secret-key"), DefaultTTL)
}

func TestService_Generate(t *testing.T) {
	svc := newTestService()

	t.Run("round-trips the email claim", func(t *testing.T) {
		tokenString, err := svc.Generate("Test User", "a@b.com")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if tokenString == "" {
			t.Fatal("Generate() returned empty token")
		}

		email, err := svc.EmailClaim(tokenString)
		if err != nil {
			t.Fatalf("EmailClaim() error = %v", err)
		}
		if email != "a@b.com" {
			t.Errorf("EmailClaim() = %q, want %q", email, "a@b.com")
		}
	})

	t.Run("stamps the fixed subject claim", func(t *testing.T) {
		tokenString, err := svc.Generate("Test User", "a@b.com")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		claims, err := svc.Claims(tokenString)
		if err != nil {
			t.Fatalf("Claims() error = %v", err)
		}
		if sub, _ := claims["sub"].(string); sub != Subject {
			t.Errorf("subject claim = %q, want %q", sub, Subject)
		}
	})
}

func TestService_Claims(t *testing.T) {
	svc := newTestService()

	t.Run("rejects malformed token", func(t *testing.T) {
		if _, err := svc.Claims("not-a-jwt"); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Claims() error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("rejects tampered signature", func(t *testing.T) {
		tokenString, err := svc.Generate("Test User", "a@b.com")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		parts := strings.Split(tokenString, ".")
		tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
		if _, err := svc.Claims(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Claims() error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("rejects token signed with a different key", func(t *testing.T) {
		other := NewService([]byte("another-secret"), DefaultTTL)
		tokenString, err := other.Generate("Test User", "a@b.com")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if _, err := svc.Claims(tokenString); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Claims() error = %v, want ErrTokenInvalid", err)
		}
	})
}

func TestService_IsLive(t *testing.T) {
	t.Run("live immediately after issuance", func(t *testing.T) {
		svc := newTestService()
		tokenString, err := svc.Generate("Test User", "a@b.com")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		live, err := svc.IsLive(tokenString)
		if err != nil {
			t.Fatalf("IsLive() error = %v", err)
		}
		if !live {
			t.Error("IsLive() = false immediately after issuance, want true")
		}
	})

	t.Run("stale once the TTL elapses", func(t *testing.T) {
		svc := newTestService()
		issuedAt := time.Now()
		svc.now = func() time.Time { return issuedAt }

		tokenString, err := svc.Generate("Test User", "a@b.com")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		// advance past the 30 minute lifetime
		svc.now = func() time.Time { return issuedAt.Add(DefaultTTL + time.Second) }

		live, err := svc.IsLive(tokenString)
		if err != nil {
			t.Fatalf("IsLive() error = %v", err)
		}
		if live {
			t.Error("IsLive() = true after expiry, want false")
		}
	})

	t.Run("propagates invalid token", func(t *testing.T) {
		svc := newTestService()
		if _, err := svc.IsLive("garbage"); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("IsLive() error = %v, want ErrTokenInvalid", err)
		}
	})
}
