package token

import (
	"time"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Subject is the fixed subject claim stamped on every issued token
const Subject = "payment-login"

// DefaultTTL is the lifetime of an issued token
const DefaultTTL = 30 * time.Minute

// Service issues and verifies signed identity tokens. The signing key is
// explicit, injected configuration: all tokens become unverifiable when
// the key changes, so rotation doubles as a global logout.
type Service struct {
	secret []byte
	ttl    time.Duration

	// now is swapped out in tests
	now func() time.Time
}

// NewService creates a token service signing with the given secret
func NewService(secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate builds a signed token carrying the name and email claims,
// issued now and expiring after the configured TTL.
func (s *Service) Generate(name, email string) (string, error) {
	log := logger.Get()
	log.Info("Generating JWT token", zap.String("email", email))

	now := s.now()
	claims := jwt.MapClaims{
		"name":  name,
		"email": email,
		"sub":   Subject,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Error("Error encountered while generating JWT", zap.Error(err))
		return "", domain.ErrTokenGeneration
	}
	return signed, nil
}

// Claims parses and verifies the token, returning its claims.
// Expired tokens still verify here; liveness is a separate check so the
// caller can distinguish a stale token from a forged one.
func (s *Service) Claims(tokenString string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		logger.Get().Error("Encountered JWT error", zap.Error(err))
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// EmailClaim extracts the email claim from the token
func (s *Service) EmailClaim(tokenString string) (string, error) {
	claims, err := s.Claims(tokenString)
	if err != nil {
		return "", err
	}
	email, ok := claims["email"].(string)
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return email, nil
}

// IsLive reports whether the token's expiry is strictly after now.
// Claim extraction failures propagate as ErrTokenInvalid.
func (s *Service) IsLive(tokenString string) (bool, error) {
	claims, err := s.Claims(tokenString)
	if err != nil {
		return false, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, domain.ErrTokenInvalid
	}
	return exp.After(s.now()), nil
}
