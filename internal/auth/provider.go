package auth

import (
	"context"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/pkg/logger"
	"go.uber.org/zap"
)

// UserFinder resolves a user by email. Implemented by the user service.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenVerifier is the subset of the token service the bearer provider
// needs.
type TokenVerifier interface {
	EmailClaim(token string) (string, error)
	IsLive(token string) (bool, error)
}

// Provider authenticates a principal of the kind it is registered for.
// A provider returns the principal unchanged (still unauthenticated)
// when the credential verifies structurally but is no longer acceptable,
// e.g. an expired token; the gate treats that as an authentication
// failure.
type Provider interface {
	Authenticate(ctx context.Context, principal *Principal) (*Principal, error)
}

// Registry dispatches principals to providers by credential kind.
// It is built once at startup and read-only thereafter.
type Registry struct {
	providers map[CredentialKind]Provider
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[CredentialKind]Provider)}
}

// Register installs a provider for a credential kind
func (r *Registry) Register(kind CredentialKind, p Provider) {
	r.providers[kind] = p
}

// Authenticate dispatches the principal to the provider registered for
// its credential kind. A principal that comes back unauthenticated is an
// authentication failure.
func (r *Registry) Authenticate(ctx context.Context, principal *Principal) (*Principal, error) {
	provider, ok := r.providers[principal.Credential.Kind]
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}

	resolved, err := provider.Authenticate(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !resolved.Authenticated {
		return nil, domain.ErrNotAuthenticated
	}
	return resolved, nil
}

// BearerProvider authenticates bearer token principals against the
// token service and the user store.
type BearerProvider struct {
	tokens TokenVerifier
	users  UserFinder
}

// NewBearerProvider creates a provider for bearer token credentials
func NewBearerProvider(tokens TokenVerifier, users UserFinder) *BearerProvider {
	return &BearerProvider{tokens: tokens, users: users}
}

// Authenticate resolves the token's email claim to a user and checks the
// token is still live. Already-authenticated principals pass through
// unchanged, which keeps re-entry idempotent.
func (p *BearerProvider) Authenticate(ctx context.Context, principal *Principal) (*Principal, error) {
	log := logger.Get()
	log.Info("Performing bearer token authentication")

	if principal.Authenticated {
		return principal, nil
	}

	raw := principal.Credential.Raw
	email, err := p.tokens.EmailClaim(raw)
	if err != nil {
		return nil, err
	}

	user, err := p.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	live, err := p.tokens.IsLive(raw)
	if err != nil {
		return nil, err
	}
	if !live {
		log.Error("Bearer token is no longer live", zap.String("email", email))
		return principal, nil
	}

	principal.User = user
	principal.Authenticated = true
	return principal, nil
}
