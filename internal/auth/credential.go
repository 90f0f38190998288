package auth

import "github.com/1013vishalsharma/payment-api/internal/domain"

// CredentialKind tags the closed set of credential variants the gate
// understands. New authentication schemes add a kind and register a
// provider; nothing dispatches on runtime types.
type CredentialKind string

const (
	// CredentialKindBearer is a bearer token from the Authorization header
	CredentialKindBearer CredentialKind = "bearer"
)

// Credential is a raw, unverified credential extracted from a request
type Credential struct {
	Kind CredentialKind
	Raw  string
}

// Principal is the request-scoped authentication state. It is created by
// the gate per request and is never persisted.
type Principal struct {
	Credential    Credential
	User          *domain.User
	Authenticated bool
}

// NewBearerPrincipal builds an unauthenticated principal around a raw
// bearer token.
func NewBearerPrincipal(raw string) *Principal {
	return &Principal{
		Credential: Credential{Kind: CredentialKindBearer, Raw: raw},
	}
}
