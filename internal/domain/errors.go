package domain

import "errors"

var (
	// ErrUserNotFound is returned when no user exists for a lookup key
	ErrUserNotFound = errors.New("user does not exists in the system")
	// ErrUserAlreadyExists is returned when registering a duplicate email
	ErrUserAlreadyExists = errors.New("user already registered")
	// ErrBadCredentials is returned when login details do not match
	ErrBadCredentials = errors.New("login details are incorrect")

	// ErrTokenInvalid is returned when a token fails parsing or
	// signature verification
	ErrTokenInvalid = errors.New("JWT not valid")
	// ErrTokenGeneration is returned when signing a new token fails
	ErrTokenGeneration = errors.New("error encountered while generating JWT")
	// ErrCredentialMissing is returned when a protected request carries
	// no Authorization header
	ErrCredentialMissing = errors.New("auth token not present")
	// ErrNotAuthenticated is returned when a credential is well formed
	// but could not be authenticated (e.g. expired token)
	ErrNotAuthenticated = errors.New("request could not be authenticated")

	// ErrUnsupportedMethod is returned when no strategy is registered
	// for the requested payment method
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	// ErrTransactionNotFound is returned when a transaction lookup misses
	ErrTransactionNotFound = errors.New("transaction does not exists in the system")
	// ErrAlreadyRefunded is returned when refunding a transaction that
	// has already been refunded
	ErrAlreadyRefunded = errors.New("transaction is already refunded")
)
