// Package common defines shared constants and sentinel errors used across
// the server and the operator CLI. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Token verification errors.
	ErrMissingCredential = errors.New("missing credential")
	ErrMalformedToken    = errors.New("malformed token")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenTypeMismatch = errors.New("unexpected token type")

	// Ownership lookup errors.
	ErrResourceNotFound = errors.New("resource not found")
	ErrPersistence      = errors.New("persistence error")

	// ErrConfiguration signals a missing or unusable secret or setting.
	ErrConfiguration = errors.New("configuration error")
)
