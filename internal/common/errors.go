// Package common defines sentinel errors shared across layers of the
// roleplay API. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Infrastructure errors. A cache or store being unreachable is not the
	// same thing as a miss and must never be masked as one.
	ErrorUnavailable = errors.New("unavailable")

	// Auth errors (invalid, revoked or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
