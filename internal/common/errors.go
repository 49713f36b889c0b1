// Package common defines shared constants and sentinel errors used across
// authd components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Authentication outcomes. Unknown email and wrong password share one
	// value so the caller cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account disabled")

	// Token lifecycle errors. Expired and invalid are distinct kinds:
	// expired means the signature checked out but the expiry has passed,
	// invalid covers bad signatures and malformed tokens.
	ErrTokenExpired    = errors.New("token expired")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenGeneration = errors.New("token generation failed")
)
