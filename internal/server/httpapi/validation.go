package httpapi

import (
	"net/mail"
	"strings"
)

const (
	maxEmailLen    = 255
	minPasswordLen = 8
	maxPasswordLen = 128
)

// validateLoginRequest checks the login payload before the authentication
// core is invoked and returns one violation per failed field. An empty
// result means the request may proceed.
func validateLoginRequest(req loginRequest) []fieldViolation {
	var violations []fieldViolation

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		violations = append(violations, fieldViolation{Field: "email", Message: "email is required"})
	case len(email) > maxEmailLen:
		violations = append(violations, fieldViolation{Field: "email", Message: "email must be at most 255 characters"})
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			violations = append(violations, fieldViolation{Field: "email", Message: "email format is invalid"})
		}
	}

	switch {
	case req.Password == "":
		violations = append(violations, fieldViolation{Field: "password", Message: "password is required"})
	case len(req.Password) < minPasswordLen || len(req.Password) > maxPasswordLen:
		violations = append(violations, fieldViolation{Field: "password", Message: "password must be between 8 and 128 characters"})
	}

	return violations
}
