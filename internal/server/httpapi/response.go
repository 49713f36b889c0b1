package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reacademix/authd/internal/common"
)

// Stable machine-readable error codes. Clients switch on the code; the
// message is advisory. AUTH_003 (password mismatch) is deliberately never
// emitted: the service reports unknown email and wrong password as one
// indistinguishable credential failure.
const (
	codeAuthRequired       = "AUTH_001"
	codeInvalidCredentials = "AUTH_002"
	codeAccountDisabled    = "AUTH_004"
	codeTokenExpired       = "AUTH_005"
	codeTokenInvalid       = "AUTH_006"
	codeValidationFailed   = "VALIDATION_001"
	codeInternalError      = "SYSTEM_001"
	codeTokenGeneration    = "SYSTEM_003"
)

// apiResponse is the standard success envelope.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type fieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse is the standard failure envelope.
type errorResponse struct {
	Success bool             `json:"success"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Errors  []fieldViolation `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Success: false, Code: code, Message: message})
}

func writeValidationError(w http.ResponseWriter, violations []fieldViolation) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Success: false,
		Code:    codeValidationFailed,
		Message: "request validation failed",
		Errors:  violations,
	})
}

// writeAuthError maps the sentinel errors of the authentication core to a
// transport status and a stable code. Anything unclassified becomes a
// generic internal error; raw error text never crosses the boundary.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "invalid email or password")
	case errors.Is(err, common.ErrAccountDisabled):
		writeError(w, http.StatusUnauthorized, codeAccountDisabled, "account is disabled")
	case errors.Is(err, common.ErrTokenGeneration):
		writeError(w, http.StatusInternalServerError, codeTokenGeneration, "could not complete login")
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
