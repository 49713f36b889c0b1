package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/reacademix/authd/internal/common"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userInfo struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type loginResponse struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	ExpiresIn int64    `json:"expiresIn"`
	User      userInfo `json:"user"`
}

type introspectResponse struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expiresAt"`
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "request body is not valid JSON")
		return
	}

	if violations := validateLoginRequest(req); len(violations) > 0 {
		s.logger.Warn(ctx, "login request failed validation", "violations", len(violations))
		writeValidationError(w, violations)
		return
	}

	result, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeSuccess(w, loginResponse{
		Token:     result.Token,
		TokenType: result.TokenType,
		ExpiresIn: result.ExpiresIn,
		User: userInfo{
			UserID: result.User.ID,
			Email:  result.User.Email,
			Name:   result.User.Name,
		},
	}, "login successful")
}

// handleMe validates the bearer token and returns its claims. Expired and
// invalid tokens map to distinct codes so clients know whether to refresh
// their session or to treat the token as corrupt.
func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeAuthRequired, "authorization required")
		return
	}

	claims, err := s.codec.ParseAndValidate(token, time.Now())
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			s.logger.Warn(ctx, "token rejected: expired")
			writeError(w, http.StatusUnauthorized, codeTokenExpired, "token has expired")
			return
		}
		s.logger.Warn(ctx, "token rejected: invalid")
		writeError(w, http.StatusUnauthorized, codeTokenInvalid, "token is invalid")
		return
	}

	id, err := claims.AccountID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, codeTokenInvalid, "token is invalid")
		return
	}

	writeSuccess(w, introspectResponse{
		UserID:    id,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, "")
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, nil, "OK")
}
