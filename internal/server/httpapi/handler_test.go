package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reacademix/authd/internal/common"
	"github.com/reacademix/authd/internal/logging"
	"github.com/reacademix/authd/internal/server/auth"
	"github.com/reacademix/authd/internal/server/services"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeAuthenticator struct {
	result *services.LoginResult
	err    error

	lastEmail    string
	lastPassword string
}

func (f *fakeAuthenticator) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	f.lastEmail = email
	f.lastPassword = password
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestServer(t *testing.T, a Authenticator) *HTTPServer {
	t.Helper()
	codec, err := auth.NewTokenCodec(testSecret, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewHTTPServer(":0", logger, a, codec)
}

func doRequest(t *testing.T, s *HTTPServer, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code string, fields []map[string]string) {
	t.Helper()
	var body struct {
		Success bool                `json:"success"`
		Code    string              `json:"code"`
		Errors  []map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v\n%s", err, rec.Body.String())
	}
	if body.Success {
		t.Fatalf("error response has success=true: %s", rec.Body.String())
	}
	return body.Code, body.Errors
}

func TestHandleLogin_Success(t *testing.T) {
	fake := &fakeAuthenticator{
		result: &services.LoginResult{
			Token:     "signed-token",
			TokenType: "Bearer",
			ExpiresIn: 86400,
			User:      services.UserSummary{ID: 1, Email: "test@academy.com", Name: "Test User"},
		},
	}
	s := newTestServer(t, fake)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/auth/login",
		`{"email":"TEST@ACADEMY.COM","password":"SecurePass123!"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Token     string `json:"token"`
			TokenType string `json:"tokenType"`
			ExpiresIn int64  `json:"expiresIn"`
			User      struct {
				UserID int64  `json:"userId"`
				Email  string `json:"email"`
				Name   string `json:"name"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
	if body.Data.Token != "signed-token" || body.Data.TokenType != "Bearer" || body.Data.ExpiresIn != 86400 {
		t.Fatalf("unexpected payload: %+v", body.Data)
	}
	if body.Data.User.UserID != 1 || body.Data.User.Name != "Test User" {
		t.Fatalf("unexpected user info: %+v", body.Data.User)
	}

	// raw credentials are passed through untouched; normalization is the
	// service's job
	if fake.lastEmail != "TEST@ACADEMY.COM" || fake.lastPassword != "SecurePass123!" {
		t.Fatalf("credentials altered at the boundary: %q / %q", fake.lastEmail, fake.lastPassword)
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{err: common.ErrInvalidCredentials})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/auth/login",
		`{"email":"test@academy.com","password":"WrongPassword!"}`, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "AUTH_002" {
		t.Fatalf("code = %q, want AUTH_002", code)
	}
}

func TestHandleLogin_AccountDisabled(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{err: common.ErrAccountDisabled})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/auth/login",
		`{"email":"test@academy.com","password":"SecurePass123!"}`, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "AUTH_004" {
		t.Fatalf("code = %q, want AUTH_004", code)
	}
}

func TestHandleLogin_InternalErrorLeaksNoDetail(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{err: common.ErrorInternal})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/auth/login",
		`{"email":"test@academy.com","password":"SecurePass123!"}`, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	code, _ := decodeError(t, rec)
	if code != "SYSTEM_001" {
		t.Fatalf("code = %q, want SYSTEM_001", code)
	}
	if strings.Contains(rec.Body.String(), "internal error detail") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestHandleLogin_TokenGenerationFailure(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{err: common.ErrTokenGeneration})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/auth/login",
		`{"email":"test@academy.com","password":"SecurePass123!"}`, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "SYSTEM_003" {
		t.Fatalf("code = %q, want SYSTEM_003", code)
	}
}

func TestHandleLogin_ValidationFailure(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/auth/login",
		`{"email":"not-an-email","password":"short"}`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	code, fields := decodeError(t, rec)
	if code != "VALIDATION_001" {
		t.Fatalf("code = %q, want VALIDATION_001", code)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 field violations, got %v", fields)
	}
}

func TestHandleLogin_MalformedJSON(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/auth/login", `{oops`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleMe_ValidToken(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{})

	tok, err := s.codec.Issue(7, "test@academy.com", "ADMIN", time.Now())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/v1/auth/me", "",
		http.Header{"Authorization": []string{"Bearer " + tok}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			UserID int64  `json:"userId"`
			Email  string `json:"email"`
			Role   string `json:"role"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Data.UserID != 7 || body.Data.Email != "test@academy.com" || body.Data.Role != "ADMIN" {
		t.Fatalf("unexpected claims: %+v", body.Data)
	}
}

func TestHandleMe_ExpiredToken(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{})

	tok, err := s.codec.Issue(7, "test@academy.com", "STANDARD", time.Now().Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/v1/auth/me", "",
		http.Header{"Authorization": []string{"Bearer " + tok}})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "AUTH_005" {
		t.Fatalf("code = %q, want AUTH_005", code)
	}
}

func TestHandleMe_TamperedToken(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{})

	tok, err := s.codec.Issue(7, "test@academy.com", "STANDARD", time.Now())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	tampered := tok + "x"

	rec := doRequest(t, s, http.MethodGet, "/api/v1/auth/me", "",
		http.Header{"Authorization": []string{"Bearer " + tampered}})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "AUTH_006" {
		t.Fatalf("code = %q, want AUTH_006", code)
	}
}

func TestHandleMe_MissingHeader(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/auth/me", "", nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "AUTH_001" {
		t.Fatalf("code = %q, want AUTH_001", code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &fakeAuthenticator{})

	rec := doRequest(t, s, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
