// Package services contains server-side business logic. This file
// implements AuthService, which authenticates email/password credentials
// and issues signed access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/reacademix/authd/internal/common"
	"github.com/reacademix/authd/internal/logging"
	"github.com/reacademix/authd/internal/server/models"
	"github.com/reacademix/authd/internal/server/repositories/repomanager"
)

// TokenTypeBearer is the token type marker returned alongside issued
// tokens.
const TokenTypeBearer = "Bearer"

// PasswordVerifier compares a plaintext password against a stored hash.
// A mismatch is a normal false result.
type PasswordVerifier interface {
	Verify(plaintext, storedHash string) bool
}

// TokenIssuer mints signed access tokens and reports their lifetime.
type TokenIssuer interface {
	Issue(accountID int64, email string, role string, now time.Time) (string, error)
	ExpiresInSeconds() int64
}

// UserSummary is the public-safe view of the authenticated account. Role
// and password hash are deliberately absent.
type UserSummary struct {
	ID    int64
	Email string
	Name  string
}

// LoginResult is the successful outcome of an authentication call.
type LoginResult struct {
	Token     string
	TokenType string
	ExpiresIn int64
	User      UserSummary
}

// AuthService runs the authentication pipeline: normalize, look up,
// gate on status, verify password, issue a token. Each call is stateless
// and idempotent; concurrent calls need no coordination.
type AuthService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	verifier PasswordVerifier
	issuer   TokenIssuer
	logger   logging.Logger
	now      func() time.Time
}

// NewAuthService constructs an AuthService around the account store, the
// password verifier, and the token issuer.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, v PasswordVerifier, i TokenIssuer, l logging.Logger) *AuthService {
	return &AuthService{
		db:       db,
		repos:    m,
		verifier: v,
		issuer:   i,
		logger:   l.With("module", "auth_service"),
		now:      time.Now,
	}
}

// Login authenticates the given raw credentials and issues a token on
// success.
//
// Unknown email and password mismatch both return
// common.ErrInvalidCredentials so the caller cannot probe which emails
// exist. Accounts in any status other than ACTIVE return
// common.ErrAccountDisabled before the password is ever checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	repo := s.repos.Accounts(s.db)
	account, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login failed: unknown email", "email", email)
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "account lookup failed", "email", email, "error", err.Error())
		return nil, common.ErrorInternal
	}

	if account.Status != models.StatusActive {
		s.logger.Warn(ctx, "login failed: account not active", "email", email, "status", string(account.Status))
		return nil, common.ErrAccountDisabled
	}

	if !s.verifier.Verify(password, account.PasswordHash) {
		s.logger.Warn(ctx, "login failed: password mismatch", "email", email)
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(account.ID, account.Email, string(account.Role), s.now())
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "email", email, "error", err.Error())
		return nil, common.ErrTokenGeneration
	}

	s.logger.Info(ctx, "login succeeded", "email", email)

	return &LoginResult{
		Token:     token,
		TokenType: TokenTypeBearer,
		ExpiresIn: s.issuer.ExpiresInSeconds(),
		User: UserSummary{
			ID:    account.ID,
			Email: account.Email,
			Name:  account.Name,
		},
	}, nil
}
