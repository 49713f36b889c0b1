// Package auth issues and validates the signed access tokens (HS256 JWT)
// that represent an authenticated session. Tokens are stateless: validity
// is determined solely by signature and expiry at verification time.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reacademix/authd/internal/common"
)

// MinSecretKeyLen is the minimum signing-secret length in bytes. HS256
// keys shorter than the hash output weaken the HMAC, so initialization
// fails below this bound.
const MinSecretKeyLen = 32

// Claims is the token payload: registered claims (sub = account id,
// iat, exp) plus the account email and role.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AccountID returns the numeric account id stored in the subject claim.
func (c *Claims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}

// TokenCodec signs and parses access tokens with a process-wide secret.
// The secret is fixed at construction and never re-derived per call; a
// codec is safe for concurrent use.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenCodec validates the signing secret and returns a codec issuing
// tokens that expire after lifetime.
func NewTokenCodec(secret string, lifetime time.Duration) (*TokenCodec, error) {
	if len(secret) < MinSecretKeyLen {
		return nil, fmt.Errorf("signing secret must be at least %d bytes, got %d", MinSecretKeyLen, len(secret))
	}
	return &TokenCodec{secret: []byte(secret), lifetime: lifetime}, nil
}

// Issue builds and signs a token for the account with issued-at = now and
// expiry = now + lifetime. Signing failures wrap common.ErrTokenGeneration
// and are an internal fault, not a caller mistake.
func (c *TokenCodec) Issue(accountID int64, email string, role string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
		Email: email,
		Role:  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrTokenGeneration, err)
	}
	return signed, nil
}

// ParseAndValidate verifies the token signature and expiry relative to
// now. It returns common.ErrTokenExpired when the signature is good but
// the expiry has passed, and common.ErrInvalidToken for every other
// failure (bad signature, malformed token, wrong algorithm), so callers
// can tell the two apart.
func (c *TokenCodec) ParseAndValidate(tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// ExpiresInSeconds returns the configured token lifetime in whole
// seconds, for TTL metadata returned alongside issued tokens.
func (c *TokenCodec) ExpiresInSeconds() int64 {
	return int64(c.lifetime / time.Second)
}
