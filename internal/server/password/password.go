// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when no valid cost is
// configured.
const DefaultCost = 10

// Hasher hashes and verifies plaintext passwords at a fixed cost factor.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext. bcrypt generates a fresh
// random salt per call, so repeated hashes of the same input differ.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored bcrypt hash. The
// comparison happens inside the bcrypt library, which is constant-time
// on the derived digest. A mismatch is a normal false result, never an
// error.
func (h *Hasher) Verify(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
