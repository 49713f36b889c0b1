package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// well-known bcrypt vector: hash of "password" at cost 10
const knownHash = "$2a$10$syaQRdUJ2RUU2vF7BWBti.aQtfd5Odx8FgdajxxHw7Yi1nTYSMGW6"

func TestVerify_KnownVector(t *testing.T) {
	t.Parallel()

	h := NewHasher(DefaultCost)

	if !h.Verify("password", knownHash) {
		t.Fatalf("expected known vector to verify")
	}
	if h.Verify("not-the-password", knownHash) {
		t.Fatalf("expected mismatch to return false")
	}
}

func TestHashAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost) // keep the test fast

	hash, err := h.Hash("SecurePass123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	if !h.Verify("SecurePass123!", hash) {
		t.Fatalf("expected correct password to verify")
	}
	if h.Verify("WrongPassword!", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	h1, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for repeated input, got identical")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewHasher(DefaultCost)
	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to fail verification")
	}
}

func TestNewHasher_CostOutOfRangeFallsBack(t *testing.T) {
	t.Parallel()

	for _, cost := range []int{-1, 0, 100} {
		h := NewHasher(cost)
		if h.cost != DefaultCost {
			t.Fatalf("NewHasher(%d).cost = %d, want %d", cost, h.cost, DefaultCost)
		}
	}
}
