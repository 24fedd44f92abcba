package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch reports that a plaintext does not match a stored hash.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// Cost bounds re-exported so callers don't need to import bcrypt directly.
const (
	MinCost     = bcrypt.MinCost
	MaxCost     = bcrypt.MaxCost
	DefaultCost = bcrypt.DefaultCost
)

// Hasher produces salted bcrypt hashes with a configurable cost factor.
// The cost is embedded in every hash it emits, so Verify keeps working on
// hashes produced under older costs after the factor is tuned upwards.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given cost, clamped to the valid
// bcrypt range. A zero or negative cost falls back to DefaultCost.
func NewHasher(cost int) Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	if cost < MinCost {
		cost = MinCost
	}
	if cost > MaxCost {
		cost = MaxCost
	}
	return Hasher{Cost: cost}
}

// Hash generates a salted bcrypt hash of the plaintext. The plaintext is
// never logged or persisted; the returned string is what gets stored.
func (h Hasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares a plaintext against a stored bcrypt hash. The comparison
// runs under the cost parameters recorded in the hash itself, independent of
// the Hasher's current cost. Returns ErrPasswordMismatch on mismatch and a
// descriptive error for malformed hashes.
func (h Hasher) Verify(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("cryptox: verify password: %w", err)
	}
}
