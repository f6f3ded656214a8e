package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch covers both a wrong password and a malformed hash.
var ErrPasswordMismatch = errors.New("password verification failed")

// BcryptPasswordHasher checks admin passwords against the bcrypt hashes kept
// in configuration. Hash backs the `rifas hash-password` helper.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher falls back to bcrypt.DefaultCost for out of range costs.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	h := &BcryptPasswordHasher{cost: bcrypt.DefaultCost}
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		h.cost = cost
	}
	return h
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	// bcrypt rejects passwords longer than 72 bytes.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrPasswordMismatch
	}
	return nil
}
