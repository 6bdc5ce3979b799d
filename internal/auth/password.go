package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"hotel-booking/internal/domain"
)

// DefaultBcryptCost matches the cost used for accounts created by earlier
// deployments so existing hashes verify at the same speed.
const DefaultBcryptCost = 8

// MaxPasswordBytes is the longest input bcrypt hashes without truncation.
const MaxPasswordBytes = 72

// MsgPasswordTooLong is reported on the password field for over-long input.
const MsgPasswordTooLong = "Password must be 72 bytes or fewer"

// CheckPasswordLength reports a password field error when plain cannot be
// hashed without truncation.
func CheckPasswordLength(plain string) error {
	if len(plain) <= MaxPasswordBytes {
		return nil
	}
	return &domain.ValidationError{Fields: []domain.FieldError{{
		Field:   "password",
		Message: MsgPasswordTooLong,
	}}}
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed PasswordHasher. A cost outside
// bcrypt's range falls back to DefaultBcryptCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	if err := CheckPasswordLength(plain); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %v", domain.ErrInternal, err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Verify(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	// no stored hash can match input that was never hashable
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return domain.ErrInvalidCredentials
	}
	return fmt.Errorf("%w: compare password: %v", domain.ErrInternal, err)
}
