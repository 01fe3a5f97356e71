package password

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	Cost      = 12
	MinLength = 8

	// MaxBytes is the bcrypt input limit.
	MaxBytes = 72
)

var (
	ErrTooShort = errors.New("password must be at least 8 characters long")
	ErrTooLong  = errors.New("password must be at most 72 bytes long")
	ErrNoDigit  = errors.New("password must contain at least one number")
	ErrMismatch = errors.New("password mismatch")
)

// Validate enforces the signup password policy.
func Validate(pw string) error {
	if len([]rune(pw)) < MinLength {
		return ErrTooShort
	}
	if len(pw) > MaxBytes {
		return ErrTooLong
	}
	for _, r := range pw {
		if unicode.IsDigit(r) {
			return nil
		}
	}
	return ErrNoDigit
}

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = Cost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *Hasher) Compare(hash, pw string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)); err != nil {
		return ErrMismatch
	}
	return nil
}
