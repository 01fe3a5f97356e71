package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		pw   string
		want error
	}{
		{"short1", ErrTooShort},
		{"longenough", ErrNoDigit},
		{"longenough1", nil},
		{"12345678", nil},
		{strings.Repeat("a", 71) + "1", nil},
		{strings.Repeat("a", 80) + "1", ErrTooLong},
		// 36 two-byte runes plus a digit is 73 bytes.
		{strings.Repeat("é", 36) + "1", ErrTooLong},
	}
	for _, tc := range cases {
		if err := Validate(tc.pw); !errors.Is(err, tc.want) {
			t.Fatalf("Validate(%q) = %v, want %v", tc.pw, err, tc.want)
		}
	}
}

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := h.Compare(hash, "password123"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := h.Compare(hash, "password124"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
}
