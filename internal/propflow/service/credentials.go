package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Password policy, applied to every flow that sets a password.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// CheckPasswordPolicy returns an error wrapping ErrWeakCredential when pw is
// too short, too long, or lacks a letter or a digit.
func CheckPasswordPolicy(pw string) error {
	n := utf8.RuneCountInString(pw)
	if n < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakCredential, MinPasswordLength)
	}
	if n > MaxPasswordLength {
		return fmt.Errorf("%w: must be at most %d characters", ErrWeakCredential, MaxPasswordLength)
	}

	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return fmt.Errorf("%w: must contain a letter and a digit", ErrWeakCredential)
	}
	return nil
}

// NormalizeEmail validates a bare address and lower-cases it.
func NormalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", fmt.Errorf("%w: %q is not a valid email address", ErrInvalidArgument, raw)
	}
	return strings.ToLower(addr.Address), nil
}
