package propflowsdk

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const requiredReason = "required"

// Validate checks the signup form before it is sent. It mirrors the server
// rules so the form can highlight fields without a round trip; the server
// checks everything again. Returns nil when the form is valid.
func (r SignupRequest) Validate(view InvitationView) map[string]string {
	errs := make(map[string]string)

	email := strings.TrimSpace(r.Email)
	switch {
	case email == "":
		errs["email"] = requiredReason
	case !validEmail(email):
		errs["email"] = "not a valid email address"
	case view.Email != "" && !strings.EqualFold(view.Email, email):
		errs["email"] = "must be the address the invitation was sent to"
	}

	if strings.TrimSpace(r.FullName) == "" {
		errs["full_name"] = requiredReason
	}

	n := utf8.RuneCountInString(r.Password)
	switch {
	case r.Password == "":
		errs["password"] = requiredReason
	case n < 8:
		errs["password"] = "too short (min 8)"
	case n > 128:
		errs["password"] = "too long (max 128)"
	case !hasLetterAndDigit(r.Password):
		errs["password"] = "must contain a letter and a number"
	}

	if view.CompanyNameEditable && strings.TrimSpace(r.CompanyName) == "" && view.CompanyName == "" {
		errs["company_name"] = requiredReason
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func hasLetterAndDigit(s string) bool {
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
