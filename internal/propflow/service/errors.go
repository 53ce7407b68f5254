package service

import (
	"errors"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
)

var tracer = otel.Tracer("github.com/aussiebroadwan/propflow/internal/propflow/service")

var (
	// Invitation validation errors are terminal for the invitee.
	ErrNotFound  = errors.New("invitation not found")
	ErrRevoked   = errors.New("invitation has been revoked")
	ErrExpired   = errors.New("invitation has expired")
	ErrExhausted = errors.New("invitation has already been used")

	// Credential errors can be corrected and resubmitted.
	ErrEmailLocked    = errors.New("invitation is locked to a different email address")
	ErrAccountExists  = errors.New("an account with this email already exists")
	ErrWeakCredential = errors.New("password does not meet the policy")

	ErrUnauthorized       = errors.New("not allowed to perform this action")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrProvisioningFailed = errors.New("account provisioning failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// stateError maps an evaluated invitation state to its error, nil when valid.
func stateError(state domain.InvitationState) error {
	switch state {
	case domain.StateRevoked:
		return ErrRevoked
	case domain.StateExpired:
		return ErrExpired
	case domain.StateExhausted:
		return ErrExhausted
	default:
		return nil
	}
}

// clock returns now() in UTC truncated to the millisecond, the precision
// both drivers persist.
func clock(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return now().UTC().Truncate(time.Millisecond)
}
