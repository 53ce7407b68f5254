package domain

import "time"

// InvitationScope discriminates the three kinds of invitation.
type InvitationScope string

const (
	// ScopePlatform onboards a new customer company on an assigned plan.
	ScopePlatform InvitationScope = "platform"
	// ScopeTeam adds one member to an existing company.
	ScopeTeam InvitationScope = "team"
	// ScopeCompanyJoin is a shareable, multi-use link into an existing company.
	ScopeCompanyJoin InvitationScope = "company_join"
)

// Valid reports whether s is a known scope.
func (s InvitationScope) Valid() bool {
	switch s {
	case ScopePlatform, ScopeTeam, ScopeCompanyJoin:
		return true
	}
	return false
}

// CreatesCompany reports whether accepting creates a new company.
func (s InvitationScope) CreatesCompany() bool { return s == ScopePlatform }

// InvitationStatus is the persisted status. Expired and exhausted are
// derived at read time and never stored.
type InvitationStatus string

const (
	StatusActive   InvitationStatus = "active"
	StatusAccepted InvitationStatus = "accepted"
	StatusRevoked  InvitationStatus = "revoked"
)

// InvitationState is the evaluated state of an invitation at an instant.
type InvitationState string

const (
	StateValid     InvitationState = "valid"
	StateRevoked   InvitationState = "revoked"
	StateExpired   InvitationState = "expired"
	StateExhausted InvitationState = "exhausted"
)

type Invitation struct {
	ID        string
	TokenHash string // SHA-256 fingerprint, the plaintext token is never stored
	Scope     InvitationScope
	Label     string

	Email        string // optional lock, compared case-insensitively
	Role         Role
	AssignedPlan string
	IsEnterprise bool
	CompanyID    string // empty for platform scope
	CompanyName  string // hint for platform scope, fixed otherwise

	MaxUses   int
	UseCount  int
	ExpiresAt time.Time
	Status    InvitationStatus

	CreatedBy  string
	CreatedAt  time.Time
	AcceptedBy string // last acceptor
	AcceptedAt *time.Time
	RevokedAt  *time.Time
	UpdatedAt  time.Time
}

// Evaluate classifies the invitation at now. The first match wins:
// revoked, expired, exhausted, valid. An expiry equal to now is expired.
func (i Invitation) Evaluate(now time.Time) InvitationState {
	switch {
	case i.Status == StatusRevoked:
		return StateRevoked
	case !now.Before(i.ExpiresAt):
		return StateExpired
	case i.Status == StatusAccepted, i.UseCount >= i.MaxUses:
		return StateExhausted
	default:
		return StateValid
	}
}

// Acceptable reports whether the invitation can be accepted at now.
func (i Invitation) Acceptable(now time.Time) bool {
	return i.Evaluate(now) == StateValid
}

// SingleUse reports whether the first acceptance consumes the invitation.
func (i Invitation) SingleUse() bool { return i.MaxUses == 1 }

// RemainingUses is never negative.
func (i Invitation) RemainingUses() int {
	return max(i.MaxUses-i.UseCount, 0)
}

// InvitationFilter narrows admin listings. Zero values match everything.
type InvitationFilter struct {
	CompanyID string
	Scope     InvitationScope
	Status    InvitationStatus
	Limit     int
}
