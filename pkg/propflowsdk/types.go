package propflowsdk

import (
	"time"

	"github.com/aussiebroadwan/propflow/pkg/jwtx"
)

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Invitation Types
// ============================================================================

// Invitation is the admin view of an invitation. It never carries the token.
type Invitation struct {
	ID            string     `json:"id"`
	Scope         string     `json:"scope" example:"team"`
	Label         string     `json:"label,omitempty"`
	Email         string     `json:"email,omitempty"`
	Role          string     `json:"role" example:"agent"`
	AssignedPlan  string     `json:"assigned_plan,omitempty" example:"pro"`
	IsEnterprise  bool       `json:"is_enterprise"`
	CompanyID     string     `json:"company_id,omitempty"`
	CompanyName   string     `json:"company_name,omitempty"`
	MaxUses       int        `json:"max_uses"`
	UseCount      int        `json:"use_count"`
	Status        string     `json:"status" example:"active"`
	State         string     `json:"state" example:"valid"` // valid, revoked, expired or exhausted
	ExpiresAt     time.Time  `json:"expires_at"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	AcceptedBy    string     `json:"accepted_by,omitempty"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
	RemainingUses int        `json:"remaining_uses"`
}

// InvitationView is the public context shown to an invitee before they
// enter credentials.
type InvitationView struct {
	Scope         string    `json:"scope"`
	Label         string    `json:"label,omitempty"`
	Role          string    `json:"role"`
	CompanyName   string    `json:"company_name,omitempty"`
	AssignedPlan  string    `json:"assigned_plan,omitempty"`
	IsEnterprise  bool      `json:"is_enterprise"`
	Email         string    `json:"email,omitempty"` // set when the invitation is locked to one address
	ExpiresAt     time.Time `json:"expires_at"`
	RemainingUses int       `json:"remaining_uses"`

	// CompanyNameEditable is true when accepting creates a new company and
	// CompanyName is only a suggestion.
	CompanyNameEditable bool `json:"company_name_editable"`
}

// IssueInvitationRequest creates an invitation. Platform invitations need
// AssignedPlan; team and company_join invitations need CompanyID and Role.
type IssueInvitationRequest struct {
	Scope         string `json:"scope" example:"platform"`
	Label         string `json:"label,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	AssignedPlan  string `json:"assigned_plan,omitempty"`
	IsEnterprise  bool   `json:"is_enterprise,omitempty"`
	CompanyID     string `json:"company_id,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`

	// Omitted fields take the server defaults of 1 use and 7 days. Explicit
	// values below 1 are rejected.
	MaxUses       *int `json:"max_uses,omitempty"`
	ExpiresInDays *int `json:"expires_in_days,omitempty"` // max 90
}

// Int returns a pointer to v, for the optional fields of request types.
func Int(v int) *int { return &v }

// IssueInvitationResponse carries the plaintext token exactly once.
type IssueInvitationResponse struct {
	Invite      Invitation `json:"invite"`
	InviteToken string     `json:"invite_token"`
	InviteURL   string     `json:"invite_url"`
}

// ListInvitationsRequest filters the admin listing. Empty fields match all.
type ListInvitationsRequest struct {
	CompanyID string
	Scope     string
	Status    string
	Limit     int
}

type ListInvitationsResponse struct {
	Invites []Invitation `json:"invites"`
}

type RevokeInvitationResponse struct {
	Invite Invitation `json:"invite"`
}

type LookupInvitationResponse struct {
	Invitation InvitationView `json:"invitation"`
}

// ============================================================================
// Signup Types
// ============================================================================

// SignupRequest accepts an invitation. There is no role field: the role
// always comes from the invitation.
type SignupRequest struct {
	Token       string `json:"token"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name,omitempty"`
}

// AccountRef identifies the account a signup created.
type AccountRef struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

type SignupResponse struct {
	Account AccountRef `json:"account"`
}

// ============================================================================
// Session Types
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned from POST /v1/sessions.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type CompanyInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Plan         string `json:"plan"`
	IsEnterprise bool   `json:"is_enterprise"`
}

type PlanInfo struct {
	Name          string   `json:"name"`
	Features      []string `json:"features"`
	MaxProperties int      `json:"max_properties"`
}

// MeResponse is the caller's request-scoped context.
type MeResponse struct {
	UserID      string       `json:"user_id"`
	Email       string       `json:"email"`
	FullName    string       `json:"full_name,omitempty"`
	Role        string       `json:"role,omitempty"`
	Company     *CompanyInfo `json:"company,omitempty"`
	Plan        *PlanInfo    `json:"plan,omitempty"`
	Grants      []string     `json:"grants"`
	Permissions []string     `json:"permissions"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest creates the first platform administrator.
type BootstrapRequest struct {
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	AdminFullName string `json:"admin_full_name"`
	CompanyName   string `json:"company_name"`
	CompanyPlan   string `json:"company_plan,omitempty"` // default enterprise
}

type BootstrapResponse struct {
	AdminUserID string `json:"admin_user_id"`
	CompanyID   string `json:"company_id"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz; Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the key set session tokens verify against.
type JWKSResponse jwtx.JWKS
