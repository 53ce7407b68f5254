package domain

import "slices"

// Permission is a derived capability checked by handlers and services.
type Permission string

const (
	PermInvitePlatform Permission = "invites:platform"
	PermInviteCompany  Permission = "invites:company"
	PermListAllInvites Permission = "invites:list_all"
	PermManageCompany  Permission = "company:manage"
)

// Principal is the request-scoped auth context: who the caller is, their
// profile and company plan, and what they may do. It is built once per
// request and never cached across requests.
type Principal struct {
	IdentityID  string
	Email       string
	Profile     *Profile // nil for identities without a profile
	Company     *Company
	Plan        *Plan
	Grants      []Capability
	Permissions []Permission
}

// HasGrant reports whether the principal holds c.
func (p Principal) HasGrant(c Capability) bool {
	return slices.Contains(p.Grants, c)
}

// Can reports whether the principal has the permission.
func (p Principal) Can(perm Permission) bool {
	return slices.Contains(p.Permissions, perm)
}

// IsCompanyAdmin reports whether the principal administers companyID.
func (p Principal) IsCompanyAdmin(companyID string) bool {
	return p.Profile != nil &&
		companyID != "" &&
		p.Profile.CompanyID == companyID &&
		p.Profile.Role == RoleAdmin
}

// HasFeature reports whether the principal's company plan includes f.
func (p Principal) HasFeature(f string) bool {
	return p.Plan != nil && slices.Contains(p.Plan.Features, f)
}

// DerivePermissions computes the permission set from grants and profile.
func DerivePermissions(grants []Capability, profile *Profile) []Permission {
	var perms []Permission
	if slices.Contains(grants, CapPlatformAdmin) {
		perms = append(perms, PermInvitePlatform, PermInviteCompany, PermListAllInvites)
	}
	if profile != nil && profile.Role == RoleAdmin && profile.CompanyID != "" {
		perms = append(perms, PermManageCompany)
		if !slices.Contains(perms, PermInviteCompany) {
			perms = append(perms, PermInviteCompany)
		}
	}
	return perms
}
