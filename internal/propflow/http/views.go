package http

import (
	"time"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/pkg/propflowsdk"
)

func invitationResponse(inv domain.Invitation, now time.Time) propflowsdk.Invitation {
	return propflowsdk.Invitation{
		ID:            inv.ID,
		Scope:         string(inv.Scope),
		Label:         inv.Label,
		Email:         inv.Email,
		Role:          inv.Role.String(),
		AssignedPlan:  inv.AssignedPlan,
		IsEnterprise:  inv.IsEnterprise,
		CompanyID:     inv.CompanyID,
		CompanyName:   inv.CompanyName,
		MaxUses:       inv.MaxUses,
		UseCount:      inv.UseCount,
		Status:        string(inv.Status),
		State:         string(inv.Evaluate(now)),
		ExpiresAt:     inv.ExpiresAt,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
		AcceptedBy:    inv.AcceptedBy,
		AcceptedAt:    inv.AcceptedAt,
		RevokedAt:     inv.RevokedAt,
		RemainingUses: inv.RemainingUses(),
	}
}

func invitationView(inv domain.Invitation) propflowsdk.InvitationView {
	return propflowsdk.InvitationView{
		Scope:               string(inv.Scope),
		Label:               inv.Label,
		Role:                inv.Role.String(),
		CompanyName:         inv.CompanyName,
		AssignedPlan:        inv.AssignedPlan,
		IsEnterprise:        inv.IsEnterprise,
		Email:               inv.Email,
		ExpiresAt:           inv.ExpiresAt,
		RemainingUses:       inv.RemainingUses(),
		CompanyNameEditable: inv.Scope.CreatesCompany(),
	}
}

func meResponse(p domain.Principal) propflowsdk.MeResponse {
	out := propflowsdk.MeResponse{
		UserID:      p.IdentityID,
		Email:       p.Email,
		Grants:      make([]string, 0, len(p.Grants)),
		Permissions: make([]string, 0, len(p.Permissions)),
	}
	if p.Profile != nil {
		out.FullName = p.Profile.FullName
		out.Role = p.Profile.Role.String()
	}
	if p.Company != nil {
		out.Company = &propflowsdk.CompanyInfo{
			ID:           p.Company.ID,
			Name:         p.Company.Name,
			Plan:         p.Company.Plan,
			IsEnterprise: p.Company.IsEnterprise,
		}
	}
	if p.Plan != nil {
		out.Plan = &propflowsdk.PlanInfo{
			Name:          p.Plan.Name,
			Features:      p.Plan.Features,
			MaxProperties: p.Plan.MaxProperties,
		}
	}
	for _, g := range p.Grants {
		out.Grants = append(out.Grants, string(g))
	}
	for _, perm := range p.Permissions {
		out.Permissions = append(out.Permissions, string(perm))
	}
	return out
}

func nowFrom(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}
