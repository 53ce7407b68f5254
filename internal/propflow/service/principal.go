package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

// PrincipalService assembles the request-scoped auth context.
type PrincipalService struct {
	Store store.Store
	Plans *PlanCatalogue
}

// Load builds the principal for identityID. Identities without a profile
// (never provisioned) still load, with no company and no plan.
func (s *PrincipalService) Load(ctx context.Context, identityID string) (domain.Principal, error) {
	ctx, span := tracer.Start(ctx, "PrincipalService.Load")
	defer span.End()

	log := slogx.FromContext(ctx)

	ident, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrUnauthorized
		}
		return domain.Principal{}, err
	}
	p := domain.Principal{IdentityID: ident.ID, Email: ident.Email}

	profile, err := s.Store.Profiles().GetProfileByID(ctx, identityID)
	switch {
	case err == nil:
		p.Profile = &profile
	case !errors.Is(err, store.ErrNotFound):
		return domain.Principal{}, err
	}

	if p.Profile != nil && p.Profile.CompanyID != "" {
		company, err := s.Store.Companies().GetCompanyByID(ctx, p.Profile.CompanyID)
		if err != nil {
			log.Error("profile references missing company", slogx.Err(err))
			return domain.Principal{}, err
		}
		p.Company = &company
		if s.Plans != nil {
			if plan, ok := s.Plans.Get(company.Plan); ok {
				p.Plan = &plan
			}
		}
	}

	grants, err := s.Store.Grants().ListGrantsByIdentity(ctx, identityID)
	if err != nil {
		return domain.Principal{}, err
	}
	for _, g := range grants {
		p.Grants = append(p.Grants, g.Capability)
	}

	p.Permissions = domain.DerivePermissions(p.Grants, p.Profile)
	return p, nil
}
