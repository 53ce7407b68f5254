package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store/drivers/sqlite/gen"
)

type identitiesRepo struct {
	q *gen.Queries
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, id domain.Identity) error {
	err := r.q.CreateIdentity(ctx, gen.CreateIdentityParams{
		ID:           id.ID,
		Email:        strings.ToLower(id.Email),
		PasswordHash: id.PasswordHash,
		CreatedAt:    toMillis(id.CreatedAt),
		UpdatedAt:    toMillis(id.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row, err := r.q.GetIdentityByID(ctx, id)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	row, err := r.q.GetIdentityByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) DeleteIdentity(ctx context.Context, id string) error {
	return r.q.DeleteIdentity(ctx, id)
}

func (r *identitiesRepo) IsEmpty(ctx context.Context) (bool, error) {
	n, err := r.q.CountIdentities(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func mapIdentity(row gen.Identity) domain.Identity {
	return domain.Identity{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    fromMillis(row.CreatedAt),
		UpdatedAt:    fromMillis(row.UpdatedAt),
	}
}

type profilesRepo struct {
	q *gen.Queries
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	err := r.q.CreateProfile(ctx, gen.CreateProfileParams{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      string(p.Role),
		CompanyID: mapStringNull(p.CompanyID),
		CreatedAt: toMillis(p.CreatedAt),
		UpdatedAt: toMillis(p.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	row, err := r.q.GetProfileByID(ctx, id)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return mapProfile(row), nil
}

func (r *profilesRepo) ListProfilesByCompany(ctx context.Context, companyID string) ([]domain.Profile, error) {
	rows, err := r.q.ListProfilesByCompany(ctx, mapStringNull(companyID))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapProfile(row))
	}
	return out, nil
}

func mapProfile(row gen.Profile) domain.Profile {
	return domain.Profile{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		Role:      domain.Role(row.Role),
		CompanyID: mapNullString(row.CompanyID),
		CreatedAt: fromMillis(row.CreatedAt),
		UpdatedAt: fromMillis(row.UpdatedAt),
	}
}

type companiesRepo struct {
	q *gen.Queries
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	err := r.q.CreateCompany(ctx, gen.CreateCompanyParams{
		ID:           c.ID,
		Name:         c.Name,
		Plan:         c.Plan,
		IsEnterprise: c.IsEnterprise,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    toMillis(c.CreatedAt),
		UpdatedAt:    toMillis(c.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	row, err := r.q.GetCompanyByID(ctx, id)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return domain.Company{
		ID:           row.ID,
		Name:         row.Name,
		Plan:         row.Plan,
		IsEnterprise: row.IsEnterprise,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    fromMillis(row.CreatedAt),
		UpdatedAt:    fromMillis(row.UpdatedAt),
	}, nil
}

type grantsRepo struct {
	q *gen.Queries
}

func (r *grantsRepo) CreateGrant(ctx context.Context, g domain.Grant) error {
	return r.q.CreateGrant(ctx, gen.CreateGrantParams{
		IdentityID: g.IdentityID,
		Capability: string(g.Capability),
		GrantedBy:  g.GrantedBy,
		CreatedAt:  toMillis(g.CreatedAt),
	})
}

func (r *grantsRepo) ListGrantsByIdentity(ctx context.Context, identityID string) ([]domain.Grant, error) {
	rows, err := r.q.ListGrantsByIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Grant, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Grant{
			IdentityID: row.IdentityID,
			Capability: domain.Capability(row.Capability),
			GrantedBy:  row.GrantedBy,
			CreatedAt:  fromMillis(row.CreatedAt),
		})
	}
	return out, nil
}

// AnyGrant needs no explicit lock: the pool holds a single connection, so an
// open transaction already excludes every other writer.
func (r *grantsRepo) AnyGrant(ctx context.Context, c domain.Capability) (bool, error) {
	n, err := r.q.CountGrantsByCapability(ctx, string(c))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *grantsRepo) HasGrant(ctx context.Context, identityID string, c domain.Capability) (bool, error) {
	n, err := r.q.HasGrant(ctx, gen.HasGrantParams{IdentityID: identityID, Capability: string(c)})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
