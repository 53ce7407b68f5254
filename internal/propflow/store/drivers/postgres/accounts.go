package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
)

type identitiesRepo struct {
	db dbtx
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, id domain.Identity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (id, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id.ID, strings.ToLower(id.Email), id.PasswordHash, id.CreatedAt, id.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, created_at, updated_at FROM identities WHERE id = $1`, id)
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	return r.getOne(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM identities WHERE lower(email) = lower($1)`, email)
}

func (r *identitiesRepo) getOne(ctx context.Context, query string, arg string) (domain.Identity, error) {
	var i domain.Identity
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&i.ID, &i.Email, &i.PasswordHash, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return i, nil
}

func (r *identitiesRepo) DeleteIdentity(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM identities WHERE id = $1`, id)
	return err
}

func (r *identitiesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM identities)`).Scan(&exists)
	return !exists, err
}

type profilesRepo struct {
	db dbtx
}

const profileColumns = `id, email, full_name, role, company_id, created_at, updated_at`

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Email, p.FullName, string(p.Role), nullString(p.CompanyID), p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) ListProfilesByCompany(ctx context.Context, companyID string) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE company_id = $1 ORDER BY created_at, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProfile(row scanner) (domain.Profile, error) {
	var (
		p         domain.Profile
		role      string
		companyID sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &role, &companyID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Profile{}, err
	}
	p.Role = domain.Role(role)
	p.CompanyID = companyID.String
	return p, nil
}

type companiesRepo struct {
	db dbtx
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, plan, is_enterprise, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Plan, c.IsEnterprise, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	var c domain.Company
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, plan, is_enterprise, created_by, created_at, updated_at FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Plan, &c.IsEnterprise, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return c, nil
}

type grantsRepo struct {
	db dbtx
}

func (r *grantsRepo) CreateGrant(ctx context.Context, g domain.Grant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO grants (identity_id, capability, granted_by, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (identity_id, capability) DO NOTHING`,
		g.IdentityID, string(g.Capability), g.GrantedBy, g.CreatedAt,
	)
	return err
}

func (r *grantsRepo) ListGrantsByIdentity(ctx context.Context, identityID string) ([]domain.Grant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT identity_id, capability, granted_by, created_at FROM grants WHERE identity_id = $1 ORDER BY capability`,
		identityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Grant
	for rows.Next() {
		var (
			g   domain.Grant
			capability string
		)
		if err := rows.Scan(&g.IdentityID, &capability, &g.GrantedBy, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Capability = domain.Capability(capability)
		out = append(out, g)
	}
	return out, rows.Err()
}

// AnyGrant takes a transaction-scoped advisory lock keyed on the capability
// before reading, so two bootstraps cannot both observe an empty table.
func (r *grantsRepo) AnyGrant(ctx context.Context, c domain.Capability) (bool, error) {
	if _, err := r.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, string(c)); err != nil {
		return false, err
	}
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM grants WHERE capability = $1)`, string(c),
	).Scan(&exists)
	return exists, err
}

func (r *grantsRepo) HasGrant(ctx context.Context, identityID string, c domain.Capability) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM grants WHERE identity_id = $1 AND capability = $2)`,
		identityID, string(c),
	).Scan(&exists)
	return exists, err
}
