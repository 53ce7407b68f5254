package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
)

const invitationColumns = `id, token_hash, scope, label, email, role, assigned_plan, is_enterprise,
	company_id, company_name, max_uses, use_count, expires_at, status, created_by, created_at,
	accepted_by, accepted_at, revoked_at, updated_at`

type invitationsRepo struct {
	db dbtx
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	query := `INSERT INTO invitations (
		id, token_hash, scope, label, email, role, assigned_plan, is_enterprise,
		company_id, company_name, max_uses, use_count, expires_at, status,
		created_by, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, 'active', $13, $14, $15)`
	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.TokenHash, string(inv.Scope), inv.Label, inv.Email, string(inv.Role),
		inv.AssignedPlan, inv.IsEnterprise, nullString(inv.CompanyID), inv.CompanyName,
		inv.MaxUses, inv.ExpiresAt, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	inv, err := scanInvitation(r.db.QueryRowContext(ctx, query, id))
	return inv, mapNotFound(err)
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token_hash = $1`
	inv, err := scanInvitation(r.db.QueryRowContext(ctx, query, hash))
	return inv, mapNotFound(err)
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, f domain.InvitationFilter) ([]domain.Invitation, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.CompanyID != "" {
		add("company_id = $%d", f.CompanyID)
	}
	if f.Scope != "" {
		add("scope = $%d", string(f.Scope))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}

	query := `SELECT ` + invitationColumns + ` FROM invitations`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) ConsumeInvitation(ctx context.Context, id, acceptedBy string, now time.Time) error {
	query := `UPDATE invitations
		SET use_count = use_count + 1,
		    status = CASE WHEN max_uses = 1 THEN 'accepted' ELSE status END,
		    accepted_by = $1, accepted_at = $2, updated_at = $2
		WHERE id = $3 AND status = 'active' AND use_count < max_uses AND expires_at > $2`
	return expectOne(r.db.ExecContext(ctx, query, acceptedBy, now, id))
}

func (r *invitationsRepo) RevokeInvitation(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE invitations SET status = 'revoked', revoked_at = $1, updated_at = $1
		WHERE id = $2 AND status = 'active'`
	return expectOne(r.db.ExecContext(ctx, query, now, id))
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE expires_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row scanner) (domain.Invitation, error) {
	var (
		inv                   domain.Invitation
		scope, role, status   string
		companyID             sql.NullString
		acceptedAt, revokedAt sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.TokenHash, &scope, &inv.Label, &inv.Email, &role, &inv.AssignedPlan,
		&inv.IsEnterprise, &companyID, &inv.CompanyName, &inv.MaxUses, &inv.UseCount,
		&inv.ExpiresAt, &status, &inv.CreatedBy, &inv.CreatedAt, &inv.AcceptedBy,
		&acceptedAt, &revokedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.Scope = domain.InvitationScope(scope)
	inv.Role = domain.Role(role)
	inv.Status = domain.InvitationStatus(status)
	inv.CompanyID = companyID.String
	inv.AcceptedAt = nullTimePtr(acceptedAt)
	inv.RevokedAt = nullTimePtr(revokedAt)
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()
	return inv, nil
}
