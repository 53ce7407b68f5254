package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/internal/propflow/store/drivers/sqlite/gen"
)

const defaultListLimit = 100

type invitationsRepo struct {
	q *gen.Queries
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		ID:           inv.ID,
		TokenHash:    inv.TokenHash,
		Scope:        string(inv.Scope),
		Label:        inv.Label,
		Email:        inv.Email,
		Role:         string(inv.Role),
		AssignedPlan: inv.AssignedPlan,
		IsEnterprise: inv.IsEnterprise,
		CompanyID:    mapStringNull(inv.CompanyID),
		CompanyName:  inv.CompanyName,
		MaxUses:      int64(inv.MaxUses),
		ExpiresAt:    toMillis(inv.ExpiresAt),
		CreatedBy:    inv.CreatedBy,
		CreatedAt:    toMillis(inv.CreatedAt),
		UpdatedAt:    toMillis(inv.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByTokenHash(ctx, hash)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, f domain.InvitationFilter) ([]domain.Invitation, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.q.ListInvitations(ctx, gen.ListInvitationsParams{
		CompanyID: f.CompanyID,
		Scope:     string(f.Scope),
		Status:    string(f.Status),
		Limit:     int64(limit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapInvitation(row))
	}
	return out, nil
}

func (r *invitationsRepo) ConsumeInvitation(ctx context.Context, id, acceptedBy string, now time.Time) error {
	n, err := r.q.ConsumeInvitation(ctx, gen.ConsumeInvitationParams{
		AcceptedBy: acceptedBy,
		Now:        toMillis(now),
		ID:         id,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *invitationsRepo) RevokeInvitation(ctx context.Context, id string, now time.Time) error {
	n, err := r.q.RevokeInvitation(ctx, gen.RevokeInvitationParams{Now: toMillis(now), ID: id})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, before time.Time) (int64, error) {
	return r.q.DeleteInvitationsExpiredBefore(ctx, toMillis(before))
}

func mapInvitation(row gen.Invitation) domain.Invitation {
	return domain.Invitation{
		ID:           row.ID,
		TokenHash:    row.TokenHash,
		Scope:        domain.InvitationScope(row.Scope),
		Label:        row.Label,
		Email:        row.Email,
		Role:         domain.Role(row.Role),
		AssignedPlan: row.AssignedPlan,
		IsEnterprise: row.IsEnterprise,
		CompanyID:    mapNullString(row.CompanyID),
		CompanyName:  row.CompanyName,
		MaxUses:      int(row.MaxUses),
		UseCount:     int(row.UseCount),
		ExpiresAt:    fromMillis(row.ExpiresAt),
		Status:       domain.InvitationStatus(row.Status),
		CreatedBy:    row.CreatedBy,
		CreatedAt:    fromMillis(row.CreatedAt),
		AcceptedBy:   row.AcceptedBy,
		AcceptedAt:   mapNullMillis(row.AcceptedAt),
		RevokedAt:    mapNullMillis(row.RevokedAt),
		UpdatedAt:    fromMillis(row.UpdatedAt),
	}
}
