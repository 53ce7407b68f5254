package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/pkg/cryptox"
	"github.com/aussiebroadwan/propflow/pkg/idx"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

// Limits on invitation lifetimes.
const (
	DefaultExpiresInDays = 7
	MaxExpiresInDays     = 90
)

type InviteService struct {
	Store    store.Store
	Plans    *PlanCatalogue
	Notifier InvitationNotifier

	// BaseURL is the public origin invite links point at, e.g.
	// https://app.propflow.example. Links take the form BaseURL/invite/{token}.
	BaseURL string

	Now func() time.Time
}

// IssueParams is an issue request. MaxUses and ExpiresInDays must both be at
// least 1; team invitations allow exactly one use.
type IssueParams struct {
	Scope        domain.InvitationScope
	Label        string
	Email        string
	Role         domain.Role
	AssignedPlan string
	IsEnterprise bool
	CompanyID    string
	CompanyName  string

	MaxUses       int
	ExpiresInDays int
}

// Issue creates an invitation and returns it with the plaintext token. The
// token is returned exactly once; only its fingerprint is stored.
func (s *InviteService) Issue(ctx context.Context, actor domain.Principal, p IssueParams) (domain.Invitation, string, error) {
	ctx, span := tracer.Start(ctx, "InviteService.Issue")
	defer span.End()
	span.SetAttributes(attribute.String("invitation.scope", string(p.Scope)))

	log := slogx.FromContext(ctx)

	if !p.Scope.Valid() {
		return domain.Invitation{}, "", fmt.Errorf("%w: unknown scope %q", ErrInvalidArgument, p.Scope)
	}
	if err := authorizeScope(actor, p.Scope, p.CompanyID); err != nil {
		log.Warn("invitation issue denied",
			slog.String("actor", actor.IdentityID),
			slog.String("scope", string(p.Scope)),
			slog.String("company_id", p.CompanyID),
		)
		return domain.Invitation{}, "", err
	}

	inv, err := s.buildInvitation(ctx, actor, p)
	if err != nil {
		return domain.Invitation{}, "", err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slogx.Err(err))
		span.SetStatus(codes.Error, "token generation")
		return domain.Invitation{}, "", err
	}
	inv.TokenHash = cryptox.FingerprintToken(token)

	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		log.Error("failed to create invitation",
			slog.String("invitation_id", inv.ID),
			slogx.Err(err),
		)
		span.SetStatus(codes.Error, "create invitation")
		return domain.Invitation{}, "", err
	}

	log.Info("invitation issued",
		slog.String("invitation_id", inv.ID),
		slog.String("scope", string(inv.Scope)),
		slog.String("company_id", inv.CompanyID),
		slog.String("role", inv.Role.String()),
		slog.Int("max_uses", inv.MaxUses),
		slog.Time("expires_at", inv.ExpiresAt),
		slogx.TokenHint(inv.TokenHash),
	)

	if inv.Email != "" && s.Notifier != nil {
		if err := s.Notifier.NotifyInvitation(ctx, inv, s.InviteURL(token)); err != nil {
			log.Warn("invitation notification failed",
				slog.String("invitation_id", inv.ID),
				slogx.Email(inv.Email),
				slogx.Err(err),
			)
		}
	}

	return inv, token, nil
}

func (s *InviteService) buildInvitation(ctx context.Context, actor domain.Principal, p IssueParams) (domain.Invitation, error) {
	now := clock(s.Now)

	if p.MaxUses < 1 {
		return domain.Invitation{}, fmt.Errorf("%w: max_uses must be at least 1", ErrInvalidArgument)
	}
	if p.ExpiresInDays < 1 || p.ExpiresInDays > MaxExpiresInDays {
		return domain.Invitation{}, fmt.Errorf("%w: expires_in_days must be between 1 and %d", ErrInvalidArgument, MaxExpiresInDays)
	}

	inv := domain.Invitation{
		ID:           idx.NewAt(now).String(),
		Scope:        p.Scope,
		Label:        strings.TrimSpace(p.Label),
		Role:         p.Role,
		AssignedPlan: p.AssignedPlan,
		IsEnterprise: p.IsEnterprise,
		CompanyName:  strings.TrimSpace(p.CompanyName),
		MaxUses:      p.MaxUses,
		ExpiresAt:    now.Add(time.Duration(p.ExpiresInDays) * 24 * time.Hour),
		Status:       domain.StatusActive,
		CreatedBy:    actor.IdentityID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if p.Email != "" {
		email, err := NormalizeEmail(p.Email)
		if err != nil {
			return domain.Invitation{}, err
		}
		inv.Email = email
	}

	if inv.Role == "" && p.Scope == domain.ScopePlatform {
		inv.Role = domain.RoleAdmin
	}
	if _, err := domain.ParseRole(string(inv.Role)); err != nil {
		return domain.Invitation{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	switch p.Scope {
	case domain.ScopePlatform:
		if p.CompanyID != "" {
			return domain.Invitation{}, fmt.Errorf("%w: platform invitations create a new company", ErrInvalidArgument)
		}
		if p.AssignedPlan == "" {
			return domain.Invitation{}, fmt.Errorf("%w: assigned_plan is required", ErrInvalidArgument)
		}
		if s.Plans != nil && !s.Plans.Has(p.AssignedPlan) {
			return domain.Invitation{}, fmt.Errorf("%w: unknown plan %q", ErrInvalidArgument, p.AssignedPlan)
		}

	case domain.ScopeTeam, domain.ScopeCompanyJoin:
		if p.Scope == domain.ScopeTeam && p.MaxUses > 1 {
			return domain.Invitation{}, fmt.Errorf("%w: team invitations are single use", ErrInvalidArgument)
		}
		company, err := s.Store.Companies().GetCompanyByID(ctx, p.CompanyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Invitation{}, fmt.Errorf("%w: company %q does not exist", ErrInvalidArgument, p.CompanyID)
			}
			return domain.Invitation{}, err
		}
		inv.CompanyID = company.ID
		inv.CompanyName = company.Name
		inv.AssignedPlan = company.Plan
		inv.IsEnterprise = company.IsEnterprise
	}

	return inv, nil
}

// authorizeScope checks that actor may manage invitations of scope for
// companyID. Platform admins may manage every scope.
func authorizeScope(actor domain.Principal, scope domain.InvitationScope, companyID string) error {
	if actor.HasGrant(domain.CapPlatformAdmin) {
		return nil
	}
	if scope == domain.ScopePlatform {
		return ErrUnauthorized
	}
	if !actor.IsCompanyAdmin(companyID) {
		return ErrUnauthorized
	}
	return nil
}

// InviteURL renders the public link for a token.
func (s *InviteService) InviteURL(token string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/invite/" + url.PathEscape(token)
}

// Validate resolves a token to its invitation without changing anything.
// Errors are ErrNotFound, ErrRevoked, ErrExpired or ErrExhausted.
func (s *InviteService) Validate(ctx context.Context, token string) (domain.Invitation, error) {
	ctx, span := tracer.Start(ctx, "InviteService.Validate")
	defer span.End()

	log := slogx.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Invitation{}, ErrNotFound
	}
	hash := cryptox.FingerprintToken(token)

	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("invitation lookup miss", slogx.TokenHint(hash))
			return domain.Invitation{}, ErrNotFound
		}
		log.Error("failed to look up invitation", slogx.Err(err))
		return domain.Invitation{}, err
	}

	state := inv.Evaluate(clock(s.Now))
	span.SetAttributes(attribute.String("invitation.state", string(state)))
	if err := stateError(state); err != nil {
		log.Debug("invitation not acceptable",
			slog.String("invitation_id", inv.ID),
			slog.String("state", string(state)),
		)
		return inv, err
	}
	return inv, nil
}

// Revoke moves an active invitation to revoked. Revoking one that is no
// longer active reports why it is not.
func (s *InviteService) Revoke(ctx context.Context, actor domain.Principal, id string) (domain.Invitation, error) {
	ctx, span := tracer.Start(ctx, "InviteService.Revoke")
	defer span.End()

	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrNotFound
		}
		return domain.Invitation{}, err
	}
	if err := authorizeScope(actor, inv.Scope, inv.CompanyID); err != nil {
		log.Warn("invitation revoke denied",
			slog.String("actor", actor.IdentityID),
			slog.String("invitation_id", id),
		)
		return domain.Invitation{}, err
	}

	now := clock(s.Now)
	if err := s.Store.Invitations().RevokeInvitation(ctx, id, now); err != nil {
		if errors.Is(err, store.ErrConflict) {
			current, gerr := s.Store.Invitations().GetInvitationByID(ctx, id)
			if gerr != nil {
				return domain.Invitation{}, gerr
			}
			if serr := stateError(current.Evaluate(now)); serr != nil {
				return current, serr
			}
			return current, ErrExhausted
		}
		log.Error("failed to revoke invitation", slog.String("invitation_id", id), slogx.Err(err))
		return domain.Invitation{}, err
	}

	inv.Status = domain.StatusRevoked
	inv.RevokedAt = &now
	inv.UpdatedAt = now

	log.Info("invitation revoked",
		slog.String("invitation_id", id),
		slog.String("actor", actor.IdentityID),
	)
	return inv, nil
}

// List returns invitations visible to actor. Company admins only ever see
// their own company's invitations regardless of the filter.
func (s *InviteService) List(ctx context.Context, actor domain.Principal, f domain.InvitationFilter) ([]domain.Invitation, error) {
	ctx, span := tracer.Start(ctx, "InviteService.List")
	defer span.End()

	switch {
	case actor.HasGrant(domain.CapPlatformAdmin), actor.Can(domain.PermListAllInvites):
	case actor.Profile != nil && actor.IsCompanyAdmin(actor.Profile.CompanyID):
		f.CompanyID = actor.Profile.CompanyID
		if f.Scope == domain.ScopePlatform {
			return nil, nil
		}
	default:
		return nil, ErrUnauthorized
	}

	if f.Scope != "" && !f.Scope.Valid() {
		return nil, fmt.Errorf("%w: unknown scope %q", ErrInvalidArgument, f.Scope)
	}
	switch f.Status {
	case "", domain.StatusActive, domain.StatusAccepted, domain.StatusRevoked:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, f.Status)
	}

	return s.Store.Invitations().ListInvitations(ctx, f)
}
