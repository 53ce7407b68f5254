package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/pkg/idx"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

// ProvisionService turns a valid invitation plus submitted credentials into
// an identity, a profile and, for platform invitations, a company.
type ProvisionService struct {
	Store      store.Store
	Invites    *InviteService
	Identities IdentityProvider
	Now        func() time.Time
}

// Accept provisions an account from an invitation. The role always comes
// from the invitation; nothing the client submits can change it.
//
// The identity is created before the transaction that consumes the
// invitation. If the transaction fails the identity is deleted again, and
// a lost consume race is reported as the invitation's current state.
func (s *ProvisionService) Accept(ctx context.Context, token string, creds domain.Credentials) (domain.AccountRef, error) {
	ctx, span := tracer.Start(ctx, "ProvisionService.Accept")
	defer span.End()

	log := slogx.FromContext(ctx)

	inv, err := s.Invites.Validate(ctx, token)
	if err != nil {
		return domain.AccountRef{}, err
	}
	span.SetAttributes(
		attribute.String("invitation.id", inv.ID),
		attribute.String("invitation.scope", string(inv.Scope)),
	)
	log = log.With(slog.String("invitation_id", inv.ID))

	email, err := NormalizeEmail(creds.Email)
	if err != nil {
		return domain.AccountRef{}, err
	}
	fullName := strings.TrimSpace(creds.FullName)
	if fullName == "" {
		return domain.AccountRef{}, fmt.Errorf("%w: full name is required", ErrInvalidArgument)
	}

	companyName := strings.TrimSpace(creds.CompanyName)
	if companyName == "" {
		companyName = inv.CompanyName
	}
	if inv.Scope.CreatesCompany() && companyName == "" {
		return domain.AccountRef{}, fmt.Errorf("%w: company name is required", ErrInvalidArgument)
	}

	if inv.Email != "" && !strings.EqualFold(inv.Email, email) {
		log.Warn("invitation email mismatch", slogx.Email(email))
		return domain.AccountRef{}, ErrEmailLocked
	}

	if err := CheckPasswordPolicy(creds.Password); err != nil {
		return domain.AccountRef{}, err
	}

	userID, err := s.Identities.CreateIdentity(ctx, email, creds.Password)
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			log.Info("signup for existing account", slogx.Email(email))
			return domain.AccountRef{}, ErrAccountExists
		}
		log.Error("failed to create identity", slogx.Err(err))
		span.SetStatus(codes.Error, "create identity")
		return domain.AccountRef{}, ErrProvisioningFailed
	}

	now := clock(s.Now)
	ref := domain.AccountRef{
		UserID:    userID,
		Email:     email,
		CompanyID: inv.CompanyID,
		Role:      inv.Role,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().ConsumeInvitation(ctx, inv.ID, userID, now); err != nil {
			return err
		}

		if inv.Scope.CreatesCompany() {
			company := domain.Company{
				ID:           idx.NewAt(now).String(),
				Name:         companyName,
				Plan:         inv.AssignedPlan,
				IsEnterprise: inv.IsEnterprise,
				CreatedBy:    userID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Companies().CreateCompany(ctx, company); err != nil {
				return fmt.Errorf("create company: %w", err)
			}
			ref.CompanyID = company.ID
		}

		return tx.Profiles().CreateProfile(ctx, domain.Profile{
			ID:        userID,
			Email:     email,
			FullName:  fullName,
			Role:      inv.Role,
			CompanyID: ref.CompanyID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		if derr := s.Identities.DeleteIdentity(context.WithoutCancel(ctx), userID); derr != nil {
			log.Error("failed to remove identity after provisioning failure",
				slog.String("identity_id", userID),
				slogx.Err(derr),
			)
		}

		if errors.Is(err, store.ErrConflict) {
			return domain.AccountRef{}, s.reclassify(ctx, inv.ID, now)
		}
		log.Error("provisioning transaction failed", slogx.Err(err))
		span.SetStatus(codes.Error, "provision")
		return domain.AccountRef{}, ErrProvisioningFailed
	}

	log.Info("account provisioned",
		slog.String("user_id", userID),
		slog.String("company_id", ref.CompanyID),
		slog.String("role", ref.Role.String()),
		slog.String("scope", string(inv.Scope)),
	)
	return ref, nil
}

// reclassify reports why a consume matched no row.
func (s *ProvisionService) reclassify(ctx context.Context, id string, now time.Time) error {
	current, err := s.Store.Invitations().GetInvitationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return ErrProvisioningFailed
	}
	if serr := stateError(current.Evaluate(now)); serr != nil {
		return serr
	}
	return ErrExhausted
}
