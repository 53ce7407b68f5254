package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/pkg/idx"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates the first platform administrator. It is only
// usable while no identity exists and a token has been configured.
type BootstrapService struct {
	Store      store.Store
	Identities IdentityProvider
	Plans      *PlanCatalogue
	Token      string
	Now        func() time.Time
}

// BootstrapResult identifies what was created.
type BootstrapResult struct {
	AdminID   string
	CompanyID string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Identities().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (BootstrapResult, error) {
	ctx, span := tracer.Start(ctx, "BootstrapService.Bootstrap")
	defer span.End()

	l := slogx.FromContext(ctx)

	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return BootstrapResult{}, ErrBootstrapUnauthorized
	}

	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return BootstrapResult{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return BootstrapResult{}, ErrBootstrapAlready
	}

	email, err := NormalizeEmail(req.AdminEmail)
	if err != nil {
		return BootstrapResult{}, err
	}
	name := strings.TrimSpace(req.AdminFullName)
	if name == "" {
		name = email
	}
	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return BootstrapResult{}, fmt.Errorf("%w: company name is required", ErrInvalidArgument)
	}
	if req.CompanyPlan == "" {
		req.CompanyPlan = "enterprise"
	}
	if s.Plans != nil && !s.Plans.Has(req.CompanyPlan) {
		return BootstrapResult{}, fmt.Errorf("%w: unknown plan %q", ErrInvalidArgument, req.CompanyPlan)
	}
	if err := CheckPasswordPolicy(req.AdminPassword); err != nil {
		return BootstrapResult{}, err
	}

	adminID, err := s.Identities.CreateIdentity(ctx, email, req.AdminPassword)
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			return BootstrapResult{}, ErrBootstrapAlready
		}
		l.Error("failed to create admin identity", slogx.Err(err))
		return BootstrapResult{}, err
	}

	now := clock(s.Now)
	res := BootstrapResult{AdminID: adminID, CompanyID: idx.NewAt(now).String()}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Another bootstrap may have committed since the check above.
		held, err := tx.Grants().AnyGrant(ctx, domain.CapPlatformAdmin)
		if err != nil {
			return fmt.Errorf("check platform admin: %w", err)
		}
		if held {
			return ErrBootstrapAlready
		}
		if err := tx.Companies().CreateCompany(ctx, domain.Company{
			ID:           res.CompanyID,
			Name:         companyName,
			Plan:         req.CompanyPlan,
			IsEnterprise: true,
			CreatedBy:    adminID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("create company: %w", err)
		}
		if err := tx.Profiles().CreateProfile(ctx, domain.Profile{
			ID:        adminID,
			Email:     email,
			FullName:  name,
			Role:      domain.RoleAdmin,
			CompanyID: res.CompanyID,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return tx.Grants().CreateGrant(ctx, domain.Grant{
			IdentityID: adminID,
			Capability: domain.CapPlatformAdmin,
			GrantedBy:  adminID,
			CreatedAt:  now,
		})
	})
	if err != nil {
		if derr := s.Identities.DeleteIdentity(context.WithoutCancel(ctx), adminID); derr != nil {
			l.Error("failed to remove admin identity after bootstrap failure", slogx.Err(derr))
		}
		if errors.Is(err, ErrBootstrapAlready) {
			l.Warn("concurrent bootstrap lost the race", slog.String("admin_id", adminID))
			return BootstrapResult{}, err
		}
		l.Error("bootstrap failed", slogx.Err(err))
		return BootstrapResult{}, err
	}

	l.Info("system bootstrapped",
		slog.String("admin_id", adminID),
		slog.String("company_id", res.CompanyID),
	)
	return res, nil
}
