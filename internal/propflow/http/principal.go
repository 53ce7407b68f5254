package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/pkg/httpx"
	"github.com/aussiebroadwan/propflow/pkg/propflowsdk"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

type principalKey struct{}

// PrincipalMiddleware loads the caller's principal once per request. It
// must run after httpx.AuthnMiddleware.
func PrincipalMiddleware(ps *service.PrincipalService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			subject, ok := httpx.SubjectFromContext(ctx)
			if !ok {
				propflowsdk.ErrInvalidToken.WriteError(w)
				return
			}

			p, err := ps.Load(ctx, subject)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					propflowsdk.ErrInvalidToken.WithDescription("the account for this token no longer exists").WriteError(w)
					return
				}
				slogx.FromContext(ctx).Error("failed to load principal", slogx.Err(err))
				propflowsdk.ErrServerError.WriteError(w)
				return
			}

			ctx = context.WithValue(ctx, principalKey{}, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalFromContext returns the principal set by PrincipalMiddleware.
func principalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}
