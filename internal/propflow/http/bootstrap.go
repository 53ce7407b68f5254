package http

import (
	"net/http"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/pkg/httpx"
	"github.com/aussiebroadwan/propflow/pkg/propflowsdk"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the one-time creation of the first platform admin.
//
//	@Summary		Bootstrap the platform
//	@Description	Creates the first platform administrator, their operator company and the platform:admin grant.
//	@Description	Only available when a bootstrap token is configured and no account exists yet.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string							true	"Bootstrap token"
//	@Param			request				body		propflowsdk.BootstrapRequest	true	"First administrator"
//	@Success		201					{object}	propflowsdk.BootstrapResponse	"admin_user_id, company_id"
//	@Failure		400					{object}	propflowsdk.ErrorResponse		"invalid_request or weak_credential"
//	@Failure		401					{object}	propflowsdk.ErrorResponse		"missing or invalid bootstrap token"
//	@Failure		404					{object}	propflowsdk.ErrorResponse		"bootstrap not enabled"
//	@Failure		409					{object}	propflowsdk.ErrorResponse		"already_bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	if h.BootstrapService.Token == "" {
		propflowsdk.ErrNotFound.WithDescription("bootstrap is not enabled").WriteError(w)
		return
	}

	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		errBootstrapToken.WriteError(w)
		return
	}

	var req propflowsdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		propflowsdk.ErrInvalidRequest.WithDescription("request body must be a JSON object").WriteError(w)
		return
	}

	res, err := h.BootstrapService.Bootstrap(r.Context(), token, domain.BootstrapData{
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
		AdminFullName: req.AdminFullName,
		CompanyName:   req.CompanyName,
		CompanyPlan:   req.CompanyPlan,
	})
	if err != nil {
		writeError(w, r, err, "bootstrap failed")
		return
	}

	l.Info("bootstrap completed")
	httpx.WriteJSON(w, http.StatusCreated, propflowsdk.BootstrapResponse{
		AdminUserID: res.AdminID,
		CompanyID:   res.CompanyID,
	})
}
