package http

import (
	"net/http"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/pkg/httpx"
	"github.com/aussiebroadwan/propflow/pkg/propflowsdk"
)

type SignupHandler struct {
	ProvisionService *service.ProvisionService
}

// ServeHTTP godoc
//
//	@Summary		Sign Up With Invitation
//	@Description	Creates an account from an invitation. The role always comes from the invitation; a role in the body is ignored.
//	@Description	Platform invitations also create the company, named from company_name or the invitation's suggestion.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		propflowsdk.SignupRequest	true	"Invite token and credentials"
//	@Success		200		{object}	propflowsdk.SignupResponse	"account"
//	@Failure		400		{object}	propflowsdk.ErrorResponse	"invalid_request or weak_credential"
//	@Failure		404		{object}	propflowsdk.ErrorResponse	"not_found"
//	@Failure		409		{object}	propflowsdk.ErrorResponse	"email_locked or account_exists"
//	@Failure		410		{object}	propflowsdk.ErrorResponse	"expired, exhausted or revoked"
//	@Failure		500		{object}	propflowsdk.ErrorResponse	"provisioning_failed"
//	@Router			/v1/signup-with-invite [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req propflowsdk.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		propflowsdk.ErrInvalidRequest.WithDescription("request body must be a JSON object").WriteError(w)
		return
	}
	if req.Token == "" {
		propflowsdk.ErrInvalidRequest.WithDescription("token is required").WriteError(w)
		return
	}

	ref, err := h.ProvisionService.Accept(r.Context(), req.Token, domain.Credentials{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		writeError(w, r, err, "failed to provision account")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, propflowsdk.SignupResponse{Account: propflowsdk.AccountRef{
		UserID:    ref.UserID,
		Email:     ref.Email,
		CompanyID: ref.CompanyID,
		Role:      ref.Role.String(),
	}})
}
