package http

import (
	"net/http"

	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/pkg/httpx"
	"github.com/aussiebroadwan/propflow/pkg/propflowsdk"
)

type SessionHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Log In
//	@Description	Exchanges email and password for an EdDSA-signed access token.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		propflowsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	propflowsdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	propflowsdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	propflowsdk.ErrorResponse	"invalid_credentials"
//	@Router			/v1/sessions [post].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req propflowsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		propflowsdk.ErrInvalidRequest.WithDescription("request body must be a JSON object").WriteError(w)
		return
	}

	pair, err := h.SessionService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, "failed to log in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, propflowsdk.TokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   pair.ExpiresIn,
	})
}

// MeHandler godoc
//
//	@Summary		Current Principal
//	@Description	Returns the caller's profile, company, plan, grants and derived permissions.
//	@Tags			Sessions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	propflowsdk.MeResponse		"principal"
//	@Failure		401	{object}	propflowsdk.ErrorResponse	"invalid_token"
//	@Router			/v1/me [get].
func MeHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(r.Context())
	if !ok {
		propflowsdk.ErrInvalidToken.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, meResponse(p))
}
