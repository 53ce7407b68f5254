package http

import (
	"net/http"

	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/pkg/httpx"
	"github.com/aussiebroadwan/propflow/pkg/propflowsdk"
)

type InviteLookupHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Look Up Invitation
//	@Description	Resolves an invite token to the role and company context shown before signup. Read only.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string									true	"Invite token from the link"
//	@Success		200		{object}	propflowsdk.LookupInvitationResponse	"invitation"
//	@Failure		404		{object}	propflowsdk.ErrorResponse				"not_found"
//	@Failure		410		{object}	propflowsdk.ErrorResponse				"expired, exhausted or revoked"
//	@Router			/v1/invites/lookup [get].
func (h *InviteLookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	inv, err := h.InviteService.Validate(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, r, err, "failed to look up invitation")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, propflowsdk.LookupInvitationResponse{
		Invitation: invitationView(inv),
	})
}
