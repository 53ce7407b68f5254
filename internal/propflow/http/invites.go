package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/pkg/httpx"
	"github.com/aussiebroadwan/propflow/pkg/idx"
	"github.com/aussiebroadwan/propflow/pkg/propflowsdk"
)

const maxListLimit = 500

type InvitesHandler struct {
	InviteService *service.InviteService
}

// HandleIssue godoc
//
//	@Summary		Issue Invitation
//	@Description	Creates a platform, team or company_join invitation. Platform invitations need the platform:admin grant;
//	@Description	team and company_join invitations need an admin profile in the target company. The token is returned once.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		propflowsdk.IssueInvitationRequest	true	"Invitation parameters"
//	@Success		201		{object}	propflowsdk.IssueInvitationResponse	"invite, invite_token, invite_url"
//	@Failure		400		{object}	propflowsdk.ErrorResponse			"invalid_request"
//	@Failure		401		{object}	propflowsdk.ErrorResponse			"invalid_token"
//	@Failure		403		{object}	propflowsdk.ErrorResponse			"access_denied"
//	@Router			/v1/invites [post].
func (h *InvitesHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := principalFromContext(ctx)

	var req propflowsdk.IssueInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		propflowsdk.ErrInvalidRequest.WithDescription("request body must be a JSON object").WriteError(w)
		return
	}

	maxUses, expiresInDays := 1, service.DefaultExpiresInDays
	if req.MaxUses != nil {
		maxUses = *req.MaxUses
	}
	if req.ExpiresInDays != nil {
		expiresInDays = *req.ExpiresInDays
	}

	inv, token, err := h.InviteService.Issue(ctx, actor, service.IssueParams{
		Scope:         domain.InvitationScope(req.Scope),
		Label:         req.Label,
		Email:         req.Email,
		Role:          domain.Role(req.Role),
		AssignedPlan:  req.AssignedPlan,
		IsEnterprise:  req.IsEnterprise,
		CompanyID:     req.CompanyID,
		CompanyName:   req.CompanyName,
		MaxUses:       maxUses,
		ExpiresInDays: expiresInDays,
	})
	if err != nil {
		writeError(w, r, err, "failed to issue invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, propflowsdk.IssueInvitationResponse{
		Invite:      invitationResponse(inv, nowFrom(h.InviteService.Now)),
		InviteToken: token,
		InviteURL:   h.InviteService.InviteURL(token),
	})
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	Lists invitations newest first. Platform admins see every invitation; company admins only their company's.
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			company_id	query		string								false	"Company filter (platform admins only)"
//	@Param			scope		query		string								false	"platform, team or company_join"
//	@Param			status		query		string								false	"active, accepted or revoked"
//	@Param			limit		query		int									false	"Maximum results (default 100, max 500)"
//	@Success		200			{object}	propflowsdk.ListInvitationsResponse	"invites"
//	@Failure		400			{object}	propflowsdk.ErrorResponse			"invalid_request"
//	@Failure		403			{object}	propflowsdk.ErrorResponse			"access_denied"
//	@Router			/v1/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := principalFromContext(ctx)
	q := r.URL.Query()

	f := domain.InvitationFilter{
		CompanyID: q.Get("company_id"),
		Scope:     domain.InvitationScope(q.Get("scope")),
		Status:    domain.InvitationStatus(q.Get("status")),
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			propflowsdk.ErrInvalidRequest.WithDescription("limit must be between 1 and 500").WriteError(w)
			return
		}
		f.Limit = n
	}

	invites, err := h.InviteService.List(ctx, actor, f)
	if err != nil {
		writeError(w, r, err, "failed to list invitations")
		return
	}

	now := nowFrom(h.InviteService.Now)
	out := propflowsdk.ListInvitationsResponse{Invites: make([]propflowsdk.Invitation, 0, len(invites))}
	for _, inv := range invites {
		out.Invites = append(out.Invites, invitationResponse(inv, now))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invitation
//	@Description	Withdraws an active invitation. Revoking one that is no longer active reports its state.
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string									true	"Invitation ID"
//	@Success		200	{object}	propflowsdk.RevokeInvitationResponse	"invite"
//	@Failure		403	{object}	propflowsdk.ErrorResponse				"access_denied"
//	@Failure		404	{object}	propflowsdk.ErrorResponse				"not_found"
//	@Failure		410	{object}	propflowsdk.ErrorResponse				"expired, exhausted or revoked"
//	@Router			/v1/invites/{id}/revoke [post].
func (h *InvitesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := principalFromContext(ctx)

	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		propflowsdk.ErrNotFound.WithDescription("invitation not found").WriteError(w)
		return
	}

	inv, err := h.InviteService.Revoke(ctx, actor, id.String())
	if err != nil {
		writeError(w, r, err, "failed to revoke invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, propflowsdk.RevokeInvitationResponse{
		Invite: invitationResponse(inv, nowFrom(h.InviteService.Now)),
	})
}
