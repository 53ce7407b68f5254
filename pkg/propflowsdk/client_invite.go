package propflowsdk

import (
	"context"
	"net/http"
	"net/url"
)

// LookupInvitation resolves an invite token to the context the invitee
// sees before signing up. Unusable invitations come back as ErrNotFound,
// ErrExpired, ErrExhausted or ErrRevoked.
func (c *Client) LookupInvitation(ctx context.Context, token string) (*InvitationView, error) {
	resp, err := c.doRequest(ctx, http.MethodGet,
		"/v1/invites/lookup?token="+url.QueryEscape(token), nil, nil)
	if err != nil {
		return nil, err
	}

	var out LookupInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Invitation, nil
}

// SignupWithInvite accepts an invitation and creates the account.
func (c *Client) SignupWithInvite(ctx context.Context, req SignupRequest) (*AccountRef, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/signup-with-invite", req, nil)
	if err != nil {
		return nil, err
	}

	var out SignupResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Account, nil
}
