package propflowsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// ErrSessionExpired is returned locally once the access token has expired.
// Sessions do not refresh; log in again.
var ErrSessionExpired = errors.New("propflowsdk: session expired")

// Session holds one access token. It is safe for concurrent use and is
// discarded on sign-out; nothing about it is global.
type Session struct {
	client *Client

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
}

func newSession(c *Client, tok TokenResponse) *Session {
	// 30 second buffer so a token never expires mid-request.
	expiresAt := time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - 30*time.Second)
	return &Session{
		client:      c,
		accessToken: tok.AccessToken,
		expiresAt:   expiresAt,
	}
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Expired reports whether the token is past its (buffered) expiry.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !time.Now().Before(s.expiresAt)
}

// Close forgets the token.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.expiresAt = time.Time{}
}

func (s *Session) doAuthRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	s.mu.RLock()
	token, expiresAt := s.accessToken, s.expiresAt
	s.mu.RUnlock()

	if token == "" || !time.Now().Before(expiresAt) {
		return nil, ErrSessionExpired
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// Me returns the caller's profile, company, plan and permissions.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil)
	if err != nil {
		return nil, err
	}

	var out MeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// IssueInvitation creates an invitation. The returned token is not
// retrievable again.
func (s *Session) IssueInvitation(ctx context.Context, req IssueInvitationRequest) (*IssueInvitationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invites", req)
	if err != nil {
		return nil, err
	}

	var out IssueInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations lists invitations visible to the caller.
func (s *Session) ListInvitations(ctx context.Context, req ListInvitationsRequest) ([]Invitation, error) {
	q := url.Values{}
	if req.CompanyID != "" {
		q.Set("company_id", req.CompanyID)
	}
	if req.Scope != "" {
		q.Set("scope", req.Scope)
	}
	if req.Status != "" {
		q.Set("status", req.Status)
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	path := "/v1/invites"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out ListInvitationsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Invites, nil
}

// RevokeInvitation withdraws an active invitation.
func (s *Session) RevokeInvitation(ctx context.Context, id string) (*Invitation, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invites/"+url.PathEscape(id)+"/revoke", nil)
	if err != nil {
		return nil, err
	}

	var out RevokeInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Invite, nil
}
