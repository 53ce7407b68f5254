package propflowsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to the PropFlow onboarding service. Public operations live on
// Client; authenticated ones on the Session returned by Login.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSessionFromToken wraps an access token obtained elsewhere.
func (c *Client) NewSessionFromToken(accessToken string, expiresIn int64) *Session {
	return newSession(c, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	})
}
