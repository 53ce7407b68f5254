package propflowsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/propflow/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	// Invitation state. Terminal for the invitee: only a new invitation helps.
	ErrorCodeNotFound  = "not_found"
	ErrorCodeExpired   = "expired"
	ErrorCodeExhausted = "exhausted"
	ErrorCodeRevoked   = "revoked"

	// Credential problems the invitee can fix and resubmit.
	ErrorCodeEmailLocked    = "email_locked"
	ErrorCodeAccountExists  = "account_exists"
	ErrorCodeWeakCredential = "weak_credential"

	ErrorCodeProvisioningFailed = "provisioning_failed"
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeAccessDenied       = "access_denied"
	ErrorCodeRateLimitExceeded  = "rate_limit_exceeded"
	ErrorCodeAlreadyBootstrap   = "already_bootstrapped"
	ErrorCodeServerError        = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the error body every endpoint returns. The server writes it
// with WriteError; the client decodes non-2xx responses into it.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on Code so callers can write errors.Is(err, propflowsdk.ErrExpired)
// regardless of the description the server chose.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// WithDescription returns a copy of e with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	c := *e
	c.Description = desc
	return &c
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "This invitation link is not valid. Check the link or ask for a new invitation.",
	}

	ErrExpired = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeExpired,
		Description: "This invitation has expired. Ask the sender for a new one.",
	}

	ErrExhausted = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeExhausted,
		Description: "This invitation has already been used.",
	}

	ErrRevoked = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeRevoked,
		Description: "This invitation has been withdrawn by the sender.",
	}

	ErrEmailLocked = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailLocked,
		Description: "This invitation was sent to a different email address. Sign up with the address it was sent to.",
	}

	ErrAccountExists = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAccountExists,
		Description: "An account with this email already exists. Sign in instead.",
	}

	ErrWeakCredential = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeWeakCredential,
		Description: "Password must be at least 8 characters and contain a letter and a number.",
	}

	ErrProvisioningFailed = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeProvisioningFailed,
		Description: "We couldn't finish creating your account. Please try again; if it keeps failing, ask for a new invitation.",
	}

	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	ErrAccessDenied = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "you are not allowed to perform this action",
	}

	ErrRateLimitExceeded = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeRateLimitExceeded,
		Description: "Too many requests. Please try again later.",
	}

	ErrAlreadyBootstrapped = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyBootstrap,
		Description: "system already bootstrapped",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("unexpected status %d", resp.StatusCode),
	}
}
