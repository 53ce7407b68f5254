package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/pkg/propflowsdk"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

var errBootstrapToken = &propflowsdk.APIError{
	StatusCode:  http.StatusUnauthorized,
	Code:        "unauthorized",
	Description: "a valid X-Bootstrap-Token header is required",
}

// apiError maps a service error to the response the client sees. Storage
// and driver text never reaches the body.
func apiError(err error) *propflowsdk.APIError {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return propflowsdk.ErrNotFound
	case errors.Is(err, service.ErrRevoked):
		return propflowsdk.ErrRevoked
	case errors.Is(err, service.ErrExpired):
		return propflowsdk.ErrExpired
	case errors.Is(err, service.ErrExhausted):
		return propflowsdk.ErrExhausted
	case errors.Is(err, service.ErrEmailLocked):
		return propflowsdk.ErrEmailLocked
	case errors.Is(err, service.ErrAccountExists):
		return propflowsdk.ErrAccountExists
	case errors.Is(err, service.ErrWeakCredential):
		return propflowsdk.ErrWeakCredential
	case errors.Is(err, service.ErrInvalidArgument):
		return propflowsdk.ErrInvalidRequest.WithDescription(
			strings.TrimPrefix(err.Error(), service.ErrInvalidArgument.Error()+": "))
	case errors.Is(err, service.ErrUnauthorized):
		return propflowsdk.ErrAccessDenied
	case errors.Is(err, service.ErrInvalidCredentials):
		return propflowsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrProvisioningFailed):
		return propflowsdk.ErrProvisioningFailed
	case errors.Is(err, service.ErrBootstrapAlready):
		return propflowsdk.ErrAlreadyBootstrapped
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		return errBootstrapToken
	default:
		return nil
	}
}

// writeError writes the mapped error, or logs err and writes a generic
// server error when it has no mapping.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if apiErr := apiError(err); apiErr != nil {
		apiErr.WriteError(w)
		return
	}
	slogx.FromContext(r.Context()).Error(msg, slogx.Err(err))
	propflowsdk.ErrServerError.WriteError(w)
}
