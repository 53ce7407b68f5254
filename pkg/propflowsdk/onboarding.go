package propflowsdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// OnboardingState is a step of the invitee signup form.
type OnboardingState string

const (
	StateLoading    OnboardingState = "loading"
	StateInvalid    OnboardingState = "invalid" // terminal: the invitation cannot be used
	StateReady      OnboardingState = "ready"   // collecting credentials
	StateSubmitting OnboardingState = "submitting"
	StateDone       OnboardingState = "done"
	StateFailed     OnboardingState = "failed" // retryable
)

// ErrInvalidTransition is returned when an action is not allowed in the
// current state, e.g. submitting twice.
var ErrInvalidTransition = errors.New("propflowsdk: action not allowed in current onboarding state")

// ValidationError lists form fields that failed local validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid signup form: %v", e.Fields)
}

// Onboarding drives the signup form for one invite link:
//
//	loading -> invalid | ready
//	ready -> submitting -> done | failed | invalid
//	failed -> submitting (retry)
//
// It holds no authoritative state; every decision is made by the server.
type Onboarding struct {
	client *Client
	token  string

	mu      sync.Mutex
	state   OnboardingState
	view    *InvitationView
	account *AccountRef
	err     error
}

// NewOnboarding starts the form for an invite token.
func NewOnboarding(c *Client, token string) *Onboarding {
	return &Onboarding{client: c, token: token, state: StateLoading}
}

// Load looks up the invitation. It may be called again after a failed
// load caused by a transport or server error.
func (o *Onboarding) Load(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateLoading && !(o.state == StateFailed && o.view == nil) {
		o.mu.Unlock()
		return ErrInvalidTransition
	}
	o.state = StateLoading
	o.mu.Unlock()

	view, err := o.client.LookupInvitation(ctx, o.token)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
	switch {
	case err == nil:
		o.view = view
		o.state = StateReady
	case IsInvitationError(err):
		o.state = StateInvalid
	default:
		o.state = StateFailed
	}
	return err
}

// Submit sends the form. The token always comes from the link the form
// was opened with. Local validation failures keep the form in ready.
func (o *Onboarding) Submit(ctx context.Context, req SignupRequest) (*AccountRef, error) {
	o.mu.Lock()
	if o.view == nil || (o.state != StateReady && o.state != StateFailed) {
		o.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if fields := req.Validate(*o.view); fields != nil {
		verr := &ValidationError{Fields: fields}
		o.err = verr
		o.state = StateReady
		o.mu.Unlock()
		return nil, verr
	}
	o.state = StateSubmitting
	o.err = nil
	o.mu.Unlock()

	req.Token = o.token
	account, err := o.client.SignupWithInvite(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
	switch {
	case err == nil:
		o.account = account
		o.state = StateDone
	case IsInvitationError(err):
		o.state = StateInvalid
	default:
		o.state = StateFailed
	}
	return account, err
}

// State returns the current step.
func (o *Onboarding) State() OnboardingState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Invitation returns the loaded invitation, nil before a successful load.
func (o *Onboarding) Invitation() *InvitationView {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

// Account returns the created account once done.
func (o *Onboarding) Account() *AccountRef {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.account
}

// Err returns the error behind the current state, if any.
func (o *Onboarding) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Toast returns the message to show for the current error, or "".
func (o *Onboarding) Toast() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err == nil {
		return ""
	}
	return ToastMessage(o.err)
}

// CanRetry reports whether the user can resubmit or reload.
func (o *Onboarding) CanRetry() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state == StateFailed || (o.state == StateReady && o.err != nil)
}

// IsInvitationError reports whether err means the invitation itself is
// unusable: not found, expired, exhausted or revoked.
func IsInvitationError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case ErrorCodeNotFound, ErrorCodeExpired, ErrorCodeExhausted, ErrorCodeRevoked:
		return true
	}
	return false
}

var toastByCode = map[string]string{
	ErrorCodeNotFound:           ErrNotFound.Description,
	ErrorCodeExpired:            ErrExpired.Description,
	ErrorCodeExhausted:          ErrExhausted.Description,
	ErrorCodeRevoked:            ErrRevoked.Description,
	ErrorCodeEmailLocked:        ErrEmailLocked.Description,
	ErrorCodeAccountExists:      ErrAccountExists.Description,
	ErrorCodeWeakCredential:     ErrWeakCredential.Description,
	ErrorCodeProvisioningFailed: ErrProvisioningFailed.Description,
	ErrorCodeRateLimitExceeded:  ErrRateLimitExceeded.Description,
}

// ToastMessage maps an error to a human-readable message. Raw server or
// storage text is never shown.
func ToastMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return "Please fix the highlighted fields."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg, ok := toastByCode[apiErr.Code]; ok {
			return msg
		}
		if apiErr.Code == ErrorCodeInvalidRequest {
			return "Some of the details you entered are not valid. Please check and try again."
		}
		return "Something went wrong on our side. Please try again."
	}
	return "We couldn't reach PropFlow. Check your connection and try again."
}
