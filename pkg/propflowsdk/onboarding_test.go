package propflowsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/propflow/pkg/httpx"
)

// fakeServer serves lookup and signup with canned outcomes.
type fakeServer struct {
	lookupErr *APIError
	signupErr []*APIError // consumed in order, nil means success
	signups   atomic.Int32

	mu       sync.Mutex
	lastBody SignupRequest
}

func (f *fakeServer) last() SignupRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody
}

func (f *fakeServer) start(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/invites/lookup", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") == "" {
			ErrNotFound.WriteError(w)
			return
		}
		if f.lookupErr != nil {
			f.lookupErr.WriteError(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, LookupInvitationResponse{Invitation: InvitationView{
			Scope:       "team",
			Role:        "agent",
			CompanyName: "Acme Realty",
			Email:       "alex@acme.test",
			ExpiresAt:   time.Now().Add(time.Hour),
		}})
	})
	mux.HandleFunc("POST /v1/signup-with-invite", func(w http.ResponseWriter, r *http.Request) {
		n := int(f.signups.Add(1)) - 1
		var body SignupRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.lastBody = body
		f.mu.Unlock()
		if n < len(f.signupErr) && f.signupErr[n] != nil {
			f.signupErr[n].WriteError(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, SignupResponse{Account: AccountRef{
			UserID: "u1", Email: body.Email, CompanyID: "c1", Role: "agent",
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

var validForm = SignupRequest{
	Email:    "alex@acme.test",
	Password: "hunter2hunter2",
	FullName: "Alex Agent",
}

func TestOnboardingHappyPath(t *testing.T) {
	t.Parallel()
	f := &fakeServer{}
	ob := NewOnboarding(f.start(t), "tok")
	ctx := context.Background()

	require.Equal(t, StateLoading, ob.State())
	require.NoError(t, ob.Load(ctx))
	require.Equal(t, StateReady, ob.State())
	require.Equal(t, "Acme Realty", ob.Invitation().CompanyName)

	form := validForm
	form.Token = "tampered"
	account, err := ob.Submit(ctx, form)
	require.NoError(t, err)
	require.Equal(t, StateDone, ob.State())
	require.Equal(t, "u1", account.UserID)
	require.Equal(t, "tok", f.last().Token, "token comes from the link")
	require.Empty(t, ob.Toast())

	_, err = ob.Submit(ctx, validForm)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOnboardingInvalidInvitation(t *testing.T) {
	t.Parallel()

	for _, apiErr := range []*APIError{ErrNotFound, ErrExpired, ErrExhausted, ErrRevoked} {
		t.Run(apiErr.Code, func(t *testing.T) {
			f := &fakeServer{lookupErr: apiErr}
			ob := NewOnboarding(f.start(t), "tok")

			err := ob.Load(context.Background())
			require.ErrorIs(t, err, apiErr)
			require.Equal(t, StateInvalid, ob.State())
			require.Equal(t, apiErr.Description, ob.Toast())
			require.False(t, ob.CanRetry())

			_, err = ob.Submit(context.Background(), validForm)
			require.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestOnboardingCredentialErrorsAreRetryable(t *testing.T) {
	t.Parallel()
	f := &fakeServer{signupErr: []*APIError{ErrAccountExists, ErrProvisioningFailed}}
	ob := NewOnboarding(f.start(t), "tok")
	ctx := context.Background()
	require.NoError(t, ob.Load(ctx))

	_, err := ob.Submit(ctx, validForm)
	require.ErrorIs(t, err, ErrAccountExists)
	require.Equal(t, StateFailed, ob.State())
	require.True(t, ob.CanRetry())
	require.Equal(t, ErrAccountExists.Description, ob.Toast())

	_, err = ob.Submit(ctx, validForm)
	require.ErrorIs(t, err, ErrProvisioningFailed)
	require.Equal(t, StateFailed, ob.State())

	_, err = ob.Submit(ctx, validForm)
	require.NoError(t, err)
	require.Equal(t, StateDone, ob.State())
	require.Equal(t, int32(3), f.signups.Load())
}

func TestOnboardingExhaustedOnSubmitIsTerminal(t *testing.T) {
	t.Parallel()
	f := &fakeServer{signupErr: []*APIError{ErrExhausted}}
	ob := NewOnboarding(f.start(t), "tok")
	require.NoError(t, ob.Load(context.Background()))

	_, err := ob.Submit(context.Background(), validForm)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, StateInvalid, ob.State())
	require.Equal(t, "This invitation has already been used.", ob.Toast())
}

func TestOnboardingLocalValidation(t *testing.T) {
	t.Parallel()
	f := &fakeServer{}
	ob := NewOnboarding(f.start(t), "tok")
	require.NoError(t, ob.Load(context.Background()))

	_, err := ob.Submit(context.Background(), SignupRequest{
		Email:    "someone@else.test",
		Password: "short",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "email")
	require.Contains(t, verr.Fields, "password")
	require.Contains(t, verr.Fields, "full_name")
	require.Equal(t, StateReady, ob.State())
	require.Zero(t, f.signups.Load(), "nothing is sent")
}

func TestOnboardingReloadAfterTransportFailure(t *testing.T) {
	t.Parallel()

	c := NewClient("http://127.0.0.1:1")
	ob := NewOnboarding(c, "tok")
	require.Error(t, ob.Load(context.Background()))
	require.Equal(t, StateFailed, ob.State())
	require.True(t, ob.CanRetry())
	require.Contains(t, ob.Toast(), "couldn't reach")

	// A second load is allowed from failed.
	require.Error(t, ob.Load(context.Background()))
}
