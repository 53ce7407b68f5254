package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/pkg/httpx"
	"github.com/aussiebroadwan/propflow/pkg/jwtx"
	"github.com/aussiebroadwan/propflow/pkg/slogx"

	_ "github.com/aussiebroadwan/propflow/api/propflow" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits selects the limiter profile each class of route uses. Zero
// values fall back to the httpx defaults.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
}

func (l RateLimits) withDefaults() RateLimits {
	if l.Strict.RequestsPerWindow <= 0 {
		l.Strict = httpx.StrictLimit
	}
	if l.Moderate.RequestsPerWindow <= 0 {
		l.Moderate = httpx.ModerateLimit
	}
	if l.Lenient.RequestsPerWindow <= 0 {
		l.Lenient = httpx.LenientLimit
	}
	return l
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       RateLimits

	store            store.Store
	InviteService    *service.InviteService
	ProvisionService *service.ProvisionService
	SessionService   *service.SessionService
	PrincipalService *service.PrincipalService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	limits RateLimits,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		limits:       limits.withDefaults(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvites()
	r.registerSignup()
	r.registerSessions()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			PropFlow Onboarding API
//	@version		0.1.0
//	@description	Invitation-gated onboarding for PropFlow. Administrators issue invitations; invitees redeem them
//	@description	to create an account, and for platform invitations, a new company.
//	@description
//	@description				Session tokens are signed with EdDSA (Ed25519) and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/propflow
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from POST /v1/sessions. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with authentication, principal loading and a per-subject limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.keys.Verifier),
		PrincipalMiddleware(r.PrincipalService),
		httpx.RateLimitBySubject(limit),
	)
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}

	r.Mux.Handle("POST /v1/invites", r.secured(http.HandlerFunc(h.HandleIssue), r.limits.Moderate))
	r.Mux.Handle("GET /v1/invites", r.secured(http.HandlerFunc(h.HandleList), r.limits.Moderate))
	r.Mux.Handle("POST /v1/invites/{id}/revoke", r.secured(http.HandlerFunc(h.HandleRevoke), r.limits.Moderate))

	// Public: the onboarding page resolves its link before showing the form.
	r.Mux.Handle("GET /v1/invites/lookup",
		httpx.Chain(&InviteLookupHandler{InviteService: r.InviteService},
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}

func (r *Router) registerSignup() {
	r.Mux.Handle("POST /v1/signup-with-invite",
		httpx.Chain(&SignupHandler{ProvisionService: r.ProvisionService},
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerSessions() {
	r.Mux.Handle("POST /v1/sessions",
		httpx.Chain(&SessionHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
	r.Mux.Handle("GET /v1/me", r.secured(http.HandlerFunc(MeHandler), r.limits.Lenient))
}

func (r *Router) registerBootstrap() {
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(&BootstrapHandler{BootstrapService: r.BootstrapService},
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys.KeySet),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys.KeySet),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}
