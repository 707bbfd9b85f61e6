package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/service"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store"
	"github.com/aussiebroadwan/clientdesk/pkg/httpx"
	"github.com/aussiebroadwan/clientdesk/pkg/jwtx"
	"github.com/aussiebroadwan/clientdesk/pkg/slogx"

	_ "github.com/aussiebroadwan/clientdesk/api/clientdesk" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Rate limit profile names, used as limiter key namespaces.
const (
	ProfileStrict  = "strict"
	ProfileLenient = "lenient"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	ClientService *service.ClientService

	// Limiters builds the limiter for each profile. Defaults to in-process
	// token buckets.
	Limiters     httpx.LimiterFactory
	StrictLimit  httpx.RateLimitConfig
	LenientLimit httpx.RateLimitConfig

	// ClientIP resolves the address requests are limited by. Defaults to
	// the connection peer.
	ClientIP httpx.KeyExtractor

	// LimiterPing reports the health of a shared limiter backend. Nil when
	// limiting is in-process.
	LimiterPing func(ctx context.Context) error
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limiters:     httpx.MemoryLimiters,
		StrictLimit:  httpx.StrictLimit,
		LenientLimit: httpx.LenientLimit,
		ClientIP:     httpx.IPKeyExtractor,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every route. Call it after the exported fields are
// set.
func (r *Router) ApplyRoutes() {
	strict := r.Limiters(ProfileStrict, r.StrictLimit)
	lenient := r.Limiters(ProfileLenient, r.LenientLimit)

	r.registerClients(strict, lenient)
	r.registerPages(lenient)
	r.registerSystem(lenient)

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Clientdesk API
//	@version		0.1.0
//	@description	Client account signup and signin. Successful signin returns an HS256 signed session token.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/clientdesk
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
//	@description				Session token from signin. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerClients(strict, lenient httpx.Limiter) {
	signup := &SignupHandler{ClientService: r.ClientService}
	signin := &SigninHandler{ClientService: r.ClientService}
	me := &MeHandler{ClientService: r.ClientService}

	// Credential endpoints - strict rate limit by IP (brute force and signup spam)
	r.Mux.Handle("POST /v1/clients/signup",
		httpx.Chain(signup, httpx.RateLimitByIP(strict, r.ClientIP)),
	)
	r.Mux.Handle("POST /v1/clients/signin",
		httpx.Chain(signin, httpx.RateLimitByIP(strict, r.ClientIP)),
	)

	// Authenticated endpoint - lenient rate limit by client
	r.Mux.Handle("GET /v1/clients/me",
		httpx.Chain(me,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByClient(lenient, r.ClientIP),
		),
	)
}

func (r *Router) registerPages(lenient httpx.Limiter) {
	login := httpx.Chain(PageHandler("login.html"), httpx.RateLimitByIP(lenient, r.ClientIP))
	signup := httpx.Chain(PageHandler("signup.html"), httpx.RateLimitByIP(lenient, r.ClientIP))

	r.Mux.Handle("GET /{$}", login)
	r.Mux.Handle("GET /login", login)
	r.Mux.Handle("GET /signup", signup)
}

func (r *Router) registerSystem(lenient httpx.Limiter) {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(lenient, r.ClientIP),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.LimiterPing),
			httpx.RateLimitByIP(lenient, r.ClientIP),
		),
	)
}
