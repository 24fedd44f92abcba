package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
	"github.com/heartbeatcoders/recruit/internal/recruit/service"
	"github.com/heartbeatcoders/recruit/internal/recruit/store"
	"github.com/heartbeatcoders/recruit/pkg/httpx"
	"github.com/heartbeatcoders/recruit/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	Accounts *service.AccountService
	Sessions *service.SessionService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain. Identity resolution runs on every
	// request so any handler can ask who is acting.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.middlewares = append(r.middlewares, IdentityMiddleware(r.Sessions))

	r.registerPages()
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("GET /static/", http.FileServerFS(staticFS))
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerPages() {
	h := &PagesHandler{Accounts: r.Accounts}

	r.Mux.Handle("GET /{$}",
		httpx.Chain(http.HandlerFunc(h.HandleHome),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Dashboard requires any signed-in account.
	r.Mux.Handle("GET /dashboard",
		httpx.Chain(http.HandlerFunc(h.HandleDashboard),
			RequireAuthenticated(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// The account listing is staff-only.
	r.Mux.Handle("GET /admin/users",
		httpx.Chain(http.HandlerFunc(h.HandleUsers),
			RequireRole(domain.RoleAdmin, domain.RoleRecruiter),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Accounts: r.Accounts, Sessions: r.Sessions}

	r.Mux.Handle("GET /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLoginForm),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /auth/login - strict rate limit by IP + email form field to
	// slow brute force against a single account.
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		),
	)

	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegisterForm),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
