package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
	"github.com/heartbeatcoders/recruit/pkg/httpx"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "recruit_session"

type identityKey struct{}

// IdentityResolver maps a session token to an acting identity. Implemented
// by service.SessionService.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) domain.Identity
}

// IdentityMiddleware resolves the acting identity for every request before
// any handler runs. A missing, malformed or invalid credential never fails
// the request; it resolves to the guest identity.
func IdentityMiddleware(resolver IdentityResolver) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := resolver.Resolve(r.Context(), sessionToken(r))
			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the resolved identity, or guest when the
// middleware has not run.
func IdentityFromContext(ctx context.Context) domain.Identity {
	if id, ok := ctx.Value(identityKey{}).(domain.Identity); ok {
		return id
	}
	return domain.Guest()
}

// sessionToken pulls the session token from the cookie, falling back to a
// bearer Authorization header for non-browser clients.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	return ""
}

// RequireAuthenticated sends guests to the login page.
func RequireAuthenticated() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IdentityFromContext(r.Context()).IsGuest() {
				httpx.SeeOther(w, r, "/auth/login")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole allows only authenticated identities holding one of the given
// roles. Guests are redirected to login; everyone else gets a 403.
func RequireRole(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity.IsGuest() {
				httpx.SeeOther(w, r, "/auth/login")
				return
			}
			if !identity.HasRole(roles...) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
