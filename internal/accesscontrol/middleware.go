package accesscontrol

import (
	"net/http"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/auth"
	"github.com/fbarbosa/hr-management/internal/transport"
	"github.com/fbarbosa/hr-management/pkg/logger"
)

// Middleware bundles the request-scoped enforcement points: company
// context resolution, screen gating and the admin-only guard.
type Middleware struct {
	*transport.BaseHandler
	resolver *Resolver
	gate     *Gate
}

func NewMiddleware(resolver *Resolver, gate *Gate) *Middleware {
	return &Middleware{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		resolver:    resolver,
		gate:        gate,
	}
}

// CompanyContext resolves the company for tenant-scoped routes and puts
// it on the request context. Requests with no resolvable company are
// rejected before reaching any handler.
func (m *Middleware) CompanyContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			m.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		code, err := m.resolver.Resolve(r.Context(), u, r.Header.Get(CompanyHeader))
		if err != nil {
			m.WriteAppError(w, err)
			return
		}

		if audit, ok := internal.AuditFromContext(r.Context()); ok {
			audit.SetCompany(code)
		}

		next.ServeHTTP(w, r.WithContext(internal.ContextWithCompany(r.Context(), code)))
	})
}

// ScreenPermission rejects requests whose path is gated by a screen the
// user holds no grant for.
func (m *Middleware) ScreenPermission(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			m.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		if err := m.gate.Authorize(r.Context(), u, r.URL.Path); err != nil {
			m.WriteAppError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin guards administrative routes.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			m.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		if !u.IsUnrestricted() {
			m.WriteAppError(w, internal.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
