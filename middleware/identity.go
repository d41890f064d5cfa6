package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/cafe-directory/models"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie holding the signed session token
const SessionCookieName = "session"

// Need is a named capability a principal may provide
type Need string

// NeedAdmin is provided only by principals whose stored role is admin
const NeedAdmin Need = "has-role:admin"

// NeedSelf is the self-identity capability for a given user id
func NeedSelf(id uuid.UUID) Need {
	return Need("is-self:" + id.String())
}

// Identity is the resolved principal for one request together with the
// capability set derived from it. The set is recomputed on every request
// from the stored role, never cached in the session.
type Identity struct {
	Principal *models.User
	needs     map[Need]struct{}
}

// Anonymous returns the identity of an unauthenticated request
func Anonymous() *Identity {
	return &Identity{needs: map[Need]struct{}{}}
}

// NewIdentity derives the capability set from a loaded principal
func NewIdentity(user *models.User) *Identity {
	needs := map[Need]struct{}{
		NeedSelf(user.ID): {},
	}
	if user.IsAdmin() {
		needs[NeedAdmin] = struct{}{}
	}
	return &Identity{Principal: user, needs: needs}
}

// Authenticated returns true when a principal was resolved
func (id *Identity) Authenticated() bool {
	return id.Principal != nil
}

// Provides reports whether the identity satisfies the given need
func (id *Identity) Provides(n Need) bool {
	_, ok := id.needs[n]
	return ok
}

// PrincipalResolver maps a session cookie token to the current user.
// Implemented by services.AuthService.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*models.User, error)
}

// IdentityMiddleware resolves zero-or-one principal per request and
// guards privileged routes.
type IdentityMiddleware struct {
	resolver PrincipalResolver
	logger   *zap.Logger
}

// NewIdentityMiddleware creates a new IdentityMiddleware
func NewIdentityMiddleware(resolver PrincipalResolver, logger *zap.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{resolver: resolver, logger: logger}
}

// LoadIdentity resolves the session cookie into an Identity and stores
// it in the request context. Missing or invalid cookies leave the
// request anonymous; only a store failure aborts the request.
func (m *IdentityMiddleware) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := Anonymous()

		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			user, err := m.resolver.ResolvePrincipal(r.Context(), cookie.Value)
			if err != nil {
				m.logger.Error("failed to resolve principal", zap.Error(err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if user != nil {
				identity = NewIdentity(user)
			}
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireAuth rejects anonymous requests by redirecting to the login
// page. Must run after LoadIdentity.
func (m *IdentityMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		if !identity.Authenticated() {
			m.logger.Debug("anonymous request to protected route", zap.String("path", r.URL.Path))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireNeed guards a route on a capability. Anonymous requests are
// sent to the login page; authenticated principals lacking the need get
// a terminal 403 and the wrapped handler never runs.
func (m *IdentityMiddleware) RequireNeed(need Need) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if !identity.Authenticated() {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !identity.Provides(need) {
				m.logger.Warn("capability check failed",
					zap.String("path", r.URL.Path),
					zap.String("need", string(need)),
					zap.String("user_id", identity.Principal.ID.String()))
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards admin-only routes
func (m *IdentityMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireNeed(NeedAdmin)(next)
}
