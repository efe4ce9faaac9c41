package rbac

import (
	"log/slog"
	"net/http"

	"github.com/ridgeline-builders/ridgeline/internal/platform/httpx"
)

// Middleware wires authorization guards into HTTP handlers. On success the
// resolved AuthUser is stored in the request context.
type Middleware struct {
	Guard  *Guard
	Logger *slog.Logger
}

// Require ensures the current user holds the given permission.
func (m Middleware) Require(perm Permission) func(http.Handler) http.Handler {
	return m.wrap(func(r *http.Request) (*AuthUser, error) {
		return m.Guard.RequirePermission(r.Context(), perm)
	})
}

// RequireAdmin ensures the current user has the admin role.
func (m Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return m.wrap(func(r *http.Request) (*AuthUser, error) {
		return m.Guard.RequireAdmin(r.Context())
	})
}

// RequireStaff ensures the current user is staff or admin.
func (m Middleware) RequireStaff() func(http.Handler) http.Handler {
	return m.wrap(func(r *http.Request) (*AuthUser, error) {
		return m.Guard.RequireStaff(r.Context())
	})
}

func (m Middleware) wrap(check func(*http.Request) (*AuthUser, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := check(r)
			if err != nil {
				RespondAuthError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RespondAuthError maps guard failures onto HTTP problem responses. A null
// user always means rejection; the typed kind decides 401 vs 403.
func RespondAuthError(w http.ResponseWriter, err error) {
	kind, ok := KindOf(err)
	if !ok {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	switch kind {
	case KindForbidden:
		httpx.Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case KindProfileMissing:
		// Conflated with plain 401 for clients; the title tells operators apart.
		httpx.Problem(w, http.StatusUnauthorized, "Profile Missing", err.Error())
	default:
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	}
}
