package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ridgeline-builders/ridgeline/internal/ai"
	"github.com/ridgeline-builders/ridgeline/internal/auth"
	"github.com/ridgeline-builders/ridgeline/internal/blog"
	"github.com/ridgeline-builders/ridgeline/internal/contacts"
	"github.com/ridgeline-builders/ridgeline/internal/media"
	"github.com/ridgeline-builders/ridgeline/internal/platform/httpx"
	"github.com/ridgeline-builders/ridgeline/internal/projects"
	"github.com/ridgeline-builders/ridgeline/internal/ratelimit"
	"github.com/ridgeline-builders/ridgeline/internal/settings"
	"github.com/ridgeline-builders/ridgeline/internal/users"
	"github.com/ridgeline-builders/ridgeline/jobs"
)

// RouterParams aggregates everything the HTTP router needs.
type RouterParams struct {
	Middleware MiddlewareConfig
	Limiter    *ratelimit.Limiter

	Auth     *auth.Handler
	Users    *users.Handler
	Projects *projects.Handler
	Media    *media.Handler
	Blog     *blog.Handler
	Contacts *contacts.Handler
	Settings *settings.Handler
	AI       *ai.Handler
	Jobs     *jobs.Handler
}

// CSRFExemptPaths lists public endpoints where no session token can exist
// yet. Everything else mutating goes through the CSRF check.
func CSRFExemptPaths() map[string]struct{} {
	return map[string]struct{}{
		"/api/v1/contact":    {},
		"/api/v1/auth/login": {},
	}
}

// NewRouter wires the full route tree.
func NewRouter(p RouterParams) *chi.Mux {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(p.Middleware) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", p.Middleware.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public marketing-site surface.
		r.With(ratelimit.Middleware(p.Limiter, ratelimit.ContactForm, ratelimit.KeyByClientIP("contact"))).
			Post("/contact", p.Contacts.Submit)
		r.Route("/projects", p.Projects.MountPublicRoutes)
		r.Route("/posts", p.Blog.MountPublicRoutes)

		r.Route("/auth", func(r chi.Router) {
			r.With(ratelimit.Middleware(p.Limiter, ratelimit.Login, ratelimit.KeyByClientIP("login"))).
				Post("/login", p.Auth.Login)
			r.Post("/logout", p.Auth.Logout)
			r.Get("/session", p.Auth.Session)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/users", p.Users.MountRoutes)
			r.Route("/projects", p.Projects.MountRoutes)
			r.Route("/media", p.Media.MountRoutes)
			r.Route("/posts", p.Blog.MountRoutes)
			r.Route("/contacts", p.Contacts.MountRoutes)
			r.Route("/settings", p.Settings.MountRoutes)
			r.Route("/ai", p.AI.MountRoutes)
			if p.Jobs != nil {
				r.Route("/jobs", p.Jobs.MountRoutes)
			}
		})
	})

	return r
}
