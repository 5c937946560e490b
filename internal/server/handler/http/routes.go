package http

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/middleware"
	"github.com/atinyakov/portfolio/internal/models"
)

// Handlers groups every handler mounted by NewRouter.
type Handlers struct {
	Auth       *AuthHandler
	Skills     *SkillHandler
	Experience *ExperienceHandler
	Projects   *ProjectHandler
	Contact    *ContactHandler
	Profile    *ProfileHandler
	Health     *HealthHandler
}

// RouterOptions configures cross-cutting middleware.
type RouterOptions struct {
	// Tokens verifies bearer tokens on protected routes.
	Tokens middleware.TokenVerifier
	// ContactLimiter throttles public contact form submissions.
	ContactLimiter *middleware.RateLimiter
	// CORSOrigins lists the allowed origins; "*" allows any.
	CORSOrigins []string
	// TrustedProxies are the peers allowed to set the client IP through
	// forwarding headers.
	TrustedProxies []netip.Prefix
	Log         *zap.Logger
}

// NewRouter constructs the HTTP handler serving the portfolio API under /api.
//
// Middleware chain (applied in order):
//  1. CORS: answers preflight requests
//  2. TrustedRealIP: rewrites RemoteAddr from headers sent by trusted proxies
//  3. WithRequestID: assigns X-Request-ID
//  4. WithRequestLogging(logger): logs each request
//  5. Recoverer: turns panics into 500
//  6. AllowContentType("application/json") on request bodies
//
// Reads are public. Project mutations need a bearer token; every other
// mutation, user registration and the contact inbox need the admin role.
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.TrustedRealIP(opts.TrustedProxies))
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithRequestLogging(opts.Log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))

	authenticated := middleware.BearerAuth(opts.Tokens)
	admin := middleware.RequireRole(models.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/health/db", h.Health.Database)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.With(authenticated).Get("/verify", h.Auth.Verify)
			r.With(authenticated, admin).Post("/register", h.Auth.Register)
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", h.Skills.List)
			r.Get("/featured", h.Skills.Featured)
			r.Get("/category/{category}", h.Skills.ByCategory)
			r.Get("/{id}", h.Skills.Get)
			r.Group(func(r chi.Router) {
				r.Use(authenticated, admin)
				r.Post("/", h.Skills.Create)
				r.Put("/{id}", h.Skills.Update)
				r.Delete("/{id}", h.Skills.Delete)
			})
		})

		r.Route("/experience", func(r chi.Router) {
			r.Get("/", h.Experience.List)
			r.Get("/{id}", h.Experience.Get)
			r.Group(func(r chi.Router) {
				r.Use(authenticated, admin)
				r.Post("/", h.Experience.Create)
				r.Put("/{id}", h.Experience.Update)
				r.Delete("/{id}", h.Experience.Delete)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.Projects.List)
			r.Get("/featured/list", h.Projects.Featured)
			r.Get("/{id}", h.Projects.Get)
			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/", h.Projects.Create)
				r.Put("/{id}", h.Projects.Update)
				r.Delete("/{id}", h.Projects.Delete)
			})
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", h.Profile.Get)
			r.With(authenticated, admin).Put("/", h.Profile.Save)
		})

		r.Route("/contact", func(r chi.Router) {
			r.With(opts.ContactLimiter.Middleware).Post("/", h.Contact.Submit)
			r.Group(func(r chi.Router) {
				r.Use(authenticated, admin)
				r.Get("/", h.Contact.List)
				r.Get("/stats/summary", h.Contact.Stats)
				r.Get("/{id}", h.Contact.Get)
				r.Patch("/{id}/status", h.Contact.UpdateStatus)
				r.Put("/{id}/read", h.Contact.MarkRead)
				r.Delete("/{id}", h.Contact.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return corsHandler(opts.CORSOrigins).Handler(r)
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{
			middleware.RequestIDHeader, "Retry-After",
			"RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset",
		},
	})
}
