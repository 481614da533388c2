package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/metrics"
	"github.com/fusedlens/studio/internal/middleware"
	"github.com/fusedlens/studio/internal/uploads"
)

// Handlers groups the resource handlers mounted by NewRouter.
type Handlers struct {
	Auth        *AuthHandler
	Content     *ContentHandler
	Photos      *PhotoHandler
	Collections *CollectionHandler
	Contact     *ContactHandler
	Comments    *CommentHandler
}

// RouterOptions configures the cross-cutting parts of the router.
type RouterOptions struct {
	// Tokens verifies admin bearer tokens on protected routes.
	Tokens middleware.TokenVerifier
	// Uploads serves uploaded images under /uploads/.
	Uploads http.Handler
	// CORSOrigins lists the allowed origins; "*" allows any.
	CORSOrigins []string
	// RateLimit is the number of public submissions per IP per minute.
	// Zero disables limiting.
	RateLimit int
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a reverse proxy that overwrites those headers,
	// otherwise clients choose their own rate-limit key.
	TrustProxy bool
}

// NewRouter constructs the HTTP handler serving the studio API.
//
// Routes:
//
//	GET  /api/health                  → Health
//	     /api/auth/...                → h.Auth
//	     /api/content/...             → h.Content
//	     /api/photos/...              → h.Photos
//	     /api/collections/...         → h.Collections
//	     /api/contact/...             → h.Contact
//	     /api/comments/...            → h.Comments
//	GET  /uploads/*                   → opts.Uploads
//	GET  /metrics                     → Prometheus exposition
//
// Middleware chain (applied in order): RequestID, RealIP (only with
// TrustProxy), WithRequestLogging(logger), metrics, Recoverer, CORS. API
// routes only accept JSON or multipart bodies. Mutating routes require a bearer token.
func NewRouter(h Handlers, opts RouterOptions, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	if opts.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(metrics.Middleware)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	requireAdmin := middleware.Auth(opts.Tokens)
	optionalAdmin := middleware.OptionalAuth(opts.Tokens)
	limit := rateLimit(opts.RateLimit)

	r.Route("/api", func(r chi.Router) {
		r.Use(allowContentType("application/json", "multipart/form-data"))

		r.Get("/health", Health)

		r.Route("/auth", func(r chi.Router) {
			r.With(limit).Post("/login", h.Auth.Login)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/verify", h.Auth.Verify)
				r.Post("/change-password", h.Auth.ChangePassword)
			})
		})

		r.Route("/content", func(r chi.Router) {
			c := h.Content
			r.Get("/", c.Get)
			r.Get("/studio", c.Studio)
			r.Get("/hero", c.HeroSlides)
			r.Get("/services", c.Services)
			r.Get("/testimonials", c.Testimonials)
			r.Get("/stats", c.Stats)
			r.Get("/about", c.About)
			r.Get("/collaborators", c.Collaborators)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Put("/studio", c.UpdateStudio)
				r.Put("/social", c.UpdateSocial)
				r.Put("/mission", c.SetMission)
				r.Put("/hero", c.SetHeroSlides)
				r.Put("/services", c.SetServices)
				r.Put("/testimonials", c.SetTestimonials)
				r.Put("/stats", c.SetStats)
				r.Put("/about", c.SetAbout)
				r.Put("/collaborators", c.SetCollaborators)
			})
		})

		r.Route("/photos", func(r chi.Router) {
			p := h.Photos
			r.Get("/", p.All)
			r.Get("/categories", p.Categories)
			r.Get("/category/{category}", p.ByCategory)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", p.Create)
				r.Put("/reorder/batch", p.Reorder)
				r.Post("/categories", p.AddCategory)
				r.Delete("/categories/{id}", p.DeleteCategory)
				r.Put("/{id}", p.Update)
				r.Delete("/{id}", p.Delete)
			})
		})

		r.Route("/collections", func(r chi.Router) {
			c := h.Collections
			r.Get("/", c.List)
			r.Get("/{id}", c.Get)
			r.With(limit).Post("/{id}/comments", c.AddComment)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", c.Create)
				r.Put("/{id}", c.Replace)
				r.Delete("/{id}", c.Delete)
				r.Delete("/{id}/comments/{commentId}", c.DeleteComment)
				r.Post("/{id}/photos", c.AddPhoto)
				r.Delete("/{id}/photos/{photoId}", c.DeletePhoto)
				r.Post("/{id}/collaborators", c.AddCollaborator)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			c := h.Contact
			r.With(limit).Post("/", c.Submit)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", c.List)
				r.Put("/{id}", c.SetStatus)
				r.Delete("/{id}", c.Delete)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			c := h.Comments
			r.With(optionalAdmin).Get("/", c.List)
			r.With(optionalAdmin).Get("/{photoId}", c.ForPhoto)
			r.With(limit).Post("/{photoId}", c.Add)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Put("/{commentId}", c.SetApproved)
				r.Delete("/{commentId}", c.Delete)
			})
		})
	})

	if opts.Uploads != nil {
		r.Handle(uploads.URLPrefix+"*", http.StripPrefix(uploads.URLPrefix, opts.Uploads))
	}
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func rateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		}),
	)
}

// allowContentType rejects requests carrying a body of any other media type
// with a JSON 400. Bodiless requests pass through.
func allowContentType(types ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[strings.ToLower(t)] = struct{}{}
	}
	msg := "Content-Type must be " + strings.Join(types, " or ")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}
			mt := strings.ToLower(strings.TrimSpace(strings.Split(r.Header.Get("Content-Type"), ";")[0]))
			if _, ok := allowed[mt]; !ok {
				writeError(w, http.StatusBadRequest, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
