package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amer1301/bokrecension/internal/auth"
	"github.com/amer1301/bokrecension/internal/service"
	"github.com/amer1301/bokrecension/pkg/health"
	"github.com/amer1301/bokrecension/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Users          *service.UserService
	Reviews        *service.ReviewService
	ReadingStatus  *service.ReadingStatusService
	Books          BookLookup
	JWT            *auth.JWTManager
	Health         *health.Handler
	Logger         *slog.Logger
	CORS           middleware.CORSConfig
	TracingEnabled bool
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.PrometheusMetrics("bokrecension"))
	if deps.TracingEnabled {
		r.Use(middleware.Tracing("bokrecension"))
	}

	// Health and metrics endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	validate := deps.JWT.TokenValidator()

	authHandler := NewAuthHandler(deps.Users, deps.Logger)
	userHandler := NewUserHandler(deps.Users, deps.Reviews, deps.Logger)
	reviewHandler := NewReviewHandler(deps.Reviews, deps.Logger)
	statusHandler := NewReadingStatusHandler(deps.ReadingStatus, deps.Logger)
	booksHandler := NewBooksHandler(deps.Books, deps.Logger)

	// Auth endpoints (public)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Book endpoints. Review listings are public but honor an optional
	// token so isLikedByUser reflects the caller.
	r.Route("/api/v1/books", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(validate))

		r.Get("/", booksHandler.Search)
		r.Get("/{bookId}", booksHandler.Get)
		r.Get("/{bookId}/reviews", reviewHandler.ListByBook)
	})

	// Review endpoints
	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(middleware.OptionalAuth(validate)).Get("/{id}", reviewHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(validate))

			r.Post("/", reviewHandler.Create)
			r.Put("/{id}", reviewHandler.Update)
			r.Delete("/{id}", reviewHandler.Delete)
			r.Post("/{id}/like", reviewHandler.Like)
			r.Delete("/{id}/like", reviewHandler.Unlike)
		})
	})

	// User endpoints
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(validate))

			r.Get("/{id}/stats", userHandler.GetStats)
			r.Get("/{id}/reviews", userHandler.ListReviews)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(validate))

			r.Get("/me", userHandler.GetMe)
			r.Delete("/me", userHandler.DeleteMe)
		})
	})

	// Reading status endpoints (auth required)
	r.Route("/api/v1/reading-status", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(validate))

		r.Get("/", statusHandler.List)
		// Upsert answers both verbs; older clients POST it.
		r.Put("/", statusHandler.Set)
		r.Post("/", statusHandler.Set)
		r.Get("/{bookId}", statusHandler.Get)
		r.Delete("/{bookId}", statusHandler.Delete)
	})

	return r
}
