package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Router assembles the HTTP surface of the Clipstream API.
type Router struct {
	authHandler  *AuthHandler
	userHandler  *UserHandler
	videoHandler *VideoHandler
	health       HealthChecker
	metrics      *Metrics
	logger       zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	AuthHandler  *AuthHandler
	UserHandler  *UserHandler
	VideoHandler *VideoHandler
	Health       HealthChecker
	Metrics      *Metrics
	Logger       zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(config RouterConfig) *Router {
	return &Router{
		authHandler:  config.AuthHandler,
		userHandler:  config.UserHandler,
		videoHandler: config.VideoHandler,
		health:       config.Health,
		metrics:      config.Metrics,
		logger:       config.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(rt.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.handleHealth)
	if rt.metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}

	rt.authHandler.RegisterRoutes(r)
	rt.userHandler.RegisterRoutes(r)
	rt.videoHandler.RegisterRoutes(r)

	return r
}

// handleHealth reports liveness and database reachability.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	if rt.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := rt.health.Health(ctx); err != nil {
			rt.logger.Error().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
