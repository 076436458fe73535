// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nepalvoices-web/api/middleware"
	"nepalvoices-web/core/interfaces"
	"nepalvoices-web/pkg/featureflags"
)

const (
	apiTitle   = "Nepal Voices API"
	apiVersion = "1.0.0"
	apiPrefix  = "/api/"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// RateLimiter throttles /api/ routes per client IP; nil disables it
	RateLimiter *middleware.RateLimiter

	// Metrics exposes Prometheus metrics at /metrics
	Metrics bool

	// Flags is placed on every request context for featureflags.IsEnabled
	Flags featureflags.Manager
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured. The
// returned router also serves the HTML pages, so rate limiting is applied to
// the JSON routes only.
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflight requests are answered before anything else
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.Flags != nil {
		router.Use(withFlags(cfg.Flags))
	}

	if cfg.Metrics {
		router.Use(middleware.MetricsMiddleware)
	}

	if cfg.RateLimiter != nil {
		router.Use(forPrefix(apiPrefix, middleware.RateLimitMiddleware(cfg.RateLimiter)))
	}

	// chi requires every middleware before the first route
	if cfg.Metrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "JSON endpoints behind the Nepal Voices news site: posts, comments, banner ads, the Nepali clock and the image pipeline"

	api := humachi.New(router, config)

	return api, router
}

// forPrefix applies mw only to requests whose path starts with prefix
func forPrefix(prefix string, mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, prefix) {
				wrapped.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withFlags(flags featureflags.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(featureflags.WithManager(r.Context(), flags)))
		})
	}
}
