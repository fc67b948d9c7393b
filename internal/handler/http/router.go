// Package http exposes the catalog and the per-session cart over a JSON API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mad-madhu-001/ecommerce/internal/event"
	"github.com/mad-madhu-001/ecommerce/internal/repository"
	"github.com/mad-madhu-001/ecommerce/internal/service"
	"github.com/mad-madhu-001/ecommerce/pkg/health"
	"github.com/mad-madhu-001/ecommerce/pkg/middleware"
)

// RouterConfig holds the transport options of the router.
type RouterConfig struct {
	ServiceName string
	CORS        middleware.CORSConfig
	// CatalogMaxAge is the Cache-Control max-age of catalog responses.
	// Zero disables caching headers.
	CatalogMaxAge time.Duration
	PprofEnabled  bool
	PprofCIDRs    []string
	// RateLimit throttles each session, or each IP without one, across the
	// /api/v1 routes. Nil disables throttling.
	RateLimit *middleware.RateLimitConfig
}

// DefaultRouterConfig returns the options used when none are configured.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		ServiceName:   "storefront",
		CORS:          middleware.DefaultCORSConfig(),
		CatalogMaxAge: 5 * time.Minute,
	}
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	kv repository.KeyValueStore,
	sink event.Sink,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware. Session runs before logging and tracing so both
	// carry the session ID.
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Session())
	r.Use(middleware.RequestLogging(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	if cfg.PprofEnabled {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	catalogHandler := NewCatalogHandler(catalogService, logger)
	cartHandler := NewCartHandler(kv, catalogService, sink, logger)

	throttle := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimit != nil {
		throttle = middleware.NewRateLimiter(*cfg.RateLimit, logger).Middleware
	}

	r.Group(func(r chi.Router) {
		r.Use(throttle)
		if cfg.CatalogMaxAge > 0 {
			r.Use(middleware.CacheControl(cfg.CatalogMaxAge))
		}

		r.Get("/api/v1/products", catalogHandler.ListProducts)
		r.Get("/api/v1/products/{productId}", catalogHandler.GetProduct)
		r.Get("/api/v1/categories", catalogHandler.ListCategories)
		r.Get("/api/v1/categories/{categoryId}/products", catalogHandler.CategoryProducts)
		r.Get("/api/v1/collections", catalogHandler.Collections)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(throttle)
		r.Use(middleware.NoStore())
		r.Use(ContentTypeJSON)
		r.Use(RequireSession)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Post("/items/quick", cartHandler.QuickAdd)
		r.Put("/items/{productId}/{size}/{color}", cartHandler.UpdateItemQuantity)
		r.Delete("/items/{productId}/{size}/{color}", cartHandler.RemoveItem)
	})

	return r
}
