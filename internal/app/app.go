package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/mad-madhu-001/ecommerce/internal/catalog"
	"github.com/mad-madhu-001/ecommerce/internal/config"
	"github.com/mad-madhu-001/ecommerce/internal/event"
	handler "github.com/mad-madhu-001/ecommerce/internal/handler/http"
	"github.com/mad-madhu-001/ecommerce/internal/repository"
	"github.com/mad-madhu-001/ecommerce/internal/repository/memory"
	pgrepo "github.com/mad-madhu-001/ecommerce/internal/repository/postgres"
	redisrepo "github.com/mad-madhu-001/ecommerce/internal/repository/redis"
	"github.com/mad-madhu-001/ecommerce/internal/service"
	"github.com/mad-madhu-001/ecommerce/migrations"
	"github.com/mad-madhu-001/ecommerce/pkg/database"
	"github.com/mad-madhu-001/ecommerce/pkg/health"
	"github.com/mad-madhu-001/ecommerce/pkg/httpclient"
	pkgkafka "github.com/mad-madhu-001/ecommerce/pkg/kafka"
	"github.com/mad-madhu-001/ecommerce/pkg/tracing"
)

// ServiceName identifies the storefront in logs, metrics, and traces.
const ServiceName = "storefront"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing(ServiceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	// Load the catalog.
	cat, err := catalog.Load(ctx, cfg.CatalogPath, httpclient.New(httpclient.DefaultConfig(), nil))
	if err != nil {
		a.closeAll()
		return nil, err
	}
	logger.Info("catalog loaded",
		slog.String("path", cfg.CatalogPath),
		slog.Int("products", len(cat.Products)),
		slog.Int("categories", len(cat.Categories)),
	)

	healthHandler := health.NewHandler(ServiceName)

	// Initialize cart persistence.
	kv, err := a.openStore(ctx, healthHandler)
	if err != nil {
		a.closeAll()
		return nil, err
	}

	// Event sinks: always log, optionally publish to Kafka.
	sinks := event.Multi{event.NewLogSink(logger)}
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		sinks = append(sinks, event.NewKafkaSink(a.producer, logger))
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	catalogService := service.NewCatalogService(cat, logger)

	routerCfg := handler.DefaultRouterConfig()
	routerCfg.ServiceName = ServiceName
	routerCfg.CORS.AllowedOrigins = cfg.CORSAllowedOrigins
	routerCfg.CatalogMaxAge = cfg.CatalogCacheMaxAge()
	routerCfg.PprofEnabled = cfg.PprofEnabled
	routerCfg.PprofCIDRs = cfg.PprofAllowedCIDRs
	routerCfg.RateLimit = cfg.RateLimit()

	router := handler.NewRouter(catalogService, kv, sinks, healthHandler, logger, routerCfg)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// openStore connects the configured cart backend and registers its health
// check.
func (a *App) openStore(ctx context.Context, hh *health.Handler) (repository.KeyValueStore, error) {
	cfg, logger := a.cfg, a.logger

	switch cfg.CartStore {
	case config.StoreRedis:
		rdb, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.rdb = rdb
		logger.Info("connected to Redis",
			slog.String("addr", cfg.Redis().Addr()),
			slog.Int("db", cfg.RedisDB),
		)

		store := redisrepo.NewStore(rdb, cfg.CartTTLDuration())
		hh.RegisterCritical("redis", store.Ping)
		return store, nil

	case config.StorePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)

		if err := prometheus.Register(database.NewPoolStatsCollector(pool, ServiceName)); err != nil {
			logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
		}

		if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations completed")

		if cfg.SlowQueryThresholdMs > 0 {
			database.SetSlowQueryLogging(cfg.SlowQueryThreshold(), logger)
		}

		store := pgrepo.NewStore(pool)
		hh.RegisterCritical("postgres", store.Ping)
		return store, nil

	default:
		logger.Warn("using in-memory cart store; carts are lost on restart")
		return memory.New(), nil
	}
}

// Handler returns the HTTP handler serving the storefront API.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeAll()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: the HTTP server drains
// in-flight requests, then the tracer flushes their spans, then the Kafka
// producer and the store connections close.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.closeAll()
	a.logger.Info("application shutdown complete")
	return nil
}

// closeAll releases everything NewApp acquired. Components that were never
// started are skipped.
func (a *App) closeAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
