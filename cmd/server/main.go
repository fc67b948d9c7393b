// Command server runs the storefront JSON API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mad-madhu-001/ecommerce/internal/app"
	"github.com/mad-madhu-001/ecommerce/internal/config"
	"github.com/mad-madhu-001/ecommerce/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("storefront exited", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

// run blocks until ctx is cancelled or the HTTP server fails.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(app.ServiceName, cfg.LogLevel)
	slog.SetDefault(log)
	log.Info("starting storefront service",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTPPort),
		slog.String("cart_store", cfg.CartStore),
		slog.Bool("kafka", cfg.KafkaEnabled),
		slog.Bool("tracing", cfg.TracingEnabled),
	)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	if err := application.Run(ctx); err != nil {
		return err
	}

	log.Info("storefront service stopped")
	return nil
}
