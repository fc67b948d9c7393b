package event

import (
	"context"
	"log/slog"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	"github.com/mad-madhu-001/ecommerce/pkg/logger"
)

// LogSink writes notifications to a structured logger. Snapshot updates are
// logged at debug.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink that logs through l.
func NewLogSink(l *slog.Logger) *LogSink {
	return &LogSink{logger: l}
}

// Notify logs n at info, or warn for destructive notifications.
func (s *LogSink) Notify(ctx context.Context, key string, n domain.Notification) {
	level := slog.LevelInfo
	if n.Variant == domain.VariantDestructive {
		level = slog.LevelWarn
	}
	logger.WithContext(ctx, s.logger).LogAttrs(ctx, level, "cart notification",
		slog.String("cart_key", key),
		slog.String("kind", string(n.Kind)),
		slog.String("title", n.Title),
		slog.String("description", n.Description),
	)
}

// CartUpdated logs the snapshot's totals.
func (s *LogSink) CartUpdated(ctx context.Context, key string, cart domain.Cart) {
	logger.WithContext(ctx, s.logger).DebugContext(ctx, "cart snapshot persisted",
		slog.String("cart_key", key),
		slog.Int("line_items", len(cart.Items)),
		slog.Int("total_items", cart.TotalItems()),
		slog.Int64("total_price", cart.TotalPrice()),
	)
}
