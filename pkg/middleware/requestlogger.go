package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mad-madhu-001/ecommerce/pkg/logger"
)

// RequestLogger puts a per-request logger in the context for handlers and the
// cart store to pick up with logger.FromContext. Besides the method and path,
// it carries whatever correlation, session and trace IDs earlier middleware
// attached, so it must run after them.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.WithContext(ctx, base).With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			next.ServeHTTP(w, r.WithContext(logger.NewContext(ctx, l)))
		})
	}
}
