package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mad-madhu-001/ecommerce/pkg/httputil"
)

// RateLimitConfig sets the token bucket given to each client.
type RateLimitConfig struct {
	RPS   float64
	Burst int
	// IdleTTL is how long an idle client's bucket is kept.
	IdleTTL time.Duration
}

// DefaultRateLimitConfig returns limits generous enough for interactive
// browsing.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{RPS: 10, Burst: 30, IdleTTL: 3 * time.Minute}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per shopper session, or per client
// IP for requests without a session. Idle buckets are swept lazily on access.
type RateLimiter struct {
	cfg    RateLimitConfig
	logger *slog.Logger

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter. A non-positive IdleTTL selects the
// default.
func NewRateLimiter(cfg RateLimitConfig, logger *slog.Logger) *RateLimiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultRateLimitConfig().IdleTTL
	}
	return &RateLimiter{
		cfg:     cfg,
		logger:  logger,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

// Middleware rejects requests over the client's budget with 429 and a
// Retry-After hint. Mount it after Session so sessions are keyed by ID.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if l.allow(key) {
			next.ServeHTTP(w, r)
			return
		}

		if l.logger != nil {
			l.logger.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("client", key),
				slog.String("path", r.URL.Path),
			)
		}
		w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter()))
		httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "too many requests",
			},
		})
	})
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for longer than IdleTTL, at most once per IdleTTL.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.cfg.IdleTTL {
		return
	}
	l.lastSweep = now
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > l.cfg.IdleTTL {
			delete(l.clients, key)
		}
	}
}

func (l *RateLimiter) retryAfter() int {
	if l.cfg.RPS <= 0 {
		return int(l.cfg.IdleTTL.Seconds())
	}
	return int(math.Max(1, math.Ceil(1/l.cfg.RPS)))
}

// tracked reports the number of buckets held.
func (l *RateLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// clientKey prefers the session ID stored by Session over the client IP.
func clientKey(r *http.Request) string {
	if id := SessionIDFromRequest(r); id != "" {
		return "session:" + id
	}
	return "ip:" + clientIP(r)
}

// clientIP returns the first valid address in X-Forwarded-For, then
// X-Real-IP, then the host of RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip.String()
			}
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
