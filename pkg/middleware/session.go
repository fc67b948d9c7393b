package middleware

import (
	"net/http"
	"regexp"

	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/httputil"
	"github.com/mad-madhu-001/ecommerce/pkg/logger"
)

// SessionIDHeader selects the shopper's cart.
const SessionIDHeader = "X-Session-ID"

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Session reads X-Session-ID into the request context and echoes it back.
// A malformed session ID is rejected with 400.
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionIDHeader)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !sessionIDPattern.MatchString(id) {
				httputil.WriteError(w, r, apperrors.InvalidInput("X-Session-ID must be 1-64 letters, digits, '-' or '_'"), nil)
				return
			}

			w.Header().Set(SessionIDHeader, id)
			next.ServeHTTP(w, r.WithContext(logger.WithSessionID(r.Context(), id)))
		})
	}
}

// SessionIDFromRequest returns the session ID stored by Session.
func SessionIDFromRequest(r *http.Request) string {
	return logger.SessionIDFromContext(r.Context())
}
