package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger attaches a request-scoped zerolog logger to the context and emits a
// completion line per request. The actor role header rides along so lifecycle
// decisions can be traced back to the caller.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()

			reqLogger := logger.With().
				Str("request_id", uuid.NewString()).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr).
				Str("actor_role", req.Header.Get("X-Actor-Role")).
				Logger()

			ctx := reqLogger.WithContext(req.Context())
			req = req.WithContext(ctx)

			next.ServeHTTP(w, req)

			reqLogger.Info().
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}
