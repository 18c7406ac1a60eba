package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"promptrelay/pkg/proxy"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a 500
// response with an {"error": ...} body. It logs the panic with stack trace
// but does not expose internal details to clients. A nil logger means
// slog.Default().
//
// It belongs inside LoggingMiddleware so the 500 still gets an access line
// and the panic log can report how long the request ran.
//
// Example usage:
//
//	handler = RecoveryMiddleware(logger)(handler)
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					// http.ErrAbortHandler is the documented way to abort a response
					if err == http.ErrAbortHandler {
						panic(err)
					}

					attrs := []any{
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					}
					if start := GetStartTime(r.Context()); !start.IsZero() {
						attrs = append(attrs, "elapsed_ms", time.Since(start).Milliseconds())
					}
					logger.ErrorContext(r.Context(), "panic in handler", attrs...)

					_ = proxy.WriteError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
