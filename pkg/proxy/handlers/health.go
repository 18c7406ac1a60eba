package handlers

import (
	"log/slog"
	"net/http"

	"promptrelay/pkg/proxy"
)

// HealthHandler handles GET / liveness checks. The response is fixed at
// startup and never depends on the upstream.
type HealthHandler struct {
	relay  Relay
	logger *slog.Logger
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(r Relay, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{relay: r, logger: logger}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	if err := proxy.WriteJSONResponse(w, http.StatusOK, h.relay.Health()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write health response", "error", err)
	}
}

// methodNotAllowed writes a 405 with an Allow header and an error body.
func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	_ = proxy.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
}
