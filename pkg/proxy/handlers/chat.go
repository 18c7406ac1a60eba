package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"promptrelay/pkg/proxy"
	"promptrelay/pkg/relay"
)

// ChatOptions configures a ChatHandler.
type ChatOptions struct {
	// MaxBodyBytes limits the inbound body. Zero means the default limit.
	MaxBodyBytes int64

	// ErrorStatusCodes maps upstream failures to non-200 statuses.
	ErrorStatusCodes bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// ChatHandler handles POST /chat.
//
// A malformed body is answered with 422. Otherwise the prompt is relayed once
// and the result written as {"prompt","response"} or {"error"}. Upstream
// failures are 200 unless ErrorStatusCodes is set.
type ChatHandler struct {
	relay  Relay
	opts   ChatOptions
	logger *slog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(r Relay, opts ChatOptions) *ChatHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{relay: r, opts: opts, logger: logger}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	req, err := proxy.ParsePromptRequest(r, h.opts.MaxBodyBytes)
	if err != nil {
		var reqErr *proxy.RequestError
		if errors.As(err, &reqErr) {
			h.logger.WarnContext(ctx, "rejected chat request",
				"param", reqErr.Param,
				"error", reqErr.Message,
			)
		}
		if err := proxy.WriteError(w, http.StatusUnprocessableEntity, err.Error()); err != nil {
			h.logger.ErrorContext(ctx, "failed to write error response", "error", err)
		}
		return
	}

	result := h.relay.Chat(ctx, req)

	if f, ok := result.(*relay.Failure); ok && f.Kind == relay.KindCanceled {
		// The caller is gone; nothing can be delivered.
		h.logger.DebugContext(ctx, "client went away before upstream answered")
	}

	if err := proxy.WriteChatResult(w, result, h.opts.ErrorStatusCodes); err != nil {
		h.logger.ErrorContext(ctx, "failed to write chat response", "error", err)
	}
}
