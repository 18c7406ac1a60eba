package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"promptrelay/pkg/config"
	"promptrelay/pkg/proxy"
	"promptrelay/pkg/proxy/handlers"
	"promptrelay/pkg/proxy/middleware"
	"promptrelay/pkg/telemetry/metrics"
)

// Options configures a Server.
type Options struct {
	// Proxy holds the listen address and server timeouts.
	Proxy config.ProxyConfig

	// Chat controls the /chat handler.
	Chat config.ChatConfig

	// Metrics controls the scrape endpoint.
	Metrics config.MetricsConfig

	// Relay serves the endpoints. Required.
	Relay handlers.Relay

	// Collector records HTTP metrics and serves the scrape endpoint when
	// Metrics.Enabled is set. Nil disables both.
	Collector *metrics.Collector

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the relay's HTTP server.
type Server struct {
	opts       Options
	logger     *slog.Logger
	httpServer *http.Server
	mu         sync.RWMutex
	listener   net.Listener
	isRunning  bool
}

// NewServer creates a new server. Nothing is bound until Start or Serve.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{opts: opts, logger: logger}
}

// Start listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully. A bind failure is returned
// immediately.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Proxy.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Proxy.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		_ = ln.Close()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    s.opts.Proxy.ReadTimeout,
		WriteTimeout:   s.opts.Proxy.WriteTimeout,
		IdleTimeout:    s.opts.Proxy.IdleTimeout,
		MaxHeaderBytes: s.opts.Proxy.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting relay server",
			"address", ln.Addr().String(),
			"metrics_enabled", s.metricsEnabled(),
		)

		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		if ok {
			return err
		}
		return nil
	}
}

// Shutdown gracefully shuts down the server, waiting up to the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	httpServer := s.httpServer
	s.mu.Unlock()

	s.logger.Info("initiating graceful shutdown", "timeout", s.opts.Proxy.ShutdownTimeout.String())

	shutdownCtx := ctx
	if s.opts.Proxy.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, s.opts.Proxy.ShutdownTimeout)
		defer cancel()
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("error during server shutdown", "error", err)
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("relay server stopped")
	return nil
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the bound address, or "" before Serve.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the routed handler with the full middleware chain.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)

	if s.metricsEnabled() {
		router.Use(middleware.MetricsMiddleware(s.opts.Collector))
	}

	healthHandler := handlers.NewHealthHandler(s.opts.Relay, s.logger)
	chatHandler := handlers.NewChatHandler(s.opts.Relay, handlers.ChatOptions{
		MaxBodyBytes:     s.opts.Chat.MaxBodyBytes,
		ErrorStatusCodes: s.opts.Chat.ErrorStatusCodes,
		Logger:           s.logger,
	})

	router.Handle("/", healthHandler).Methods(http.MethodGet, http.MethodHead)
	router.Handle("/chat", chatHandler).Methods(http.MethodPost)

	if s.metricsEnabled() {
		router.Handle(s.opts.Metrics.Path, s.opts.Collector.Handler()).Methods(http.MethodGet)
	}

	router.MethodNotAllowedHandler = methodNotAllowed(allowedMethods(router))

	var handler http.Handler = router
	handler = middleware.RecoveryMiddleware(s.logger)(handler)
	handler = middleware.LoggingMiddleware(s.logger)(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return handler
}

func (s *Server) metricsEnabled() bool {
	return s.opts.Metrics.Enabled && s.opts.Collector != nil
}

func notFound(w http.ResponseWriter, r *http.Request) {
	_ = proxy.WriteError(w, http.StatusNotFound, fmt.Sprintf("no route for %s", r.URL.Path))
}

// allowedMethods maps each registered path template to its methods.
// All routes are static paths, so the template is also the request path.
func allowedMethods(router *mux.Router) map[string][]string {
	allowed := make(map[string][]string)
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		allowed[path] = append(allowed[path], methods...)
		return nil
	})
	return allowed
}

func methodNotAllowed(allowed map[string][]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if methods := allowed[r.URL.Path]; len(methods) > 0 {
			w.Header().Set("Allow", strings.Join(methods, ", "))
		}
		_ = proxy.WriteError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
	}
}
