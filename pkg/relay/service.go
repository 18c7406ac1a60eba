package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"promptrelay/pkg/providers"
	"promptrelay/pkg/telemetry/logging"
)

// Observer receives one observation per relay call.
type Observer interface {
	ObserveChat(model, outcome string, upstreamLatency time.Duration)
}

// Options configures a Service.
type Options struct {
	// Provider sends completions upstream. Required.
	Provider providers.Provider

	// DefaultModel is used when a request names no model. Required.
	DefaultModel string

	// Name is the product name shown in the health message.
	// Defaults to "promptrelay".
	Name string

	// UpstreamName is the upstream shown in the health message.
	// Defaults to the provider's name.
	UpstreamName string

	// Observer, if set, is told about every Chat call.
	Observer Observer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Service relays prompts to the configured upstream. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	provider     providers.Provider
	defaultModel string
	health       HealthStatus
	observer     Observer
	logger       *slog.Logger
}

// NewService creates a Service.
func NewService(opts Options) (*Service, error) {
	if opts.Provider == nil {
		return nil, errors.New("relay: provider is required")
	}
	if strings.TrimSpace(opts.DefaultModel) == "" {
		return nil, errors.New("relay: default model is required")
	}

	name := opts.Name
	if name == "" {
		name = "promptrelay"
	}
	upstream := opts.UpstreamName
	if upstream == "" {
		upstream = opts.Provider.GetName()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		provider:     opts.Provider,
		defaultModel: opts.DefaultModel,
		health: HealthStatus{
			Message: fmt.Sprintf("%s + %s (%s default) server is running", name, upstream, opts.DefaultModel),
		},
		observer: opts.Observer,
		logger:   logger,
	}, nil
}

// DefaultModel returns the model used when a request names none.
func (s *Service) DefaultModel() string {
	return s.defaultModel
}

// ResolveModel returns model, or the default model when model is blank.
func (s *Service) ResolveModel(model string) string {
	if strings.TrimSpace(model) == "" {
		return s.defaultModel
	}
	return model
}

// Health returns the fixed liveness payload. It never contacts the upstream.
func (s *Service) Health() HealthStatus {
	return s.health
}

// Chat relays one prompt as a single user message and returns the first
// choice's content. Every upstream failure is returned as a *Failure; Chat
// itself never fails.
//
// ctx bounds the upstream call. Cancelling it abandons the call.
func (s *Service) Chat(ctx context.Context, req PromptRequest) ChatResult {
	model := s.ResolveModel(req.Model)
	ctx = logging.WithModel(ctx, model)

	if strings.TrimSpace(req.Prompt) == "" {
		failure := &Failure{Kind: KindInvalidRequest, Message: "prompt is required"}
		s.observe(model, failure, 0)
		return failure
	}

	start := time.Now()
	resp, err := s.provider.SendCompletion(ctx, &providers.CompletionRequest{
		Model: model,
		Messages: []providers.Message{
			{Role: providers.RoleUser, Content: req.Prompt},
		},
	})
	latency := time.Since(start)

	if err != nil {
		failure := Classify(err)
		s.observe(model, failure, latency)
		s.logger.WarnContext(ctx, "chat relay failed",
			"provider", s.provider.GetName(),
			"kind", failure.Kind,
			"error", err,
			"upstream_latency_ms", latency.Milliseconds(),
		)
		return failure
	}

	success := &Success{
		Prompt:   req.Prompt,
		Response: resp.Content,
		Model:    resp.Model,
		Usage:    resp.Usage,
	}
	s.observe(model, success, latency)
	s.logger.InfoContext(ctx, "chat relay succeeded",
		"provider", s.provider.GetName(),
		"served_by", resp.Model,
		"finish_reason", resp.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"upstream_latency_ms", latency.Milliseconds(),
	)
	return success
}

func (s *Service) observe(model string, result ChatResult, latency time.Duration) {
	if s.observer != nil {
		s.observer.ObserveChat(model, Outcome(result), latency)
	}
}
