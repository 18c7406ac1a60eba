package openai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"promptrelay/pkg/providers"
)

var errNoChoices = errors.New("no choices in response")

// Provider is an OpenAI-compatible chat completion adapter. It works against
// OpenAI itself and against aggregators that speak the same protocol, such as
// OpenRouter.
type Provider struct {
	*providers.HTTPProvider

	endpoint string
}

// NewProvider creates a new adapter. An empty API key is accepted; requests
// are then sent without an Authorization header and fail upstream.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "openai",
			Field:    "name",
			Message:  "provider name is required",
		}
	}
	if config.BaseURL == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "base_url",
			Message:  "base URL is required",
		}
	}

	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}

	if config.APIKey == "" {
		slog.Warn("no API key configured, upstream requests will be rejected",
			"provider", config.Name,
		)
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config),
		endpoint:     strings.TrimRight(config.BaseURL, "/") + "/chat/completions",
	}

	slog.Debug("OpenAI-compatible provider initialized",
		"provider", config.Name,
		"endpoint", p.endpoint,
		"timeout", config.Timeout,
	)

	return p, nil
}

// Endpoint returns the chat completions URL requests are posted to.
func (p *Provider) Endpoint() string {
	return p.endpoint
}

// SendCompletion posts a chat completion request and normalizes the reply.
func (p *Provider) SendCompletion(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	headers := map[string]string{}
	if key := p.GetConfig().APIKey; key != "" {
		headers["Authorization"] = "Bearer " + key
	}

	var openaiResp OpenAIResponse
	err := p.DoJSONRequest(ctx, http.MethodPost, p.endpoint, transformRequest(req), &openaiResp, headers)
	if err != nil {
		return nil, p.refineError(req.Model, err)
	}

	return transformResponse(p.GetName(), &openaiResp)
}

// refineError turns generic status errors that describe an unknown model
// into ModelNotFoundError.
func (p *Provider) refineError(model string, err error) error {
	var providerErr *providers.ProviderError
	if !errors.As(err, &providerErr) {
		return err
	}

	if providerErr.StatusCode == http.StatusNotFound || isInvalidModelMessage(providerErr.Message) {
		return &providers.ModelNotFoundError{
			Provider: p.GetName(),
			Model:    model,
			Message:  providerErr.Message,
		}
	}
	return err
}

func isInvalidModelMessage(msg string) bool {
	msg = strings.ToLower(msg)
	if !strings.Contains(msg, "model") {
		return false
	}
	return strings.Contains(msg, "not a valid") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no endpoints found")
}

// validateRequest checks the request before anything goes on the wire.
func validateRequest(req *providers.CompletionRequest) error {
	if req == nil {
		return &providers.ValidationError{Field: "request", Message: "request is required"}
	}
	if strings.TrimSpace(req.Model) == "" {
		return &providers.ValidationError{Field: "model", Message: "model is required"}
	}
	if len(req.Messages) == 0 {
		return &providers.ValidationError{Field: "messages", Message: "at least one message is required"}
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case providers.RoleSystem, providers.RoleUser, providers.RoleAssistant:
		default:
			return &providers.ValidationError{Field: "messages.role", Message: "unsupported role " + msg.Role}
		}
	}
	return nil
}
