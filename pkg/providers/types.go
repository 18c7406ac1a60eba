package providers

import (
	"net/http"
	"time"
)

// Message represents a single message in a conversation.
type Message struct {
	// Role identifies the message sender (system, user, assistant)
	Role string `json:"role"`

	// Content is the message text content
	Content string `json:"content"`
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionRequest represents a provider-agnostic completion request.
// It is transformed to the provider-specific format by each adapter.
type CompletionRequest struct {
	// Model is the model identifier (e.g., "openai/gpt-oss-20b")
	Model string `json:"model"`

	// Messages is the conversation sent to the model
	Messages []Message `json:"messages"`

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64 `json:"temperature,omitempty"`

	// MaxTokens limits the completion length. Zero leaves the provider default.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResponse represents a provider-agnostic completion response.
type CompletionResponse struct {
	// ID is the provider's identifier for the completion
	ID string `json:"id"`

	// Model is the model that actually served the request
	Model string `json:"model"`

	// Content is the first choice's message content, unmodified
	Content string `json:"content"`

	// FinishReason explains why generation stopped
	FinishReason string `json:"finish_reason"`

	// Usage reports token consumption when the provider includes it
	Usage TokenUsage `json:"usage"`

	// Created is the provider's creation timestamp (Unix seconds)
	Created int64 `json:"created"`
}

// ProviderConfig contains configuration for one upstream provider.
type ProviderConfig struct {
	// Name is the provider identifier used in errors and logs (e.g., "openrouter")
	Name string

	// BaseURL is the API endpoint base URL
	BaseURL string

	// APIKey is the authentication key
	APIKey string

	// Timeout bounds a single request, including reading the response body
	Timeout time.Duration

	// Headers are added to every request (e.g., attribution headers)
	Headers map[string]string

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool
	IdleConnTimeout time.Duration

	// Transport overrides the pooled transport, mostly for tests
	Transport http.RoundTripper
}

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Finish reason constants
const (
	FinishReasonStop          = "stop"
	FinishReasonLength        = "length"
	FinishReasonContentFilter = "content_filter"
)
