package providers

import (
	"errors"
	"testing"
	"time"

	"promptrelay/pkg/providers"
)

// TestConfig returns a test provider configuration.
func TestConfig(name string) providers.ProviderConfig {
	return providers.ProviderConfig{
		Name:                name,
		BaseURL:             "http://localhost:8000",
		APIKey:              "test-key",
		Timeout:             5 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     30 * time.Second,
	}
}

// TestConfigWithURL returns a test config with a specific base URL.
func TestConfigWithURL(name, baseURL string) providers.ProviderConfig {
	config := TestConfig(name)
	config.BaseURL = baseURL
	return config
}

// TestCompletionRequest creates a single-message user request.
func TestCompletionRequest(model, prompt string) *providers.CompletionRequest {
	return &providers.CompletionRequest{
		Model: model,
		Messages: []providers.Message{
			{Role: providers.RoleUser, Content: prompt},
		},
	}
}

// AssertErrorAs fails the test unless some error in err's chain matches target.
// target must be a pointer to an error type, as for errors.As.
func AssertErrorAs(t *testing.T, err error, target interface{}) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.As(err, target) {
		t.Fatalf("expected %T in error chain, got %T: %v", target, err, err)
	}
}
