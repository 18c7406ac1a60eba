package openai

import (
	"errors"
	"testing"

	"promptrelay/pkg/providers"
)

func TestTransformResponse_ContentVerbatim(t *testing.T) {
	content := "  leading spaces, *markdown*, and a trailing newline\n"
	resp := &OpenAIResponse{
		ID:    "gen-1",
		Model: "openai/gpt-oss-20b",
		Choices: []OpenAIChoice{
			{Message: OpenAIMessage{Role: "assistant", Content: content}, FinishReason: "stop"},
			{Message: OpenAIMessage{Role: "assistant", Content: "second choice"}},
		},
	}

	out, err := transformResponse("openrouter", resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Content != content {
		t.Errorf("content was modified: got %q, want %q", out.Content, content)
	}
}

func TestTransformResponse_EmbeddedError(t *testing.T) {
	_, err := transformResponse("openrouter", &OpenAIResponse{Error: &OpenAIError{Message: "overloaded"}})

	var providerErr *providers.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if providerErr.Message != "overloaded" {
		t.Errorf("expected message overloaded, got %q", providerErr.Message)
	}
}

func TestTransformRequest(t *testing.T) {
	req := &providers.CompletionRequest{
		Model:    "openai/gpt-oss-20b",
		Messages: []providers.Message{{Role: providers.RoleUser, Content: "hello"}},
	}

	out := transformRequest(req)
	if out.Model != req.Model {
		t.Errorf("model = %q, want %q", out.Model, req.Model)
	}
	if len(out.Messages) != 1 || out.Messages[0].Content != "hello" || out.Messages[0].Role != "user" {
		t.Errorf("unexpected messages: %+v", out.Messages)
	}
}

func TestNormalizeFinishReason(t *testing.T) {
	tests := map[string]string{
		"stop":           providers.FinishReasonStop,
		"end_turn":       providers.FinishReasonStop,
		"length":         providers.FinishReasonLength,
		"content_filter": providers.FinishReasonContentFilter,
		"tool_calls":     "tool_calls",
		"":               "",
	}

	for in, want := range tests {
		if got := normalizeFinishReason(in); got != want {
			t.Errorf("normalizeFinishReason(%q) = %q, want %q", in, got, want)
		}
	}
}
