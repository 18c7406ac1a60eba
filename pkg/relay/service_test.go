package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	testhelpers "promptrelay/internal/providers"
	"promptrelay/pkg/providers"
	"promptrelay/pkg/providers/openai"
)

// stubProvider answers every request through fn and records what it saw.
type stubProvider struct {
	mu   sync.Mutex
	reqs []*providers.CompletionRequest
	fn   func(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error)
}

func (p *stubProvider) SendCompletion(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	p.mu.Lock()
	p.reqs = append(p.reqs, req)
	p.mu.Unlock()
	return p.fn(ctx, req)
}

func (p *stubProvider) GetName() string { return "stub" }
func (p *stubProvider) GetConfig() providers.ProviderConfig {
	return providers.ProviderConfig{Name: "stub"}
}
func (p *stubProvider) Close() error { return nil }

func (p *stubProvider) last() *providers.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.reqs) == 0 {
		return nil
	}
	return p.reqs[len(p.reqs)-1]
}

func echoProvider() *stubProvider {
	return &stubProvider{fn: func(_ context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
		return &providers.CompletionResponse{Model: req.Model, Content: req.Messages[0].Content}, nil
	}}
}

func failingProvider(err error) *stubProvider {
	return &stubProvider{fn: func(context.Context, *providers.CompletionRequest) (*providers.CompletionResponse, error) {
		return nil, err
	}}
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
	models   []string
}

func (o *recordingObserver) ObserveChat(model, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.models = append(o.models, model)
	o.outcomes = append(o.outcomes, outcome)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, p providers.Provider, observer Observer) *Service {
	t.Helper()
	svc, err := NewService(Options{
		Provider:     p,
		DefaultModel: "openai/gpt-oss-20b",
		UpstreamName: "OpenRouter",
		Observer:     observer,
		Logger:       quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestNewService_Validation(t *testing.T) {
	if _, err := NewService(Options{DefaultModel: "m"}); err == nil {
		t.Error("expected error without provider")
	}
	if _, err := NewService(Options{Provider: echoProvider()}); err == nil {
		t.Error("expected error without default model")
	}
}

func TestService_Health(t *testing.T) {
	svc := newService(t, failingProvider(errors.New("must not be called")), nil)

	health := svc.Health()
	want := "promptrelay + OpenRouter (openai/gpt-oss-20b default) server is running"
	if health.Message != want {
		t.Errorf("Health().Message = %q, want %q", health.Message, want)
	}
	if !strings.Contains(health.Message, svc.DefaultModel()) {
		t.Error("health message must name the default model")
	}

	body, err := json.Marshal(health)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"message":"`+want+`"}` {
		t.Errorf("unexpected health body %s", body)
	}
}

func TestService_Chat_DefaultModel(t *testing.T) {
	tests := []struct {
		name      string
		model     string
		wantModel string
	}{
		{"omitted model uses default", "", "openai/gpt-oss-20b"},
		{"blank model uses default", "   ", "openai/gpt-oss-20b"},
		{"explicit model is forwarded", "meta-llama/llama-3-8b", "meta-llama/llama-3-8b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := echoProvider()
			svc := newService(t, stub, nil)

			result := svc.Chat(context.Background(), PromptRequest{Prompt: "hi", Model: tt.model})
			if !result.OK() {
				t.Fatalf("expected success, got %+v", result)
			}

			req := stub.last()
			if req.Model != tt.wantModel {
				t.Errorf("upstream model = %q, want %q", req.Model, tt.wantModel)
			}
			if len(req.Messages) != 1 || req.Messages[0].Role != providers.RoleUser || req.Messages[0].Content != "hi" {
				t.Errorf("expected a single user message, got %+v", req.Messages)
			}
		})
	}
}

func TestService_Chat_EchoRoundTrip(t *testing.T) {
	mock := testhelpers.NewMockServer()
	defer mock.Close()
	mock.SetResponse(testhelpers.ChatCompletionsPath, testhelpers.MockResponse{Echo: true})

	provider, err := openai.NewProvider(testhelpers.TestConfigWithURL("openrouter", mock.BaseURL()))
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer provider.Close()

	svc := newService(t, provider, nil)

	result := svc.Chat(context.Background(), PromptRequest{Prompt: "hello"})
	success, ok := result.(*Success)
	if !ok {
		t.Fatalf("expected *Success, got %T: %+v", result, result)
	}

	body, err := json.Marshal(success)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"prompt":"hello","response":"hello"}` {
		t.Errorf("unexpected body %s", body)
	}

	recorded, _ := mock.LastRequest()
	chatReq, err := recorded.ChatRequest()
	if err != nil {
		t.Fatalf("decode recorded request: %v", err)
	}
	if chatReq.Model != "openai/gpt-oss-20b" {
		t.Errorf("expected default model upstream, got %q", chatReq.Model)
	}
}

func TestService_Chat_ResponseVerbatim(t *testing.T) {
	content := "\n  **bold** and trailing space  \n"
	stub := &stubProvider{fn: func(context.Context, *providers.CompletionRequest) (*providers.CompletionResponse, error) {
		return &providers.CompletionResponse{Content: content}, nil
	}}
	svc := newService(t, stub, nil)

	result := svc.Chat(context.Background(), PromptRequest{Prompt: "x"})
	success, ok := result.(*Success)
	if !ok {
		t.Fatalf("expected success, got %T", result)
	}
	if success.Response != content {
		t.Errorf("response altered: got %q, want %q", success.Response, content)
	}
}

func TestService_Chat_AuthFailure(t *testing.T) {
	mock := testhelpers.NewMockServer()
	defer mock.Close()
	mock.SetResponse(testhelpers.ChatCompletionsPath, testhelpers.MockAuthError())

	config := testhelpers.TestConfigWithURL("openrouter", mock.BaseURL())
	config.APIKey = ""
	provider, err := openai.NewProvider(config)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer provider.Close()

	svc := newService(t, provider, nil)

	result := svc.Chat(context.Background(), PromptRequest{Prompt: "hello"})
	failure, ok := result.(*Failure)
	if !ok {
		t.Fatalf("expected *Failure, got %T", result)
	}
	if failure.Kind != KindAuthentication {
		t.Errorf("Kind = %q, want %q", failure.Kind, KindAuthentication)
	}
	if !strings.Contains(failure.Message, "No auth credentials found") {
		t.Errorf("expected upstream message in failure, got %q", failure.Message)
	}

	var body map[string]interface{}
	raw, _ := json.Marshal(failure)
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body) != 1 {
		t.Errorf("failure body must only carry \"error\", got %s", raw)
	}
	if _, ok := body["error"].(string); !ok {
		t.Errorf("failure body must carry a string error, got %s", raw)
	}
}

func TestService_Chat_BodiesNeverMix(t *testing.T) {
	results := []ChatResult{
		newService(t, echoProvider(), nil).Chat(context.Background(), PromptRequest{Prompt: "a"}),
		newService(t, failingProvider(&providers.RateLimitError{Provider: "stub"}), nil).Chat(context.Background(), PromptRequest{Prompt: "a"}),
		newService(t, echoProvider(), nil).Chat(context.Background(), PromptRequest{Prompt: ""}),
	}

	for i, result := range results {
		raw, err := json.Marshal(result)
		if err != nil {
			t.Fatalf("result %d: marshal: %v", i, err)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("result %d: unmarshal: %v", i, err)
		}

		_, hasResponse := body["response"]
		_, hasError := body["error"]
		if hasResponse == hasError {
			t.Errorf("result %d: body must have exactly one of response/error, got %s", i, raw)
		}
		if result.OK() != hasResponse {
			t.Errorf("result %d: OK() = %v disagrees with body %s", i, result.OK(), raw)
		}
	}
}

func TestService_Chat_BlankPrompt(t *testing.T) {
	stub := echoProvider()
	svc := newService(t, stub, nil)

	result := svc.Chat(context.Background(), PromptRequest{Prompt: "  \n"})
	failure, ok := result.(*Failure)
	if !ok {
		t.Fatalf("expected failure, got %T", result)
	}
	if failure.Kind != KindInvalidRequest {
		t.Errorf("Kind = %q, want %q", failure.Kind, KindInvalidRequest)
	}
	if stub.last() != nil {
		t.Error("blank prompt must not reach the upstream")
	}
}

func TestService_Chat_ContextPropagation(t *testing.T) {
	stub := &stubProvider{fn: func(ctx context.Context, _ *providers.CompletionRequest) (*providers.CompletionResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	svc := newService(t, stub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := svc.Chat(ctx, PromptRequest{Prompt: "hi"})
	failure, ok := result.(*Failure)
	if !ok {
		t.Fatalf("expected failure, got %T", result)
	}
	if failure.Kind != KindCanceled {
		t.Errorf("Kind = %q, want %q", failure.Kind, KindCanceled)
	}
}

func TestService_Chat_Observer(t *testing.T) {
	observer := &recordingObserver{}

	newService(t, echoProvider(), observer).Chat(context.Background(), PromptRequest{Prompt: "a", Model: "m1"})
	newService(t, failingProvider(&providers.TimeoutError{Provider: "stub"}), observer).Chat(context.Background(), PromptRequest{Prompt: "a"})

	if len(observer.outcomes) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(observer.outcomes))
	}
	if observer.outcomes[0] != OutcomeSuccess || observer.models[0] != "m1" {
		t.Errorf("first observation = (%s, %s), want (m1, success)", observer.models[0], observer.outcomes[0])
	}
	if observer.outcomes[1] != string(KindTimeout) || observer.models[1] != "openai/gpt-oss-20b" {
		t.Errorf("second observation = (%s, %s), want (openai/gpt-oss-20b, timeout)", observer.models[1], observer.outcomes[1])
	}
}
