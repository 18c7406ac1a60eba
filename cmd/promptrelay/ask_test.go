package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	testhelpers "promptrelay/internal/providers"
	"promptrelay/pkg/cli"
	"promptrelay/pkg/config"
	"promptrelay/pkg/relay"
	"promptrelay/pkg/telemetry/logging"
)

// upstream starts a mock OpenRouter answering chat completions with response.
func upstream(t *testing.T, response testhelpers.MockResponse) *testhelpers.MockServer {
	t.Helper()
	srv := testhelpers.NewMockServer()
	srv.SetResponse(testhelpers.ChatCompletionsPath, response)
	t.Cleanup(srv.Close)
	return srv
}

func testRelay(t *testing.T, baseURL string) *relay.Service {
	t.Helper()

	cfg := config.Default()
	cfg.Upstream.BaseURL = baseURL
	cfg.Upstream.APIKey = "sk-or-test-key"
	cfg.Upstream.Timeout = 5 * time.Second

	logger, err := logging.New(logging.Config{Level: "error", Format: "json", Writer: io.Discard})
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}

	provider, err := newProvider(cfg.Upstream)
	if err != nil {
		t.Fatalf("newProvider() error = %v", err)
	}
	t.Cleanup(func() { provider.Close() })

	svc, err := newRelay(cfg.Upstream, provider, nil, logger)
	if err != nil {
		t.Fatalf("newRelay() error = %v", err)
	}
	return svc
}

func TestAsk_Text(t *testing.T) {
	svc := testRelay(t, upstream(t, testhelpers.MockResponse{Echo: true}).BaseURL())

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := ask(context.Background(), svc, relay.PromptRequest{Prompt: "hello"}, cli.FormatText, out, errOut)
	if err != nil {
		t.Fatalf("ask() error = %v", err)
	}
	if out.String() != "hello\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "hello\n")
	}
	if errOut.Len() != 0 {
		t.Errorf("stderr = %q, want empty", errOut.String())
	}
}

func TestAsk_JSON(t *testing.T) {
	svc := testRelay(t, upstream(t, testhelpers.MockResponse{Echo: true}).BaseURL())

	out := &bytes.Buffer{}
	err := ask(context.Background(), svc, relay.PromptRequest{Prompt: "hello", Model: "openai/gpt-4o-mini"}, cli.FormatJSON, out, io.Discard)
	if err != nil {
		t.Fatalf("ask() error = %v", err)
	}

	var got askOutput
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	want := askOutput{Prompt: "hello", Response: "hello", Model: "openai/gpt-4o-mini"}
	if got != want {
		t.Errorf("output = %+v, want %+v", got, want)
	}
}

func TestAsk_FailureExitsOne(t *testing.T) {
	svc := testRelay(t, upstream(t, testhelpers.MockAuthError()).BaseURL())

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := ask(context.Background(), svc, relay.PromptRequest{Prompt: "hello"}, cli.FormatText, out, errOut)

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("ask() error = %v, want exit status 1", err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty on failure", out.String())
	}
	if !strings.Contains(errOut.String(), "No auth credentials found") {
		t.Errorf("stderr = %q, want upstream error text", errOut.String())
	}
}

func TestReadPrompt(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr bool
	}{
		{"args joined", []string{"why", "is", "the", "sky", "blue?"}, "", "why is the sky blue?", false},
		{"args win over stdin", []string{"hello"}, "ignored", "hello", false},
		{"stdin", nil, "from stdin\n", "from stdin", false},
		{"multiline stdin", nil, "line one\nline two\n", "line one\nline two", false},
		{"empty stdin", nil, "", "", true},
		{"blank args", []string{" "}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPrompt(tt.args, strings.NewReader(tt.stdin))
			if (err != nil) != tt.wantErr {
				t.Fatalf("readPrompt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuietLevel(t *testing.T) {
	for in, want := range map[string]string{"debug": "warn", "info": "warn", "warn": "warn", "error": "error"} {
		if got := quietLevel(in); got != want {
			t.Errorf("quietLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
