package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// ChatCompletionsPath is the route an OpenAI-compatible client posts to
// when its base URL is MockServer.URL() + "/api/v1".
const ChatCompletionsPath = "/api/v1/chat/completions"

// MockServer is a mock HTTP server for testing upstream adapters.
// It simulates OpenAI-compatible responses, including errors and slow replies,
// and records every request it receives.
type MockServer struct {
	server    *httptest.Server
	responses map[string]MockResponse
	requests  []RecordedRequest
	mu        sync.Mutex
}

// MockResponse defines a mock response configuration.
type MockResponse struct {
	StatusCode int
	Body       interface{}
	Delay      time.Duration
	Headers    map[string]string

	// Echo answers with a completion whose content is the last message of
	// the incoming request. Body is ignored when Echo is set.
	Echo bool
}

// RecordedRequest is a request captured by the mock server.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// ChatRequest decodes the recorded body as a chat-completion request.
func (r RecordedRequest) ChatRequest() (MockChatRequest, error) {
	var req MockChatRequest
	err := json.Unmarshal(r.Body, &req)
	return req, err
}

// MockChatRequest is the subset of a chat-completion request tests inspect.
type MockChatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// NewMockServer creates a new mock server.
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]MockResponse),
	}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.handler))
	return ms
}

// URL returns the mock server's root URL.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// BaseURL returns the API base URL matching ChatCompletionsPath.
func (ms *MockServer) BaseURL() string {
	return ms.server.URL + "/api/v1"
}

// Close closes the mock server.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse sets a mock response for a specific path.
func (ms *MockServer) SetResponse(path string, response MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.responses[path] = response
}

// GetRequestCount returns the number of requests received.
func (ms *MockServer) GetRequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return len(ms.requests)
}

// LastRequest returns the most recent request, if any.
func (ms *MockServer) LastRequest() (RecordedRequest, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if len(ms.requests) == 0 {
		return RecordedRequest{}, false
	}
	return ms.requests[len(ms.requests)-1], true
}

func (ms *MockServer) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	ms.mu.Lock()
	ms.requests = append(ms.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	response, ok := ms.responses[r.URL.Path]
	ms.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}

	responseBody := response.Body
	if response.Echo {
		responseBody = echoBody(body)
	}

	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	w.WriteHeader(statusCode)

	if responseBody != nil {
		switch v := responseBody.(type) {
		case string:
			_, _ = w.Write([]byte(v))
		case []byte:
			_, _ = w.Write(v)
		default:
			_ = json.NewEncoder(w).Encode(v)
		}
	}
}

func echoBody(raw []byte) interface{} {
	var req MockChatRequest
	if err := json.Unmarshal(raw, &req); err != nil || len(req.Messages) == 0 {
		return MockErrorBody("invalid_request_error", "messages are required")
	}
	return MockOpenAIResponse(req.Messages[len(req.Messages)-1].Content, req.Model)
}

// MockOpenAIResponse creates a mock chat completion response.
func MockOpenAIResponse(content string, model string) map[string]interface{} {
	return map[string]interface{}{
		"id":      "gen-123",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   model,
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     10,
			"completion_tokens": 20,
			"total_tokens":      30,
		},
	}
}

// MockEmptyChoicesResponse creates a completion response with no choices.
func MockEmptyChoicesResponse(model string) map[string]interface{} {
	return map[string]interface{}{
		"id":      "gen-456",
		"object":  "chat.completion",
		"model":   model,
		"choices": []map[string]interface{}{},
	}
}

// MockErrorBody creates an OpenAI-style error envelope.
func MockErrorBody(errorType, message string) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"type":    errorType,
		},
	}
}

// MockErrorResponse creates a mock error response.
func MockErrorResponse(statusCode int, message string) MockResponse {
	body := MockErrorBody("invalid_request_error", message)
	body["error"].(map[string]interface{})["code"] = statusCode

	return MockResponse{
		StatusCode: statusCode,
		Body:       body,
	}
}

// MockAuthError creates a 401 authentication error response.
func MockAuthError() MockResponse {
	return MockErrorResponse(http.StatusUnauthorized, "No auth credentials found")
}

// MockRateLimitError creates a 429 rate limit error response.
func MockRateLimitError(retryAfter int) MockResponse {
	response := MockErrorResponse(http.StatusTooManyRequests, "Rate limit exceeded")
	response.Headers = map[string]string{
		"Retry-After": fmt.Sprintf("%d", retryAfter),
	}
	return response
}

// MockInvalidModelError creates the 400 response OpenRouter sends for an
// unknown model identifier.
func MockInvalidModelError(model string) MockResponse {
	return MockErrorResponse(http.StatusBadRequest, fmt.Sprintf("%s is not a valid model ID", model))
}

// MockTimeoutError creates a slow response to simulate timeout.
func MockTimeoutError(delay time.Duration) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       MockOpenAIResponse("too late", "openai/gpt-oss-20b"),
		Delay:      delay,
	}
}

// MockServerError creates a 500 internal server error response.
func MockServerError() MockResponse {
	return MockErrorResponse(http.StatusInternalServerError, "Internal server error")
}

// ExpectHeader checks if a request has a specific header value.
func ExpectHeader(r RecordedRequest, key, value string) error {
	actual := r.Header.Get(key)
	if !strings.Contains(actual, value) {
		return fmt.Errorf("header %q mismatch: expected %q, got %q", key, value, actual)
	}
	return nil
}
