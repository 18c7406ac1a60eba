package proxy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"promptrelay/pkg/relay"
)

func TestWriteJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	if err := WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "ok"}); err != nil {
		t.Fatalf("WriteJSONResponse() error = %v", err)
	}

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != ContentTypeJSON {
		t.Errorf("Content-Type = %q, want %q", ct, ContentTypeJSON)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["message"] != "ok" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	_ = WriteError(w, http.StatusNotFound, "not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if got := w.Body.String(); got != "{\"error\":\"not found\"}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestWriteChatResult(t *testing.T) {
	tests := []struct {
		name       string
		result     relay.ChatResult
		mapStatus  bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			result:     &relay.Success{Prompt: "hello", Response: "hi", Model: "m"},
			wantStatus: http.StatusOK,
			wantBody:   `{"prompt":"hello","response":"hi"}`,
		},
		{
			name:       "upstream failure defaults to 200",
			result:     &relay.Failure{Kind: relay.KindAuthentication, Message: "bad key"},
			wantStatus: http.StatusOK,
			wantBody:   `{"error":"bad key"}`,
		},
		{
			name:       "upstream failure with status mapping",
			result:     &relay.Failure{Kind: relay.KindRateLimit, Message: "slow down"},
			mapStatus:  true,
			wantStatus: http.StatusTooManyRequests,
			wantBody:   `{"error":"slow down"}`,
		},
		{
			name:       "invalid request",
			result:     &relay.Failure{Kind: relay.KindInvalidRequest, Message: "prompt is required"},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"error":"prompt is required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := WriteChatResult(w, tt.result, tt.mapStatus); err != nil {
				t.Fatalf("WriteChatResult() error = %v", err)
			}

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Body.String(); got != tt.wantBody+"\n" {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}
