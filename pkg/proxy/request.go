package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"promptrelay/pkg/config"
	"promptrelay/pkg/relay"
)

const (
	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"

	// ContentTypeJSON is the content type of every response body.
	ContentTypeJSON = "application/json"
)

// promptRequestWire is the inbound body with fields kept raw so their JSON
// types can be checked before decoding.
type promptRequestWire struct {
	Prompt json.RawMessage `json:"prompt"`
	Model  json.RawMessage `json:"model"`
}

// ParsePromptRequest parses an HTTP request body into a PromptRequest.
// It enforces maxBytes (config.DefaultChatMaxBodyBytes when maxBytes <= 0),
// requires a JSON object with a non-blank string "prompt", and accepts an
// optional string "model". Unknown fields are ignored.
//
// Every failure is a *RequestError.
//
// Example usage:
//
//	req, err := ParsePromptRequest(r, cfg.Chat.MaxBodyBytes)
//	if err != nil {
//	    WriteError(w, http.StatusUnprocessableEntity, err.Error())
//	    return
//	}
func ParsePromptRequest(r *http.Request, maxBytes int64) (relay.PromptRequest, error) {
	if maxBytes <= 0 {
		maxBytes = config.DefaultChatMaxBodyBytes
	}

	if r.Body == nil {
		return relay.PromptRequest{}, &RequestError{Message: "request body is required", Param: "body"}
	}

	// Read one byte past the limit to detect oversized bodies
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return relay.PromptRequest{}, &RequestError{
			Message: fmt.Sprintf("failed to read request body: %v", err),
			Param:   "body",
		}
	}

	if int64(len(body)) > maxBytes {
		return relay.PromptRequest{}, &RequestError{
			Message: fmt.Sprintf("request body exceeds maximum size of %d bytes", maxBytes),
			Param:   "body",
		}
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return relay.PromptRequest{}, &RequestError{Message: "request body is required", Param: "body"}
	}
	if body[0] != '{' {
		return relay.PromptRequest{}, &RequestError{Message: "request body must be a JSON object", Param: "body"}
	}

	var wire promptRequestWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return relay.PromptRequest{}, &RequestError{
			Message: fmt.Sprintf("invalid JSON: %v", err),
			Param:   "body",
		}
	}

	prompt, present, err := decodeString(wire.Prompt)
	if err != nil {
		return relay.PromptRequest{}, &RequestError{Message: "prompt must be a string", Param: "prompt"}
	}
	if !present {
		return relay.PromptRequest{}, &RequestError{Message: "prompt is required", Param: "prompt"}
	}
	if strings.TrimSpace(prompt) == "" {
		return relay.PromptRequest{}, &RequestError{Message: "prompt must not be empty", Param: "prompt"}
	}

	model, _, err := decodeString(wire.Model)
	if err != nil {
		return relay.PromptRequest{}, &RequestError{Message: "model must be a string", Param: "model"}
	}

	return relay.PromptRequest{Prompt: prompt, Model: model}, nil
}

// decodeString decodes an optional JSON string. Absent and null values
// report present=false.
func decodeString(raw json.RawMessage) (value string, present bool, err error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", true, err
	}
	return value, true, nil
}

// ExtractRequestID extracts the request ID from the X-Request-ID header.
// If the header is not present, it returns an empty string.
func ExtractRequestID(r *http.Request) string {
	return r.Header.Get(RequestIDHeader)
}

// RequestError represents a request parsing or validation error.
type RequestError struct {
	Message string
	Param   string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}
