package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"

	"promptrelay/pkg/relay"
)

// ErrorBody is the {"error": ...} body used for every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSONResponse writes a JSON response to the HTTP response writer.
// It sets the appropriate content-type header and handles marshaling errors.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSONResponse(w, statusCode, ErrorBody{Error: message})
}

// WriteChatResult writes a relay result. A Success is always 200. A Failure
// is written with the status from StatusFor.
func WriteChatResult(w http.ResponseWriter, result relay.ChatResult, mapStatus bool) error {
	switch res := result.(type) {
	case *relay.Success:
		return WriteJSONResponse(w, http.StatusOK, res)
	case *relay.Failure:
		return WriteJSONResponse(w, StatusFor(res, mapStatus), res)
	default:
		return WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
