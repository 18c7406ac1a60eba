package proxy

import (
	"net/http"

	"promptrelay/pkg/relay"
)

// StatusClientClosedRequest is recorded when the caller went away before the
// upstream answered. Nothing is delivered to that caller; the code only shows
// up in logs and metrics.
const StatusClientClosedRequest = 499

// StatusFor returns the HTTP status for a failure.
//
// Invalid inbound requests are always 422. Every other failure is 200 unless
// mapStatus is set, in which case the failure kind picks the status:
//
//	authentication            -> 401
//	rate_limit                -> 429
//	timeout                   -> 504
//	invalid_model, bad_request -> 400
//	canceled                  -> 499
//	anything else             -> 502
func StatusFor(f *relay.Failure, mapStatus bool) int {
	if f.Kind == relay.KindInvalidRequest {
		return http.StatusUnprocessableEntity
	}
	if !mapStatus {
		return http.StatusOK
	}

	switch f.Kind {
	case relay.KindAuthentication:
		return http.StatusUnauthorized
	case relay.KindRateLimit:
		return http.StatusTooManyRequests
	case relay.KindTimeout:
		return http.StatusGatewayTimeout
	case relay.KindInvalidModel, relay.KindBadRequest:
		return http.StatusBadRequest
	case relay.KindCanceled:
		return StatusClientClosedRequest
	default:
		return http.StatusBadGateway
	}
}
