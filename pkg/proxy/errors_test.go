package proxy

import (
	"net/http"
	"testing"

	"promptrelay/pkg/relay"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind     relay.FailureKind
		unmapped int
		mapped   int
	}{
		{relay.KindInvalidRequest, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity},
		{relay.KindAuthentication, http.StatusOK, http.StatusUnauthorized},
		{relay.KindRateLimit, http.StatusOK, http.StatusTooManyRequests},
		{relay.KindTimeout, http.StatusOK, http.StatusGatewayTimeout},
		{relay.KindInvalidModel, http.StatusOK, http.StatusBadRequest},
		{relay.KindBadRequest, http.StatusOK, http.StatusBadRequest},
		{relay.KindCanceled, http.StatusOK, StatusClientClosedRequest},
		{relay.KindUpstream, http.StatusOK, http.StatusBadGateway},
		{relay.KindMalformedResponse, http.StatusOK, http.StatusBadGateway},
		{relay.KindNetwork, http.StatusOK, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			f := &relay.Failure{Kind: tt.kind}
			if got := StatusFor(f, false); got != tt.unmapped {
				t.Errorf("StatusFor(mapStatus=false) = %d, want %d", got, tt.unmapped)
			}
			if got := StatusFor(f, true); got != tt.mapped {
				t.Errorf("StatusFor(mapStatus=true) = %d, want %d", got, tt.mapped)
			}
		})
	}
}
