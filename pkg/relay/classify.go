package relay

import (
	"context"
	"errors"
	"net/http"

	"promptrelay/pkg/providers"
)

// Classify converts an upstream error into a Failure.
// The failure message is the error's own text so callers see what the
// upstream reported.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	return &Failure{
		Kind:    kindOf(err),
		Message: err.Error(),
		Err:     err,
	}
}

func kindOf(err error) FailureKind {
	var (
		authErr       *providers.AuthError
		rateErr       *providers.RateLimitError
		timeoutErr    *providers.TimeoutError
		modelErr      *providers.ModelNotFoundError
		validationErr *providers.ValidationError
		parseErr      *providers.ParseError
		networkErr    *providers.NetworkError
		providerErr   *providers.ProviderError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.As(err, &authErr):
		return KindAuthentication
	case errors.As(err, &rateErr):
		return KindRateLimit
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &modelErr):
		return KindInvalidModel
	case errors.As(err, &validationErr):
		return KindInvalidRequest
	case errors.As(err, &parseErr):
		return KindMalformedResponse
	case errors.As(err, &networkErr):
		return KindNetwork
	case errors.As(err, &providerErr):
		switch providerErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return KindBadRequest
		}
		return KindUpstream
	default:
		return KindUpstream
	}
}
