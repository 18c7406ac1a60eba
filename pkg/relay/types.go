package relay

import "promptrelay/pkg/providers"

// PromptRequest is an inbound request to relay a single prompt.
type PromptRequest struct {
	// Prompt is the user message. It must not be blank.
	Prompt string `json:"prompt"`

	// Model optionally names the upstream model. Blank means the default model.
	Model string `json:"model,omitempty"`
}

// HealthStatus is the fixed liveness payload.
type HealthStatus struct {
	Message string `json:"message"`
}

// ChatResult is the outcome of a relay call: either *Success or *Failure.
// The two variants serialize to disjoint JSON shapes, so a response body
// never carries both a response and an error.
type ChatResult interface {
	// OK reports whether the result is a Success.
	OK() bool

	isChatResult()
}

// Success is a completed relay call.
type Success struct {
	// Prompt echoes the request prompt.
	Prompt string `json:"prompt"`

	// Response is the first choice's message content, unmodified.
	Response string `json:"response"`

	// Model is the model the upstream reported serving the request.
	Model string `json:"-"`

	// Usage is the upstream's token accounting, when reported.
	Usage providers.TokenUsage `json:"-"`
}

// OK implements ChatResult.
func (*Success) OK() bool { return true }

func (*Success) isChatResult() {}

// Failure is a relay call that did not produce a completion.
type Failure struct {
	// Kind classifies the failure.
	Kind FailureKind `json:"-"`

	// Message is the human-readable error text returned to the caller.
	Message string `json:"error"`

	// Err is the underlying error, kept for logging.
	Err error `json:"-"`
}

// OK implements ChatResult.
func (*Failure) OK() bool { return false }

func (*Failure) isChatResult() {}

// Error implements error so a Failure can travel through error-returning code.
func (f *Failure) Error() string { return f.Message }

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error { return f.Err }

// FailureKind classifies why a relay call failed.
type FailureKind string

const (
	KindInvalidRequest    FailureKind = "invalid_request"
	KindAuthentication    FailureKind = "authentication"
	KindRateLimit         FailureKind = "rate_limit"
	KindTimeout           FailureKind = "timeout"
	KindInvalidModel      FailureKind = "invalid_model"
	KindBadRequest        FailureKind = "bad_request"
	KindUpstream          FailureKind = "upstream"
	KindMalformedResponse FailureKind = "malformed_response"
	KindNetwork           FailureKind = "network"
	KindCanceled          FailureKind = "canceled"
)

// OutcomeSuccess labels successful calls in metrics and logs.
const OutcomeSuccess = "success"

// Outcome returns the metrics/log label for a result.
func Outcome(result ChatResult) string {
	if f, ok := result.(*Failure); ok {
		return string(f.Kind)
	}
	return OutcomeSuccess
}
