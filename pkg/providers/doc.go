// Package providers defines the upstream abstraction used to reach hosted
// language models.
//
// # Overview
//
// The package normalizes chat completion requests and responses so the rest
// of the service does not depend on a vendor's wire format. It is organized
// into three layers:
//
//  1. Provider interface: the contract every adapter implements
//  2. HTTPProvider: shared HTTP plumbing (connection pooling, timeouts, status mapping)
//  3. Adapters: wire formats, currently the OpenAI-compatible one in package openai
//
// # Error Handling
//
// Failures are reported as typed errors so callers can branch with errors.As:
//
//   - AuthError: credentials rejected (HTTP 401/403)
//   - RateLimitError: quota exceeded (HTTP 429), with Retry-After when present
//   - ModelNotFoundError: the requested model is unknown to the upstream
//   - ProviderError: any other non-2xx status, or an error object in a 2xx body
//   - TimeoutError: the configured timeout elapsed
//   - NetworkError: the upstream could not be reached
//   - ParseError: the body was not a usable completion
//   - ValidationError: the request was rejected before sending
//
// A cancelled context yields an error wrapping context.Canceled.
//
// # Retries
//
// There are none. Each SendCompletion call makes exactly one HTTP attempt.
package providers
