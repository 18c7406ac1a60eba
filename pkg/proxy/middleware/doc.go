// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// # Middleware Chain
//
// The server wraps the router as:
//
//	handler = RequestID(Logging(Recovery(router)))
//
// and installs MetricsMiddleware inside the router with Router.Use, so it
// sees the matched route template.
//
// Order (outermost to innermost):
//  1. RequestID: accept or generate X-Request-ID and store it in the context
//  2. Logging: one access line per request, including recovered panics
//  3. Recovery: turn panics into 500 {"error": "internal server error"}
//
// Every log line written below RequestID carries the request_id.
//
// # Request ID
//
// RequestIDMiddleware generates a UUID v4 for each request:
//
//	X-Request-ID: 550e8400-e29b-41d4-a716-446655440000
//
// A client-supplied X-Request-ID is kept when it is at most 128 URL-safe
// characters.
package middleware
