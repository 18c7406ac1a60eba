// Package server wires the relay handlers into an HTTP server and manages
// its lifecycle.
//
// # Routes
//
//   - GET  /         liveness, fixed {"message": ...}
//   - POST /chat     relay one prompt
//   - GET  /metrics  Prometheus scrape endpoint, only when metrics are enabled
//
// Unknown paths answer 404 and wrong methods 405, both with an
// {"error": ...} body.
//
// # Middleware Chain
//
// Requests pass through RequestID, then Recovery, then Logging before the
// router. Metrics are recorded inside the router so the route template is
// known.
//
// # Graceful Shutdown
//
// Start and Serve block until their context is cancelled. Shutdown then
// stops accepting connections and waits up to proxy.shutdown_timeout for
// in-flight requests.
package server
