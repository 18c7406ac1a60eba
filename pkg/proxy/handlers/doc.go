// Package handlers implements the HTTP handlers for the relay endpoints.
//
//	GET  /      HealthHandler   {"message": "... server is running"}
//	POST /chat  ChatHandler     {"prompt","response"} or {"error"}
//
// The handlers depend only on the Relay interface, which *relay.Service
// implements, so tests can drive them with a stub.
package handlers
