// Package proxy holds the HTTP wire codec for promptrelay: parsing the
// inbound /chat body, writing JSON responses, and choosing the status code
// for a relay failure.
//
// # Request Format
//
//	POST /chat
//	{"prompt": "Hello", "model": "openai/gpt-oss-20b"}
//
// "prompt" is required and must be a non-blank string. "model" is optional;
// when omitted the relay uses its default model.
//
// # Response Format
//
// Success:
//
//	{"prompt": "Hello", "response": "Hi there!"}
//
// Failure:
//
//	{"error": "provider \"openrouter\" authentication failed: No auth credentials found"}
//
// A body never carries both shapes. Upstream failures are answered with
// 200 unless status mapping is enabled (see StatusFor). Invalid inbound
// bodies are answered with 422.
package proxy
