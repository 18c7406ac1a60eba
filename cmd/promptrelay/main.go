// Promptrelay is a small HTTP relay in front of OpenRouter's chat completion API.
//
// It exposes two endpoints:
//   - GET /      liveness message naming the default model
//   - POST /chat relays {"prompt": "...", "model": "..."} as a single user
//     message and returns {"prompt": "...", "response": "..."}
//
// Usage:
//
//	# Start the server with config.yaml and .env from the working directory
//	promptrelay serve
//
//	# Override the listen address
//	promptrelay serve --listen 0.0.0.0:8000
//
//	# Send one prompt from the terminal
//	promptrelay ask "Why is the sky blue?"
//
//	# Print the effective configuration with the API key masked
//	promptrelay validate
package main

func main() {
	Execute()
}
