package handlers

import (
	"context"

	"promptrelay/pkg/relay"
)

// Relay is the part of relay.Service the handlers depend on.
type Relay interface {
	Health() relay.HealthStatus
	Chat(ctx context.Context, req relay.PromptRequest) relay.ChatResult
}
