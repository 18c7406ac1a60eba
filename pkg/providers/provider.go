package providers

import "context"

// Provider is the interface every upstream adapter implements.
//
// Implementations make exactly one upstream attempt per call and must return
// promptly when ctx is cancelled.
//
//	resp, err := provider.SendCompletion(ctx, &providers.CompletionRequest{
//	    Model:    "openai/gpt-oss-20b",
//	    Messages: []providers.Message{{Role: providers.RoleUser, Content: "Hello!"}},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.Content)
type Provider interface {
	// SendCompletion sends a completion request and returns the normalized response.
	// Errors are one of the typed errors in this package.
	SendCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// GetName returns the provider's configured name.
	GetName() string

	// GetConfig returns the provider's configuration.
	GetConfig() ProviderConfig

	// Close releases idle connections. The provider must not be used afterwards.
	Close() error
}
