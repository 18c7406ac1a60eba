// Package openai implements an OpenAI-compatible chat completion adapter.
//
// The adapter posts to <base_url>/chat/completions with a bearer token and
// returns the first choice of the reply. It is used against OpenRouter, whose
// API mirrors OpenAI's request and response shapes.
//
//	provider, err := openai.NewProvider(providers.ProviderConfig{
//	    Name:    "openrouter",
//	    BaseURL: "https://openrouter.ai/api/v1",
//	    APIKey:  os.Getenv("OPENROUTER_API_KEY"),
//	    Timeout: 60 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
package openai
