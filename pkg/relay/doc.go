// Package relay forwards a single prompt to a hosted chat-completion API and
// reports the outcome as a ChatResult.
//
// A ChatResult is either a *Success carrying the first choice's text verbatim
// or a *Failure carrying a FailureKind and a message. Callers switch on the
// concrete type:
//
//	switch r := svc.Chat(ctx, relay.PromptRequest{Prompt: "hello"}).(type) {
//	case *relay.Success:
//	    fmt.Println(r.Response)
//	case *relay.Failure:
//	    fmt.Println("error:", r.Kind, r.Message)
//	}
//
// Requests that omit a model use the service's default model. There are no
// retries and no state between calls.
package relay
