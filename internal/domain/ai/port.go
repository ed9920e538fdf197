package ai

import "context"

// Message is one role-tagged chat message sent to the provider.
type Message struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest describes one outbound provider call. JSONMode asks the
// provider for a schema-constrained object response where supported.
type CompletionRequest struct {
	System   string
	Messages []Message
	JSONMode bool
}

// Client performs exactly one completion call per invocation: no retries,
// no backoff, no state between calls.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
