// Package llm provides the inference gateway shared by all agent roles
// and the startup-time backend selection.
package llm

import "context"

// Message is a role-tagged entry in a model transcript.
type Message struct {
	Role    string
	Content string
}

// Response is the result of a single completion call.
type Response struct {
	Content string
	Model   string
}

// Client is the uniform inference capability behind every agent role:
// submit a transcript to a named model, receive generated text or fail.
// Implementations do not retry; retry policy, if any, belongs to the
// caller.
type Client interface {
	// Generate submits the transcript and returns free-form text.
	Generate(ctx context.Context, messages []Message) (Response, error)

	// GenerateJSON is Generate with the provider constrained to emit a
	// single JSON object. The response is still raw text; parsing is
	// the caller's responsibility.
	GenerateJSON(ctx context.Context, messages []Message) (Response, error)
}
