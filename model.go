package iterbot

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// Model is a chat completion backend.
//
// The agent sends the full conversation (system prompt plus history) on
// every call and consumes the reply as plain text; tool use is negotiated
// through the prompt, not through provider-side tool calling. Call is the
// loop's only suspension point: an error returned from it aborts the run.
//
// Implementations in the models package wrap langchaingo backends; any
// other backend can be plugged in by implementing these two methods.
type Model interface {
	// Name returns the backend model identifier (e.g. "llama3.2"). The
	// agent passes it through opaquely and uses it only for logging.
	Name() string

	// Call sends the conversation to the backend and returns the text of
	// its reply.
	Call(ctx context.Context, messages []llms.MessageContent) (string, error)
}
