package iterbot

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// Generate obtains a completion for a single prompt from a langchaingo
// model, outside of any agent loop. Useful for smoke tests and one-shot
// generation with the same backend an agent uses.
func Generate(ctx context.Context, model llms.Model, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, model, prompt)
}
