// Package models provides iterbot.Model implementations backed by
// langchaingo, plus a logging middleware.
package models

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/iterbot/iterbot"
)

// LCG wraps an llms.Model and implements iterbot.Model. Any langchaingo
// backend can drive an agent through it.
//
// Example usage:
//
//	llm, _ := ollama.New(ollama.WithModel("llama3.2"))
//	model := models.NewLCG(llm, "llama3.2")
//	agent := react.NewAgent(model)
type LCG struct {
	model llms.Model
	name  string
}

// NewLCG creates an LCG wrapping the given llms.Model. name identifies the
// backend model; agents use it for logging only.
func NewLCG(model llms.Model, name string) *LCG {
	return &LCG{model: model, name: name}
}

// Unwrap returns the underlying llms.Model.
func (m *LCG) Unwrap() llms.Model {
	return m.model
}

// Name implements iterbot.Model.
func (m *LCG) Name() string {
	return m.name
}

// Call implements iterbot.Model. It returns the text of the first choice.
func (m *LCG) Call(ctx context.Context, messages []llms.MessageContent) (string, error) {
	response, err := m.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", m.name)
	}
	return response.Choices[0].Content, nil
}

// Compile-time check that LCG implements iterbot.Model.
var _ iterbot.Model = (*LCG)(nil)
