package models

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"
)

// NewOllama creates an iterbot.Model backed by a local Ollama instance.
// model is an Ollama model name (see the iterbot.ModelOllama* catalog);
// serverURL is the Ollama base URL, empty for the client default
// http://localhost:11434.
func NewOllama(model, serverURL string) (*LCG, error) {
	opts := []ollama.Option{ollama.WithModel(model)}
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	return NewLCG(llm, model), nil
}
