// Package tt holds shared test helpers: a scripted model and text
// assertions.
package tt

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// ScriptedModel is a configurable mock that implements iterbot.Model. It
// replays queued responses in order and records every conversation it was
// called with.
type ScriptedModel struct {
	name      string
	responses []string
	errors    []error
	callCount int

	// CapturedMessages stores the messages passed to each Call. Populated
	// automatically on every call.
	CapturedMessages [][]llms.MessageContent
}

// NewScriptedModel creates a ScriptedModel with the default name
// "test-model".
func NewScriptedModel() *ScriptedModel {
	return &ScriptedModel{name: "test-model"}
}

// WithName sets the model name.
func (m *ScriptedModel) WithName(name string) *ScriptedModel {
	m.name = name
	return m
}

// AddResponse queues a response for the next unanswered call.
func (m *ScriptedModel) AddResponse(text string) *ScriptedModel {
	m.responses = append(m.responses, text)
	return m
}

// AddResponses queues several responses at once.
func (m *ScriptedModel) AddResponses(texts ...string) *ScriptedModel {
	m.responses = append(m.responses, texts...)
	return m
}

// AddError queues an error for the next unanswered call.
func (m *ScriptedModel) AddError(err error) *ScriptedModel {
	// Pad errors with nils so this error lands after the queued responses.
	for len(m.errors) < len(m.responses) {
		m.errors = append(m.errors, nil)
	}
	m.errors = append(m.errors, err)
	m.responses = append(m.responses, "")
	return m
}

// CallCount returns the number of times Call has been invoked.
func (m *ScriptedModel) CallCount() int {
	return m.callCount
}

// Name implements iterbot.Model.
func (m *ScriptedModel) Name() string {
	return m.name
}

// Call implements iterbot.Model. Exhausted scripts return a terminating
// final answer so loops cannot spin forever.
func (m *ScriptedModel) Call(_ context.Context, messages []llms.MessageContent) (string, error) {
	idx := m.callCount
	m.callCount++

	m.CapturedMessages = append(m.CapturedMessages, messages)

	if idx < len(m.errors) && m.errors[idx] != nil {
		return "", m.errors[idx]
	}
	if idx < len(m.responses) && m.responses[idx] != "" {
		return m.responses[idx], nil
	}
	return "Thought: done\nFinal Answer: done", nil
}
