package iterbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_Actions(t *testing.T) {
	type input struct {
		text string
	}

	type expected struct {
		thought string
		action  string
		args    map[string]any
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "thought action and input",
			input: input{text: "Thought: I need the current time.\n" +
				"Action: get_current_time\n" +
				"Action Input: {}"},
			expected: expected{
				thought: "I need the current time.",
				action:  "get_current_time",
				args:    map[string]any{},
			},
		},
		{
			name: "action with arguments",
			input: input{text: "Thought: search it\n" +
				"Action: search_web\n" +
				`Action Input: {"query": "go generics", "num_results": 2}`},
			expected: expected{
				thought: "search it",
				action:  "search_web",
				args:    map[string]any{"query": "go generics", "num_results": float64(2)},
			},
		},
		{
			name: "multiline action input",
			input: input{text: "Action: search_web\n" +
				"Action Input: {\n" +
				`  "query": "weather"` + "\n" +
				"}"},
			expected: expected{
				action: "search_web",
				args:   map[string]any{"query": "weather"},
			},
		},
		{
			name: "action without input defaults to empty args",
			input: input{text: "Thought: no args needed\n" +
				"Action: get_epoch_time"},
			expected: expected{
				thought: "no args needed",
				action:  "get_epoch_time",
				args:    map[string]any{},
			},
		},
		{
			name: "labels match case insensitively",
			input: input{text: "thought: lower case labels\n" +
				"action: get_current_date\n" +
				"action input: {}"},
			expected: expected{
				thought: "lower case labels",
				action:  "get_current_date",
				args:    map[string]any{},
			},
		},
		{
			name: "indented labels",
			input: input{text: "  Thought: indented\n" +
				"  Action: get_current_time\n" +
				"  Action Input: {}"},
			expected: expected{
				thought: "indented",
				action:  "get_current_time",
				args:    map[string]any{},
			},
		},
		{
			name: "decorated tool name is cleaned",
			input: input{text: "Action: `get_current_time()`\n" +
				"Action Input: {}"},
			expected: expected{
				action: "get_current_time",
				args:   map[string]any{},
			},
		},
		{
			name: "single quoted json is repaired",
			input: input{text: "Action: search_web\n" +
				"Action Input: {'query': 'golang'}"},
			expected: expected{
				action: "search_web",
				args:   map[string]any{"query": "golang"},
			},
		},
		{
			name: "trailing comma is repaired",
			input: input{text: "Action: search_web\n" +
				`Action Input: {"query": "golang",}`},
			expected: expected{
				action: "search_web",
				args:   map[string]any{"query": "golang"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := ParseResponse(tt.input.text)

			require.NoError(t, step.ParseErr)
			assert.False(t, step.Final)
			assert.Equal(t, tt.expected.thought, step.Thought)
			assert.Equal(t, tt.expected.action, step.Action)
			assert.Equal(t, tt.expected.args, step.ActionInput)
		})
	}
}

func TestParseResponse_FinalAnswer(t *testing.T) {
	type input struct {
		text string
	}

	type expected struct {
		thought string
		answer  string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "thought and final answer",
			input: input{text: "Thought: I know this now.\n" +
				"Final Answer: It is 14:32:07."},
			expected: expected{
				thought: "I know this now.",
				answer:  "It is 14:32:07.",
			},
		},
		{
			name:     "final answer alone",
			input:    input{text: "Final Answer: 42"},
			expected: expected{answer: "42"},
		},
		{
			name: "multiline final answer",
			input: input{text: "Final Answer: First line.\n" +
				"Second line."},
			expected: expected{answer: "First line.\nSecond line."},
		},
		{
			name:     "empty final answer still terminates",
			input:    input{text: "Final Answer:"},
			expected: expected{answer: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := ParseResponse(tt.input.text)

			require.NoError(t, step.ParseErr)
			assert.True(t, step.Final)
			assert.Equal(t, tt.expected.thought, step.Thought)
			assert.Equal(t, tt.expected.answer, step.FinalAnswer)
			assert.Empty(t, step.Action)
		})
	}
}

func TestParseResponse_FinalAnswerWinsOverAction(t *testing.T) {
	text := "Thought: done, but let me also call a tool\n" +
		"Action: get_current_time\n" +
		"Action Input: {}\n" +
		"Final Answer: It is noon."

	step := ParseResponse(text)

	require.NoError(t, step.ParseErr)
	assert.True(t, step.Final)
	assert.Equal(t, "It is noon.", step.FinalAnswer)
	assert.Empty(t, step.Action)
	assert.Nil(t, step.ActionInput)
}

func TestParseResponse_ThoughtOnly(t *testing.T) {
	type input struct {
		text string
	}

	type expected struct {
		thought string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "thought label only",
			input:    input{text: "Thought: still working on it"},
			expected: expected{thought: "still working on it"},
		},
		{
			name: "multiline thought",
			input: input{text: "Thought: line one\n" +
				"line two"},
			expected: expected{thought: "line one\nline two"},
		},
		{
			name:     "no labels at all is a bare thought",
			input:    input{text: "I'm not sure what to do here."},
			expected: expected{thought: "I'm not sure what to do here."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := ParseResponse(tt.input.text)

			require.NoError(t, step.ParseErr)
			assert.False(t, step.Final)
			assert.Empty(t, step.Action)
			assert.Equal(t, tt.expected.thought, step.Thought)
		})
	}
}

func TestParseResponse_ParseErrors(t *testing.T) {
	type input struct {
		text string
	}

	type expected struct {
		err error
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "unrepairable action input",
			input: input{text: "Action: search_web\n" +
				"Action Input: not json at all {{{"},
			expected: expected{err: ErrInvalidActionInput},
		},
		{
			name: "action input is a json array",
			input: input{text: "Action: search_web\n" +
				"Action Input: [1, 2, 3]"},
			expected: expected{err: ErrInvalidActionInput},
		},
		{
			name:     "action without tool name",
			input:    input{text: "Thought: hm\nAction:"},
			expected: expected{err: ErrMissingToolName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := ParseResponse(tt.input.text)

			require.Error(t, step.ParseErr)
			assert.ErrorIs(t, step.ParseErr, tt.expected.err)
			assert.Empty(t, step.Action)
			assert.Nil(t, step.ActionInput)
			assert.False(t, step.Final)
		})
	}
}

func TestParseResponse_IgnoresTextBeforeFirstLabel(t *testing.T) {
	text := "Sure, let me help with that.\n" +
		"Thought: checking the date\n" +
		"Action: get_current_date\n" +
		"Action Input: {}"

	step := ParseResponse(text)

	require.NoError(t, step.ParseErr)
	assert.Equal(t, "checking the date", step.Thought)
	assert.Equal(t, "get_current_date", step.Action)
}
