package react

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/iterbot/iterbot"
	"github.com/iterbot/iterbot/tools"
)

// Agent drives the ReAct (Reasoning and Acting) loop.
// Flow: Think -> Act -> Observe -> Repeat, until a final answer or an abort.
//
// Each Run starts from a fresh conversation: the system prompt is rebuilt
// from the current tool set and custom prompt, and history holds only the
// turns of that run. The agent itself keeps no memory across runs beyond
// its configuration and tools.
//
// The agent is single-threaded: one Run at a time per instance. Callers
// that need parallel runs use separate instances.
type Agent struct {
	model         iterbot.Model
	registry      *iterbot.Registry
	prompts       *iterbot.PromptBuilder
	customPrompt  string
	maxIterations int
	maxPromptSize int
	loopThreshold int
	verboseWriter io.Writer
	logger        zerolog.Logger
}

// NewAgent creates an Agent with the given model and default settings.
// Defaults:
//   - Tools: tools.Defaults()
//   - MaxIterations: iterbot.DefaultMaxIterations
//   - MaxCustomPromptSize: iterbot.DefaultMaxCustomPromptSize
//   - LoopThreshold: iterbot.DefaultLoopThreshold
//   - VerboseWriter: os.Stdout
//   - Logger: zerolog.Nop()
func NewAgent(model iterbot.Model) *Agent {
	a := &Agent{
		model:         model,
		registry:      iterbot.NewRegistry(),
		prompts:       iterbot.NewPromptBuilder(),
		maxIterations: iterbot.DefaultMaxIterations,
		maxPromptSize: iterbot.DefaultMaxCustomPromptSize,
		loopThreshold: iterbot.DefaultLoopThreshold,
		verboseWriter: os.Stdout,
		logger:        zerolog.Nop(),
	}
	for _, t := range tools.Defaults() {
		a.registry.Register(t)
	}
	return a
}

// WithTools replaces the installed tool set. The given order becomes the
// enumeration order in the system prompt.
func (a *Agent) WithTools(toolset ...iterbot.Tool) *Agent {
	a.registry = iterbot.NewRegistry()
	for _, t := range toolset {
		a.registry.Register(t)
	}
	return a
}

// WithMaxIterations sets the iteration ceiling. Values below 1 are ignored.
func (a *Agent) WithMaxIterations(n int) *Agent {
	if n >= 1 {
		a.maxIterations = n
	}
	return a
}

// WithMaxCustomPromptSize sets the custom prompt bound, in runes, and
// re-truncates any stored custom prompt to the new bound. Bounds at or
// below zero disable the custom prompt.
func (a *Agent) WithMaxCustomPromptSize(n int) *Agent {
	a.maxPromptSize = n
	a.customPrompt = iterbot.TruncateAtWhitespace(a.customPrompt, n)
	return a
}

// WithCustomSystemPrompt sets the additional instructions appended to the
// system prompt. Same truncation semantics as SetCustomSystemPrompt.
func (a *Agent) WithCustomSystemPrompt(text string) *Agent {
	a.SetCustomSystemPrompt(text)
	return a
}

// WithLoopThreshold sets how many identical consecutive actions abort the
// run. Values below 1 fall back to iterbot.DefaultLoopThreshold.
func (a *Agent) WithLoopThreshold(n int) *Agent {
	a.loopThreshold = n
	return a
}

// WithVerboseWriter sets where the verbose Thought/Action/Observation
// stream goes when Run is called with verbose enabled.
func (a *Agent) WithVerboseWriter(w io.Writer) *Agent {
	a.verboseWriter = w
	return a
}

// WithPromptBuilder replaces the system prompt builder.
func (a *Agent) WithPromptBuilder(pb *iterbot.PromptBuilder) *Agent {
	a.prompts = pb
	return a
}

// WithLogger sets the logger. Runs derive a child logger tagged with a
// run_id; the default logger discards everything.
func (a *Agent) WithLogger(logger zerolog.Logger) *Agent {
	a.logger = logger
	return a
}

// AddTool registers fn under name, overwriting any existing entry.
func (a *Agent) AddTool(name string, fn iterbot.ToolFunc) {
	a.registry.Add(name, fn)
}

// RegisterTool adds a tool together with its prompt metadata.
func (a *Agent) RegisterTool(t iterbot.Tool) {
	a.registry.Register(t)
}

// RemoveTool removes the named tool. Removing an absent name is a no-op.
func (a *Agent) RemoveTool(name string) {
	a.registry.Remove(name)
}

// ListTools returns the registered tool names in registration order.
func (a *Agent) ListTools() []string {
	return a.registry.List()
}

// Tools returns the registered tools, with metadata, in registration order.
func (a *Agent) Tools() []iterbot.Tool {
	return a.registry.Tools()
}

// SetCustomSystemPrompt stores text as the additional instructions block
// of the system prompt. The text is trimmed and truncated to the
// configured bound once, here; later runs use the stored value as-is.
func (a *Agent) SetCustomSystemPrompt(text string) {
	a.customPrompt = iterbot.TruncateAtWhitespace(strings.TrimSpace(text), a.maxPromptSize)
}

// CustomSystemPrompt returns the stored custom prompt, empty when unset.
func (a *Agent) CustomSystemPrompt() string {
	return a.customPrompt
}

// RemoveCustomSystemPrompt clears the custom prompt.
func (a *Agent) RemoveCustomSystemPrompt() {
	a.customPrompt = ""
}

// Run executes the loop for one user input and returns the final answer.
//
// The loop calls the model, parses the reply, and either finishes on a
// Final Answer, executes the requested tool and feeds the observation
// back, or appends a bare thought and continues. Recovered problems
// (unknown tools, bad arguments, tool failures) become observations the
// model can react to. Two conditions abort a run early, both returned as
// plain result strings rather than errors: the iteration ceiling and the
// repetition detector. Only a failed model call returns an error.
//
// verbose toggles streaming of Thought/Action/Observation text to the
// verbose writer; it never changes the returned value.
func (a *Agent) Run(ctx context.Context, userInput string, verbose bool) (string, error) {
	lg := a.logger.With().
		Str("run_id", uuid.NewString()).
		Str("model", a.model.Name()).
		Logger()

	systemPrompt, err := a.prompts.Build(a.registry.Tools(), a.customPrompt)
	if err != nil {
		return "", fmt.Errorf("building system prompt: %w", err)
	}

	detector := iterbot.NewLoopDetector(a.loopThreshold)
	history := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, userInput),
	}

	var out io.Writer
	if verbose && a.verboseWriter != nil {
		out = a.verboseWriter
	}

	lg.Debug().Int("tools", a.registry.Len()).Msg("run started")

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		messages := make([]llms.MessageContent, 0, len(history)+1)
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
		messages = append(messages, history...)

		response, err := a.model.Call(ctx, messages)
		if err != nil {
			lg.Error().Err(err).Int("iteration", iteration).Msg("model call failed")
			return "", fmt.Errorf("model call: %w", err)
		}

		step := iterbot.ParseResponse(response)
		emitThought(out, step.Thought)

		if step.Final {
			lg.Debug().Int("iteration", iteration).Msg("final answer")
			emitFinal(out, step.FinalAnswer)
			return step.FinalAnswer, nil
		}

		if step.ParseErr != nil {
			observation := fmt.Sprintf("Invalid action: %v. Correct the format and try again.", step.ParseErr)
			history = appendExchange(history, response, observation)
			emitObservation(out, observation)
			lg.Debug().Err(step.ParseErr).Int("iteration", iteration).Msg("parse error recovered")
			continue
		}

		if step.Action != "" {
			emitAction(out, step.Action, step.ActionInput)
			observation := a.callTool(ctx, lg, step)
			history = appendExchange(history, response, observation)
			emitObservation(out, observation)

			if detector.Observe(step.Action, step.ActionInput) {
				lg.Warn().Str("tool", step.Action).Int("iteration", iteration).Msg("repeated action detected")
				return fmt.Sprintf("Agent stopped: repeated action '%s' detected.", step.Action), nil
			}
			continue
		}

		// Thought-only reply. Keep it in history so the model sees its own
		// reasoning and is nudged toward an action or a final answer.
		history = append(history, llms.TextParts(llms.ChatMessageTypeAI, response))
		lg.Debug().Int("iteration", iteration).Msg("thought only")
	}

	lg.Warn().Int("max_iterations", a.maxIterations).Msg("iteration limit reached")
	return "Agent stopped: iteration limit reached.", nil
}

// callTool dispatches the parsed action and converts every failure into
// observation text. Unknown tools and tool errors never abort the run.
func (a *Agent) callTool(ctx context.Context, lg zerolog.Logger, step iterbot.Step) string {
	result, err := a.registry.Call(ctx, step.Action, step.ActionInput)
	if err != nil {
		if errors.Is(err, iterbot.ErrUnknownTool) {
			lg.Debug().Str("tool", step.Action).Msg("unknown tool requested")
			valid := "(none)"
			if names := a.registry.List(); len(names) > 0 {
				valid = strings.Join(names, ", ")
			}
			return fmt.Sprintf("Tool '%s' is unknown. Valid tools: %s", step.Action, valid)
		}
		lg.Debug().Err(err).Str("tool", step.Action).Msg("tool returned error")
		return fmt.Sprintf("Tool '%s' failed: %v", step.Action, err)
	}
	return result
}

// appendExchange records one model reply and the observation it earned.
// Observations go back as user turns; the backend only distinguishes the
// assistant from everyone else.
func appendExchange(history []llms.MessageContent, response, observation string) []llms.MessageContent {
	history = append(history, llms.TextParts(llms.ChatMessageTypeAI, response))
	history = append(history, llms.TextParts(llms.ChatMessageTypeHuman, "Observation: "+observation))
	return history
}
