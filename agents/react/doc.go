// Package react implements the ReAct (Reasoning and Acting) agent loop.
//
// # Overview
//
// The ReAct pattern alternates between thinking (reasoning) and acting
// (tool execution) to solve tasks with a model that has no native
// tool-calling support. Each iteration follows the cycle:
// Think -> Act -> Observe -> Repeat.
//
// # Loop Behavior
//
// The loop resolves each model response in this order:
//
// ## 1. A Final Answer Ends the Run
//
// When the model outputs both an action and a Final Answer in the same
// response, the final answer wins and the action is discarded. A model
// that claims to be done while still scheduling work is signaling a stale
// plan; executing the leftover action would waste a tool call on a run
// that already concluded.
//
// ## 2. Actions Produce Observations
//
// A response carrying an action has its tool resolved and called. The
// result, or the failure, comes back as an "Observation:" user turn, so
// the model can build on it or correct itself. Unknown tool names and
// tool errors never abort the run.
//
// ## 3. Everything Else Is a Thought
//
// A response with neither label is kept verbatim as an assistant turn and
// the loop continues. This tolerance matters with small local models that
// drift away from the grammar.
//
// # Stopping
//
// Three endings exist: a Final Answer, the iteration ceiling, and the
// repetition detector. All three return a plain string from Run; the
// aborted endings read "Agent stopped: ...". Only a failed model call
// returns an error.
//
// # Configuration
//
// The agent is configured with chainable builders:
//   - WithTools: replace the default tool set
//   - WithMaxIterations: iteration ceiling (default 15)
//   - WithMaxCustomPromptSize: custom prompt bound (default 500 runes)
//   - WithCustomSystemPrompt: additional instructions in the system prompt
//   - WithLoopThreshold: repeated actions before aborting (default 3)
//   - WithVerboseWriter: destination of the verbose stream (default stdout)
//   - WithPromptBuilder: custom system prompt rendering
//   - WithLogger: zerolog logger (default discards)
package react
