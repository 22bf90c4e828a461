// Package iterbot runs a ReAct loop for chat models that have no native
// tool calling.
//
// The model is instructed, through the system prompt, to reply with labeled
// text (Thought / Action / Action Input / Final Answer). The library parses
// those labels, dispatches tools by name, feeds tool results back to the
// model as observations, and keeps iterating until the model produces a
// final answer, the iteration ceiling is reached, or the run gets stuck
// repeating the same action. The whole loop is synchronous and
// single-threaded; the only suspension point is the model call.
//
// # Quick Start
//
// Build an agent on a local ollama and ask it something the default clock
// tools can answer:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/iterbot/iterbot"
//	    "github.com/iterbot/iterbot/agents/react"
//	    "github.com/iterbot/iterbot/models"
//	)
//
//	func main() {
//	    // 1. Create a model backed by a local ollama.
//	    model, err := models.NewOllama(iterbot.ModelOllamaLlama32, "")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // 2. Build the agent. The default tool set (clock tools) is
//	    //    installed automatically.
//	    agent := react.NewAgent(model)
//
//	    // 3. Run. Verbose mode streams Thought/Action/Observation lines
//	    //    to stdout while the loop works.
//	    answer, err := agent.Run(context.Background(), "What time is it?", true)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(answer)
//	}
//
// # Tools
//
// A tool is a plain function:
//
//	agent.AddTool("roll_die", func(ctx context.Context, args map[string]any) (string, error) {
//	    return strconv.Itoa(rand.IntN(6) + 1), nil
//	})
//
// Tool names are dispatched by exact string match. Errors returned by a
// tool do not abort the run; they come back to the model as error
// observations so it can try something else. The tools package ships the
// default clock tools plus a SearXNG web search tool.
//
// # Response grammar
//
// The model acts by emitting:
//
//	Thought: I should check the time.
//	Action: get_current_time
//	Action Input: {}
//
// and finishes with:
//
//	Thought: I know the answer now.
//	Final Answer: It is 14:32:07.
//
// Parsing is tolerant: labels match case-insensitively, sloppy Action
// Input JSON gets a repair pass, and a response with both an action and a
// final answer resolves to the final answer.
//
// # Stopping
//
// A run ends in one of three ways: the model's final answer, the iteration
// ceiling (default 15), or the loop detector noticing the same action with
// the same arguments several times in a row (default 3). The latter two
// return fixed "Agent stopped: ..." strings instead of an error; only a
// failed model call is an error.
package iterbot
