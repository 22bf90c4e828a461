// Package tools ships the built-in tool set: clock and date tools that
// agents install by default, plus optional timezone and web search tools.
package tools

import "github.com/iterbot/iterbot"

// Defaults returns the out-of-the-box tool set: current time, date,
// datetime, and epoch. Every call builds a fresh slice over a fresh Clock,
// so agents never share tool state.
func Defaults() []iterbot.Tool {
	c := NewClock()
	return []iterbot.Tool{
		c.CurrentTime(),
		c.CurrentDate(),
		c.CurrentDateTime(),
		c.EpochTime(),
	}
}
