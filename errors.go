package iterbot

import "errors"

// Parse and dispatch errors
var (
	ErrUnknownTool        = errors.New("unknown tool")
	ErrMissingToolName    = errors.New("action missing tool name")
	ErrInvalidActionInput = errors.New("invalid action input JSON")
)
