package iterbot

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

//go:embed system.tmpl
var systemTemplateText string

// DefaultSystemTemplate renders the base instructions: the reason-and-act
// protocol, the numbered tool list, the response grammar, and the optional
// additional-instructions block. It receives a SystemPromptData.
var DefaultSystemTemplate = template.Must(
	template.New("iterbot_system").Parse(systemTemplateText),
)

// SystemPromptData is the payload passed to the system prompt template.
type SystemPromptData struct {
	// Tools is the numbered tool list, in registration order.
	Tools []PromptTool

	// CustomPrompt is the user's additional instructions, empty when none
	// are set. Already bounded; the template inserts it verbatim.
	CustomPrompt string
}

// PromptTool is one entry in the rendered tool list.
type PromptTool struct {
	Index       int
	Name        string
	Description string
}

// PromptBuilder renders the system prompt for a run.
//
// Rendering is deterministic: the same tools and custom prompt always
// produce the same text.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder creates a PromptBuilder using DefaultSystemTemplate.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{tmpl: DefaultSystemTemplate}
}

// WithTemplate replaces the template. The template is executed with a
// SystemPromptData value.
func (b *PromptBuilder) WithTemplate(tmpl *template.Template) *PromptBuilder {
	b.tmpl = tmpl
	return b
}

// Build renders the system prompt from the given tools and custom prompt.
func (b *PromptBuilder) Build(tools []Tool, customPrompt string) (string, error) {
	data := SystemPromptData{CustomPrompt: customPrompt}
	for i, t := range tools {
		data.Tools = append(data.Tools, PromptTool{
			Index:       i + 1,
			Name:        t.Name,
			Description: t.Description,
		})
	}

	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering system prompt: %w", err)
	}
	return sb.String(), nil
}

// TruncateAtWhitespace shortens s to at most max runes.
//
// The cut lands on the last whitespace at or before the limit so words are
// never split, and the whitespace run before the cut is dropped, so the
// result never ends in whitespace. When no whitespace precedes the limit
// the text is hard-truncated at the limit. max <= 0 yields "". The
// function is idempotent: re-truncating its own output returns it
// unchanged.
func TruncateAtWhitespace(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := -1
	for i := 0; i <= max; i++ {
		if unicode.IsSpace(runes[i]) {
			cut = i
		}
	}
	if cut == -1 {
		return string(runes[:max])
	}
	for cut > 0 && unicode.IsSpace(runes[cut-1]) {
		cut--
	}
	return string(runes[:cut])
}
