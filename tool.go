package iterbot

import (
	"context"
	"fmt"
)

// ToolFunc is a callable the model can request by name.
//
// Args holds the decoded Action Input object; implementations read the
// arguments they need and may ignore the rest. The returned string is fed
// back to the model as an observation, so it should be something the model
// can read. A returned error does not abort the run: the agent recovers it
// into an error observation.
type ToolFunc func(ctx context.Context, args map[string]any) (string, error)

// Tool pairs a ToolFunc with its prompt metadata.
type Tool struct {
	// Name is the dispatch key the model writes on Action lines.
	Name string

	// Description appears next to the name in the system prompt's tool
	// list. Optional; tools with an empty description are listed by name
	// alone.
	Description string

	// Fn executes the tool.
	Fn ToolFunc
}

// Registry owns the set of tools available to an agent.
//
// Tools are listed in registration order so the rendered system prompt is
// stable. The registry is not safe for concurrent mutation; the loop that
// uses it is single-threaded.
type Registry struct {
	order   []string
	toolMap map[string]Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{toolMap: make(map[string]Tool)}
}

// Add registers fn under name, overwriting any existing entry. Overwriting
// keeps the entry's original position in the listing order.
func (r *Registry) Add(name string, fn ToolFunc) {
	r.Register(Tool{Name: name, Fn: fn})
}

// Register adds a tool together with its metadata. Same overwrite semantics
// as Add.
func (r *Registry) Register(t Tool) {
	if _, ok := r.toolMap[t.Name]; !ok {
		r.order = append(r.order, t.Name)
	}
	r.toolMap[t.Name] = t
}

// Remove deletes the named tool. Removing an absent name is a no-op.
func (r *Registry) Remove(name string) {
	if _, ok := r.toolMap[name]; !ok {
		return
	}
	delete(r.toolMap, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// List returns the registered tool names in registration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.toolMap[name])
	}
	return tools
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}

// Call dispatches to the named tool.
//
// An unregistered name returns an error wrapping ErrUnknownTool; errors
// from the tool itself are returned as-is. Callers turn both into
// observations rather than failing the run.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	t, ok := r.toolMap[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t.Fn(ctx, args)
}
