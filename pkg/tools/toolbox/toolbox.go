package toolbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTool is returned when a tool name is registered twice.
	ErrDuplicateTool = errors.New("toolbox: duplicate tool")
	// ErrInvalidTool is returned for tools without a name or handler.
	ErrInvalidTool = errors.New("toolbox: invalid tool")
)

// ToolBox is an ordered collection of uniquely named tools. It is populated
// before any call is served and only read afterwards, so concurrent Get,
// Tools and Call need no locking.
type ToolBox struct {
	tools map[string]Tool
	order []string
}

// New creates a new ToolBox ready for use.
func New() *ToolBox {
	return &ToolBox{
		tools: make(map[string]Tool),
	}
}

// Register adds one or more tools to the ToolBox. Tools without a name or
// handler and names that are already registered are rejected; on error none
// of the given tools is added.
func (tb *ToolBox) Register(tools ...Tool) error {
	seen := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t.Name == "" {
			return fmt.Errorf("%w: name is required", ErrInvalidTool)
		}
		if t.Handler == nil {
			return fmt.Errorf("%w: %q has no handler", ErrInvalidTool, t.Name)
		}
		if _, ok := tb.tools[t.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateTool, t.Name)
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateTool, t.Name)
		}
		seen[t.Name] = struct{}{}
	}

	for _, t := range tools {
		tb.tools[t.Name] = t
		tb.order = append(tb.order, t.Name)
	}

	return nil
}

// Get returns a tool by exact, case-sensitive name and a boolean indicating
// whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Len returns the number of registered tools.
func (tb *ToolBox) Len() int { return len(tb.order) }

// Merge registers all tools from another ToolBox into this one, preserving
// the other box's order. Name collisions are rejected.
func (tb *ToolBox) Merge(other *ToolBox) error {
	return tb.Register(other.Tools()...)
}

// Filter returns a new ToolBox containing only the named tools, in the
// receiver's registration order. Names that are not registered are skipped.
// An empty list returns the receiver itself.
func (tb *ToolBox) Filter(names []string) *ToolBox {
	if len(names) == 0 {
		return tb
	}

	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}

	filtered := New()
	for _, name := range tb.order {
		if _, ok := keep[name]; ok {
			filtered.tools[name] = tb.tools[name]
			filtered.order = append(filtered.order, name)
		}
	}

	return filtered
}

// Wrap returns a new ToolBox whose tool handlers are wrapped with the given
// middleware. The receiver is not modified.
func (tb *ToolBox) Wrap(mws ...Middleware) *ToolBox {
	wrapped := New()
	for _, name := range tb.order {
		t := tb.tools[name]
		t.Handler = Chain(t.Name, t.Handler, mws...)
		wrapped.tools[name] = t
		wrapped.order = append(wrapped.order, name)
	}

	return wrapped
}

// Tools returns all registered tools in registration order.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.order))
	for _, name := range tb.order {
		result = append(result, tb.tools[name])
	}

	return result
}

// Call dispatches an invocation to its tool. Unknown tools and parameters
// that are not a JSON object yield a bad_request result; handler errors
// yield an internal result carrying the error text.
func (tb *ToolBox) Call(ctx context.Context, inv Invocation) Result {
	t, ok := tb.tools[inv.ToolName]
	if !ok {
		return errorResult(inv.ToolName, KindBadRequest, fmt.Sprintf("Unknown tool: %s", inv.ToolName))
	}

	params, err := decodeParams(inv.Parameters)
	if err != nil {
		return errorResult(t.Name, KindBadRequest, fmt.Sprintf("Invalid parameters: %v", err))
	}

	t.ApplyDefaults(params)

	input, err := json.Marshal(params)
	if err != nil {
		return errorResult(t.Name, KindBadRequest, fmt.Sprintf("Invalid parameters: %v", err))
	}

	payload, err := t.Handler(ctx, input)
	if err != nil {
		return errorResult(t.Name, KindInternal, err.Error())
	}

	return Result{Tool: t.Name, Payload: payload}
}

// decodeParams accepts an absent, null, or object parameters value.
func decodeParams(raw json.RawMessage) (map[string]any, error) {
	params := make(map[string]any)
	if len(raw) == 0 || string(raw) == "null" {
		return params, nil
	}

	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.New("parameters must be a JSON object")
	}
	if params == nil {
		params = make(map[string]any)
	}

	return params, nil
}

func errorResult(tool string, kind ErrorKind, msg string) Result {
	return Result{
		Tool:    tool,
		IsError: true,
		Kind:    kind,
		Message: msg,
	}
}
