package toolbox

import (
	"context"
	"encoding/json"
)

// ParamType is the JSON type of a tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeObject  ParamType = "object"
)

// Param describes a single named tool parameter.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	// Default is applied when the caller omits an optional parameter. Nil
	// means no default.
	Default any
}

// Handler executes a tool with the given JSON object input and returns a
// value that is serialized as the call result.
type Handler func(ctx context.Context, input json.RawMessage) (any, error)

// Tool represents an executable tool with a name, description, parameter
// schema, and handler.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// ApplyDefaults sets the default value of every optional parameter that is
// absent from params. Explicit values, including null, are kept.
func (t Tool) ApplyDefaults(params map[string]any) {
	for _, p := range t.Params {
		if p.Required || p.Default == nil {
			continue
		}
		if _, ok := params[p.Name]; !ok {
			params[p.Name] = p.Default
		}
	}
}

// RequiredParams returns the names of required parameters in declaration
// order.
func (t Tool) RequiredParams() []string {
	var names []string
	for _, p := range t.Params {
		if p.Required {
			names = append(names, p.Name)
		}
	}

	return names
}
