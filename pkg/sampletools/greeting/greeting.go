// Package greeting provides the hello_world tool, which formats a greeting
// in English or Spanish.
package greeting

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/germanamz/toolhost/pkg/tools/toolbox"
)

// ToolName is the registered name of the greeting tool.
const ToolName = "hello_world"

// Output is the result of hello_world.
type Output struct {
	Message string `json:"message"`
}

type input struct {
	Name     string `json:"Name"`
	Language string `json:"Language"`
}

// Tool returns the hello_world tool definition.
func Tool() toolbox.Tool {
	return toolbox.Tool{
		Name:        ToolName,
		Description: "A simple tool that returns a greeting.",
		Params: []toolbox.Param{
			{Name: "Name", Type: toolbox.TypeString, Description: "The name to greet", Required: true},
			{Name: "Language", Type: toolbox.TypeString, Description: "The language for the greeting (en, es)", Default: "en"},
		},
		Handler: handle,
	}
}

// Tools returns a ToolBox with the hello_world tool.
func Tools() *toolbox.ToolBox {
	tb := toolbox.New()
	_ = tb.Register(Tool())

	return tb
}

// Greet formats the greeting for name. Only "es" selects Spanish; any other
// language, including an empty one, yields English.
func Greet(name, language string) string {
	if language == "es" {
		return fmt.Sprintf("¡Hola, %s desde la herramienta Opal!", name)
	}

	return fmt.Sprintf("Hello, %s from Opal Tool!", name)
}

func handle(_ context.Context, raw json.RawMessage) (any, error) {
	var in input
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("hello_world: invalid input: %w", err)
	}

	return Output{Message: Greet(in.Name, in.Language)}, nil
}
