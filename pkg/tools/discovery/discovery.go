// Package discovery renders a toolbox as the tool listing consumed by
// tool-calling orchestrators.
package discovery

import (
	"github.com/germanamz/toolhost/pkg/tools/toolbox"
	"github.com/google/jsonschema-go/jsonschema"
)

// Descriptor describes one tool: its name, description, and parameters as an
// object-type JSON Schema.
type Descriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// Document is the discovery response body.
type Document struct {
	Tools   []Descriptor `json:"tools"`
	Version string       `json:"version"`
}

// Build returns the discovery document for tb. Tools appear once each, in
// registration order.
func Build(tb *toolbox.ToolBox, version string) Document {
	tools := tb.Tools()

	doc := Document{
		Tools:   make([]Descriptor, 0, len(tools)),
		Version: version,
	}
	for _, t := range tools {
		doc.Tools = append(doc.Tools, Describe(t))
	}

	return doc
}

// Describe returns the descriptor of a single tool.
func Describe(t toolbox.Tool) Descriptor {
	return Descriptor{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.InputSchema(),
	}
}
