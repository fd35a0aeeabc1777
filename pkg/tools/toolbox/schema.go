package toolbox

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// InputSchema renders the tool's parameters as an object-type JSON Schema.
// Each parameter becomes a property carrying its type, description and
// default; required parameters are listed under "required".
func (t Tool) InputSchema() *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: "object"}
	if len(t.Params) == 0 {
		return schema
	}

	schema.Properties = make(map[string]*jsonschema.Schema, len(t.Params))
	for _, p := range t.Params {
		prop := &jsonschema.Schema{
			Type:        string(p.Type),
			Description: p.Description,
		}
		if p.Default != nil {
			if data, err := json.Marshal(p.Default); err == nil {
				prop.Default = data
			}
		}
		schema.Properties[p.Name] = prop
	}

	schema.Required = t.RequiredParams()

	return schema
}

// ParamsFromSchema derives parameters from an object-type JSON Schema, such
// as the input schema of a tool imported over MCP. Properties are returned in
// name order. "integer" maps to TypeNumber and any type outside the four
// parameter types maps to TypeObject.
func ParamsFromSchema(schema *jsonschema.Schema) []Param {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := slices.Sorted(maps.Keys(schema.Properties))
	params := make([]Param, 0, len(names))

	for _, name := range names {
		prop := schema.Properties[name]
		p := Param{Name: name, Type: TypeObject}
		if prop != nil {
			p.Type = paramType(prop)
			p.Description = prop.Description
			if len(prop.Default) > 0 {
				var def any
				if err := json.Unmarshal(prop.Default, &def); err == nil {
					p.Default = def
				}
			}
		}
		_, p.Required = required[name]
		params = append(params, p)
	}

	return params
}

func paramType(s *jsonschema.Schema) ParamType {
	candidates := s.Types
	if s.Type != "" {
		candidates = []string{s.Type}
	}

	for _, c := range candidates {
		switch c {
		case "string":
			return TypeString
		case "number", "integer":
			return TypeNumber
		case "boolean":
			return TypeBoolean
		case "null":
			continue
		default:
			return TypeObject
		}
	}

	return TypeObject
}
