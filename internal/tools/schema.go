package tools

import (
	"fmt"
	"math"
)

// Property describes a single parameter in a tool schema.
type Property struct {
	Type        string   `json:"type"` // "string", "integer", "boolean"
	Description string   `json:"description,omitempty"`
	Default     any      `json:"default,omitempty"`
	Minimum     *int     `json:"minimum,omitempty"`
	Maximum     *int     `json:"maximum,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// Schema describes a tool's parameters in JSON Schema form. It is shared
// with the model backend to constrain generation and consumed by the
// registry to validate arguments before dispatch.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// ObjectSchema builds an object schema from properties and required names.
// Required is never nil so the schema serializes as "required": [].
func ObjectSchema(props map[string]Property, required ...string) Schema {
	if props == nil {
		props = map[string]Property{}
	}
	if required == nil {
		required = []string{}
	}
	return Schema{Type: "object", Properties: props, Required: required}
}

// IntPtr is a convenience for Minimum/Maximum bounds.
func IntPtr(v int) *int { return &v }

// Validate checks parsed arguments against the schema: required keys must
// be present, and provided values must satisfy enum membership and
// numeric bounds. Unknown keys are tolerated; the model occasionally
// invents extras and the tool simply ignores them.
func (s Schema) Validate(args map[string]any) error {
	for _, name := range s.Required {
		if _, exists := args[name]; !exists {
			return fmt.Errorf("missing required parameter %q", name)
		}
	}

	for name, prop := range s.Properties {
		value, exists := args[name]
		if !exists {
			continue
		}

		if len(prop.Enum) > 0 {
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("parameter %q must be a string, got %T", name, value)
			}
			valid := false
			for _, allowed := range prop.Enum {
				if str == allowed {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("invalid value for %q: must be one of %v", name, prop.Enum)
			}
		}

		if prop.Minimum != nil || prop.Maximum != nil {
			n, ok := IntArg(args, name)
			if !ok {
				return fmt.Errorf("parameter %q must be an integer, got %T", name, value)
			}
			if prop.Minimum != nil && n < *prop.Minimum {
				return fmt.Errorf("parameter %q must be >= %d", name, *prop.Minimum)
			}
			if prop.Maximum != nil && n > *prop.Maximum {
				return fmt.Errorf("parameter %q must be <= %d", name, *prop.Maximum)
			}
		}
	}

	return nil
}

// ApplyDefaults returns a copy of args with schema defaults filled in for
// missing optional parameters.
func (s Schema) ApplyDefaults(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	for name, prop := range s.Properties {
		if _, exists := out[name]; !exists && prop.Default != nil {
			out[name] = prop.Default
		}
	}
	return out
}

// StringArg extracts a string argument.
func StringArg(args map[string]any, key string) (string, bool) {
	v, exists := args[key]
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntArg extracts an integer argument. JSON numbers decode as float64, so
// whole floats are accepted alongside native ints.
func IntArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// BoolArg extracts a boolean argument.
func BoolArg(args map[string]any, key string) (bool, bool) {
	v, exists := args[key]
	if !exists {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
