package recwire

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML marshals a record graph to YAML text via the same tree Marshal
// produces.
func MarshalYAML(v any, opts ...Option) ([]byte, error) {
	tree, err := Marshal(v, opts...)
	if err != nil {
		return nil, err
	}
	b, err := yaml.Marshal(tree)
	if err != nil {
		return nil, &MarshalError{Code: CodeParseError, Message: "cannot encode marshalled tree", Cause: err}
	}
	return b, nil
}

// UnmarshalYAML decodes YAML text into a generic tree with yaml.v3 and
// instantiates a typed value of T from it.
func UnmarshalYAML[T any](data []byte, opts ...Option) (T, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		var zero T
		return zero, &UnmarshalError{Code: CodeParseError, Message: "cannot decode YAML input", Cause: err}
	}
	normalized, err := normalizeYAML(tree)
	if err != nil {
		var zero T
		return zero, &UnmarshalError{Code: CodeParseError, Message: err.Error()}
	}
	return Unmarshal[T](normalized, opts...)
}

// normalizeYAML rewrites yaml.v3's decoded shapes into the engine's tree
// model: mappings become map[string]any with string keys, sequences []any.
func normalizeYAML(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			n, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("YAML mapping key %v (%T) is not a string", k, k)
			}
			n, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			out[ks] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			n, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}
