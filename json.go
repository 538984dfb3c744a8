package recwire

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// MarshalJSON marshals a record graph straight to JSON text: the tree built
// by Marshal is serialized with goccy/go-json.
func MarshalJSON(v any, opts ...Option) ([]byte, error) {
	tree, err := Marshal(v, opts...)
	if err != nil {
		return nil, err
	}
	b, err := gojson.Marshal(tree)
	if err != nil {
		return nil, &MarshalError{Code: CodeParseError, Message: "cannot encode marshalled tree", Cause: err}
	}
	return b, nil
}

// UnmarshalJSON decodes JSON text into a generic tree with goccy/go-json and
// instantiates a typed value of T from it. Numbers are decoded as
// json.Number so integer fields keep full precision.
func UnmarshalJSON[T any](data []byte, opts ...Option) (T, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		var zero T
		return zero, &UnmarshalError{Code: CodeParseError, Message: "cannot decode JSON input", Cause: err}
	}
	return Unmarshal[T](tree, opts...)
}
