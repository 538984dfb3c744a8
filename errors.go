package recwire

import "fmt"

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType      = "invalid_type"
	CodeRequired         = "required"
	CodeInvalidEnum      = "invalid_enum"
	CodeInvalidFormat    = "invalid_format"
	CodeUnsupportedType  = "unsupported_type"
	CodeUnsupportedValue = "unsupported_value"
	CodeParseError       = "parse_error"
)

// MarshalError reports a runtime value the marshaller cannot represent. It is
// fatal to the whole conversion; no partial tree is returned.
type MarshalError struct {
	Path    string // Dotted path from the root (for example items.2.dateKey); empty at the root.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

func (e *MarshalError) Error() string {
	if e.Path == "" {
		return "recwire: marshal: " + e.Message
	}
	return fmt.Sprintf("recwire: marshal: %s (at %s)", e.Message, e.Path)
}

func (e *MarshalError) Unwrap() error { return e.Cause }

// UnmarshalError reports a schema/data shape mismatch, a missing required
// key, an unparseable leaf value, or an unsupported schema construct. It is
// fatal to the whole conversion; no partial record is returned.
type UnmarshalError struct {
	Path    string
	Code    string
	Message string
	Cause   error
}

func (e *UnmarshalError) Error() string {
	if e.Path == "" {
		return "recwire: unmarshal: " + e.Message
	}
	return fmt.Sprintf("recwire: unmarshal: %s (at %s)", e.Message, e.Path)
}

func (e *UnmarshalError) Unwrap() error { return e.Cause }
