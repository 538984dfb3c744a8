package recwire

// Kind is the closed set of value shapes the engines know how to process.
// A kind is derived either from a schema type (unmarshalling) or from a
// runtime value's dynamic type (marshalling); the two derivations agree on
// overlapping inputs.
type Kind int

const (
	KindInvalid Kind = iota
	KindRecord
	KindSequence
	KindMapping
	KindEnum
	KindIdentifier
	KindTimestamp
	KindDate
	KindString
	KindInt
	KindFloat
	KindBool
	KindNull
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindRecord:     "Record",
		KindSequence:   "Sequence",
		KindMapping:    "Mapping",
		KindEnum:       "Enum",
		KindIdentifier: "Identifier",
		KindTimestamp:  "Timestamp",
		KindDate:       "Date",
		KindString:     "String",
		KindInt:        "Int",
		KindFloat:      "Float",
		KindBool:       "Bool",
		KindNull:       "Null",
	}[k]
	if ok {
		return s
	}
	return "<invalid kind>"
}

// primitive reports whether values of this kind attach directly into their
// parent during structural normalization instead of spawning a work item.
func (k Kind) primitive() bool {
	switch k {
	case KindString, KindInt, KindFloat, KindBool, KindNull:
		return true
	}
	return false
}
