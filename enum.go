package recwire

// Enum marks a string-kinded type as a closed enumeration. Implement it with
// a value receiver so that plain (non-pointer) fields are recognized:
//
//	type Size string
//
//	const (
//		Small  Size = "SMALL"
//		Medium Size = "MEDIUM"
//		Large  Size = "LARGE"
//	)
//
//	func (Size) EnumValues() []string {
//		return []string{string(Small), string(Medium), string(Large)}
//	}
//
// Marshalling emits the underlying string; unmarshalling rejects any input
// absent from EnumValues.
type Enum interface {
	EnumValues() []string
}
