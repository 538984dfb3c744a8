package recwire

import (
	"reflect"
	"strings"
	"sync"
)

// field is one declared field of a record type.
type field struct {
	Name      string // Go field name, used to address the struct field.
	Key       string // External key in the tree; json tag name, else Name.
	Index     int    // Struct field index.
	Type      reflect.Type
	Optional  bool // Pointer-typed: exactly "T or null".
	OmitEmpty bool // Drop from marshalled output when Optional and nil.
}

var fieldCache sync.Map // reflect.Type -> []field

// fieldsOf returns the declared fields of a record type in declaration order.
// The result is computed once per type and shared; callers must not modify it.
func fieldsOf(t reflect.Type) []field {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]field)
	}
	fields := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		key, omitEmpty := resolveFieldKey(sf)
		if key == "-" {
			continue
		}
		fields = append(fields, field{
			Name:      sf.Name,
			Key:       key,
			Index:     i,
			Type:      sf.Type,
			Optional:  sf.Type.Kind() == reflect.Pointer,
			OmitEmpty: omitEmpty,
		})
	}
	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.([]field)
}

// resolveFieldKey applies the repository-wide rule to resolve a struct
// field's external key: json tag name when present, else the field name;
// "-" disables the field. The omitempty tag option maps to the
// omit-if-empty policy.
func resolveFieldKey(sf reflect.StructField) (key string, omitEmpty bool) {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name, false
	}
	name, rest, _ := strings.Cut(tag, ",")
	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	if name == "" {
		return sf.Name, omitEmpty
	}
	return name, omitEmpty
}
