package recwire

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/recwire/recwire/codec"
)

var (
	timeType = reflect.TypeOf(time.Time{})
	dateType = reflect.TypeOf(codec.Date{})
	uuidType = reflect.TypeOf(uuid.UUID{})
	enumType = reflect.TypeOf((*Enum)(nil)).Elem()
)

// kindOfType classifies a schema type, using the runtime value only to
// resolve optional (pointer) nullability. Classification is pure: the same
// inputs always produce the same kind.
func kindOfType(t reflect.Type, data any) (Kind, error) {
	if t.Kind() == reflect.Pointer {
		if data == nil {
			return KindNull, nil
		}
		return kindOfType(t.Elem(), data)
	}
	switch t {
	case timeType:
		// Checked before Date: a timestamp specializes a calendar date.
		return KindTimestamp, nil
	case dateType:
		return KindDate, nil
	case uuidType:
		return KindIdentifier, nil
	}
	if t.Implements(enumType) {
		if t.Kind() != reflect.String {
			return KindInvalid, fmt.Errorf("enum type %v must have string kind", t)
		}
		return KindEnum, nil
	}
	switch t.Kind() {
	case reflect.Struct:
		return KindRecord, nil
	case reflect.Slice:
		return KindSequence, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return KindInvalid, fmt.Errorf("mapping type %v must have string keys", t)
		}
		return KindMapping, nil
	case reflect.String:
		return KindString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt, nil
	case reflect.Float32, reflect.Float64:
		return KindFloat, nil
	case reflect.Bool:
		return KindBool, nil
	}
	return KindInvalid, fmt.Errorf("schema type %v is not supported", t)
}

// kindOfValue classifies a runtime value by its dynamic type. It agrees with
// kindOfType on every input both can see.
func kindOfValue(v any) (Kind, error) {
	if v == nil {
		return KindNull, nil
	}
	switch v.(type) {
	case time.Time:
		return KindTimestamp, nil
	case codec.Date:
		return KindDate, nil
	case uuid.UUID:
		return KindIdentifier, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return KindNull, nil
		}
		return kindOfValue(rv.Elem().Interface())
	}
	if _, ok := v.(Enum); ok {
		if rv.Kind() != reflect.String {
			return KindInvalid, fmt.Errorf("enum type %T must have string kind", v)
		}
		return KindEnum, nil
	}
	switch rv.Kind() {
	case reflect.Struct:
		return KindRecord, nil
	case reflect.Slice:
		return KindSequence, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return KindInvalid, fmt.Errorf("mapping type %T must have string keys", v)
		}
		return KindMapping, nil
	case reflect.String:
		return KindString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt, nil
	case reflect.Float32, reflect.Float64:
		return KindFloat, nil
	case reflect.Bool:
		return KindBool, nil
	}
	return KindInvalid, fmt.Errorf("value %v (%T) has no known kind", v, v)
}
