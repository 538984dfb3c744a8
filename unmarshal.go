package recwire

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recwire/recwire/codec"
)

// Unmarshal instantiates a typed value of T from a generic JSON-compatible
// tree, guided by T's field declarations. External keys are renamed back to
// field names, absent optional fields become nil, absent required fields are
// an error, and undeclared input keys are dropped. The input tree is never
// mutated.
func Unmarshal[T any](data any, opts ...Option) (T, error) {
	var zero T
	u := &unmarshaller{opts: buildOptions(opts)}
	u.eng = &engine{process: u.processItem, attach: u.attachItem}

	t := reflect.TypeOf((*T)(nil)).Elem()
	kind, err := kindOfType(t, data)
	if err != nil {
		return zero, &UnmarshalError{Code: CodeUnsupportedType, Message: err.Error()}
	}
	out, err := u.eng.run(&workItem{data: data, typ: t, kind: kind})
	if err != nil {
		return zero, err
	}
	rv := reflect.New(t).Elem()
	if uerr := assignValue(rv, out, ""); uerr != nil {
		return zero, uerr
	}
	return rv.Interface().(T), nil
}

type unmarshaller struct {
	eng  *engine
	opts Options
}

func (u *unmarshaller) processItem(it *workItem) error {
	switch it.kind {
	case KindRecord:
		return u.processRecord(it)
	case KindSequence:
		return u.processSequence(it)
	case KindMapping:
		return u.processMapping(it)
	default:
		return u.processLeaf(it)
	}
}

// processRecord renames external keys to field names on first visit,
// synthesizing nulls for absent optional fields and failing on absent
// required ones; primitive fields validate and attach immediately, the rest
// spawn children. Once every child has been reattached and the dump is
// empty, the accumulated mapping instantiates the concrete record.
func (u *unmarshaller) processRecord(it *workItem) error {
	if !it.normalized {
		in, ok := it.data.(map[string]any)
		if !ok {
			return shapeError(it.kind, derefType(it.typ), it.data, it.path)
		}
		t := derefType(it.typ)
		working := make(map[string]any, t.NumField())
		for _, f := range fieldsOf(t) {
			v, present := in[f.Key]
			if !present {
				if f.Optional {
					working[f.Name] = nil
					continue
				}
				return &UnmarshalError{Path: it.path, Code: CodeRequired,
					Message: fmt.Sprintf("missing required key %q (available keys: %s)", f.Key, keysOf(in))}
			}
			fpath := childPath(it.path, f.Key)
			k, err := kindOfType(f.Type, v)
			if err != nil {
				return &UnmarshalError{Path: fpath, Code: CodeUnsupportedType, Message: err.Error()}
			}
			if k.primitive() {
				if uerr := validateShape(k, f.Type, v, fpath); uerr != nil {
					return uerr
				}
				working[f.Name] = v
				continue
			}
			u.eng.spawn(&workItem{
				data:       v,
				typ:        f.Type,
				kind:       k,
				key:        f.Name,
				parentPath: it.path,
				path:       fpath,
			})
		}
		// Input keys with no declared field are dropped here: the working
		// mapping is built from the schema alone.
		it.data = working
		it.normalized = true
	}
	if len(u.eng.dump) == 0 && !it.finalized {
		rec, err := u.instantiate(it)
		if err != nil {
			return err
		}
		it.data = rec
		it.finalized = true
	}
	u.eng.push(it)
	return nil
}

// processSequence splits the input elements into children in input order and
// accumulates a typed slice; elements reattach in the same order they were
// split, so output order matches input order exactly.
func (u *unmarshaller) processSequence(it *workItem) error {
	if !it.normalized {
		in, ok := it.data.([]any)
		if !ok {
			return shapeError(it.kind, derefType(it.typ), it.data, it.path)
		}
		elemType := derefType(it.typ).Elem()
		for i, v := range in {
			k, err := kindOfType(elemType, v)
			if err != nil {
				return &UnmarshalError{Path: childPath(it.path, strconv.Itoa(i)), Code: CodeUnsupportedType, Message: err.Error()}
			}
			u.eng.spawn(&workItem{
				data:       v,
				typ:        elemType,
				kind:       k,
				key:        it.key,
				parentPath: it.path,
				path:       childPath(it.path, strconv.Itoa(i)),
			})
		}
		it.data = reflect.MakeSlice(derefType(it.typ), 0, len(in)).Interface()
		it.normalized = true
	} else {
		it.finalized = true
	}
	u.eng.push(it)
	return nil
}

// processMapping passes a generic mapping through untouched apart from a
// defensive copy; declared mapping fields receive the input subtree as-is.
func (u *unmarshaller) processMapping(it *workItem) error {
	in, ok := it.data.(map[string]any)
	if !ok {
		return shapeError(it.kind, derefType(it.typ), it.data, it.path)
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	it.data = out
	it.normalized = true
	it.finalized = true
	u.eng.push(it)
	return nil
}

// processLeaf converts the special leaf kinds, which need type-converting
// parsers rather than the generic shape check.
func (u *unmarshaller) processLeaf(it *workItem) error {
	if it.finalized {
		u.eng.push(it)
		return nil
	}
	switch it.kind {
	case KindEnum:
		v, err := u.convertEnum(it)
		if err != nil {
			return err
		}
		it.data = v
	case KindIdentifier:
		s, ok := it.data.(string)
		if !ok {
			return &UnmarshalError{Path: it.path, Code: CodeInvalidType,
				Message: fmt.Sprintf("cannot parse %v (%T) as UUID", it.data, it.data)}
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return &UnmarshalError{Path: it.path, Code: CodeInvalidFormat,
				Message: fmt.Sprintf("cannot parse %q as UUID", s), Cause: err}
		}
		it.data = id
	case KindTimestamp:
		switch v := it.data.(type) {
		case string:
			ts, err := codec.ParseTime(v, u.opts.TimeFormat)
			if err != nil {
				return &UnmarshalError{Path: it.path, Code: CodeInvalidFormat,
					Message: fmt.Sprintf("cannot parse %q as timestamp", v), Cause: err}
			}
			it.data = ts
		case time.Time:
			// YAML decoders hand unquoted timestamp scalars over pre-parsed,
			// with whatever location the decoder attached.
			it.data = codec.NormalizeZone(v)
		default:
			return &UnmarshalError{Path: it.path, Code: CodeInvalidType,
				Message: fmt.Sprintf("cannot parse %v (%T) as timestamp", it.data, it.data)}
		}
	case KindDate:
		switch v := it.data.(type) {
		case string:
			d, err := codec.ParseDate(v, u.opts.DateFormat)
			if err != nil {
				return &UnmarshalError{Path: it.path, Code: CodeInvalidFormat,
					Message: fmt.Sprintf("cannot parse %q as date", v), Cause: err}
			}
			it.data = d
		case time.Time:
			it.data = codec.DateOf(v)
		default:
			return &UnmarshalError{Path: it.path, Code: CodeInvalidType,
				Message: fmt.Sprintf("cannot parse %v (%T) as date", it.data, it.data)}
		}
	case KindNull:
		it.data = nil
	default:
		if uerr := validateShape(it.kind, derefType(it.typ), it.data, it.path); uerr != nil {
			return uerr
		}
	}
	it.normalized = true
	it.finalized = true
	u.eng.push(it)
	return nil
}

func (u *unmarshaller) convertEnum(it *workItem) (any, error) {
	t := derefType(it.typ)
	s, ok := it.data.(string)
	if !ok {
		return nil, &UnmarshalError{Path: it.path, Code: CodeInvalidType,
			Message: fmt.Sprintf("cannot use value %v (%T) as enum %v", it.data, it.data, t)}
	}
	legal := reflect.Zero(t).Interface().(Enum).EnumValues()
	for _, v := range legal {
		if v == s {
			return reflect.ValueOf(s).Convert(t).Interface(), nil
		}
	}
	return nil, &UnmarshalError{Path: it.path, Code: CodeInvalidEnum,
		Message: fmt.Sprintf("cannot use value %q as enum %v (legal values: %s)", s, t, strings.Join(legal, ", "))}
}

func (u *unmarshaller) attachItem(parent, child *workItem) error {
	switch parent.kind {
	case KindSequence:
		sl := reflect.ValueOf(parent.data)
		elem := reflect.New(sl.Type().Elem()).Elem()
		if uerr := assignValue(elem, child.data, child.path); uerr != nil {
			return uerr
		}
		parent.data = reflect.Append(sl, elem).Interface()
	case KindRecord:
		parent.data.(map[string]any)[child.key] = child.data
	default:
		return &UnmarshalError{Path: child.path, Code: CodeParseError,
			Message: fmt.Sprintf("cannot attach %s into %s parent", child.kind, parent.kind)}
	}
	return nil
}

// instantiate builds the concrete record from the accumulated working
// mapping, field by field in schema-declared order.
func (u *unmarshaller) instantiate(it *workItem) (any, error) {
	t := derefType(it.typ)
	working := it.data.(map[string]any)
	rv := reflect.New(t).Elem()
	for _, f := range fieldsOf(t) {
		if uerr := assignValue(rv.Field(f.Index), working[f.Name], childPath(it.path, f.Key)); uerr != nil {
			return nil, uerr
		}
	}
	// Always the bare struct; assignValue allocates the pointer when the
	// destination field is optional.
	return rv.Interface(), nil
}

// validateShape confirms the input's runtime shape agrees with the
// classified kind before any structural processing. The special kinds (Null,
// Enum, Identifier, Timestamp, Date) are exempt; their parsers report their
// own conversion failures.
func validateShape(k Kind, schema reflect.Type, v any, path string) *UnmarshalError {
	ok := false
	switch k {
	case KindString:
		_, ok = v.(string)
	case KindInt:
		ok = isIntegral(v)
	case KindFloat:
		ok = isNumeric(v)
	case KindBool:
		_, ok = v.(bool)
	case KindNull:
		ok = v == nil
	case KindRecord, KindMapping:
		_, ok = v.(map[string]any)
	case KindSequence:
		_, ok = v.([]any)
	}
	if ok {
		return nil
	}
	return shapeError(k, schema, v, path)
}

func shapeError(k Kind, schema reflect.Type, v any, path string) *UnmarshalError {
	return &UnmarshalError{Path: path, Code: CodeInvalidType,
		Message: fmt.Sprintf("invalid shape: schema %v (%s) does not match value %v (%T)", schema, k, v, v)}
}

// isIntegral reports whether v carries an integer, under any of the numeric
// representations a decoded tree may use.
func isIntegral(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Int64()
		return err == nil
	case float64:
		return n == math.Trunc(n) && !math.IsInf(n, 0)
	case float32:
		f := float64(n)
		return f == math.Trunc(f)
	}
	return false
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	}
	return false
}

// assignValue writes a converted value into a destination field, allocating
// through pointers and widening numeric representations as needed.
func assignValue(dst reflect.Value, v any, path string) *UnmarshalError {
	if v == nil {
		switch dst.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		return &UnmarshalError{Path: path, Code: CodeInvalidType,
			Message: fmt.Sprintf("cannot assign null to non-optional %v", dst.Type())}
	}
	if dst.Kind() == reflect.Pointer {
		ptr := reflect.New(dst.Type().Elem())
		if uerr := assignValue(ptr.Elem(), v, path); uerr != nil {
			return uerr
		}
		dst.Set(ptr)
		return nil
	}
	rv := reflect.ValueOf(v)
	// Children arrive converted (records, slices, leaves); only numeric
	// representations still need narrowing here.
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt64(v)
		if err != nil || dst.OverflowInt(n) {
			break
		}
		dst.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toInt64(v)
		if err != nil || n < 0 || dst.OverflowUint(uint64(n)) {
			break
		}
		dst.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := toFloat64(v)
		if err != nil {
			break
		}
		dst.SetFloat(f)
		return nil
	case reflect.String:
		if s, ok := v.(string); ok {
			dst.SetString(s)
			return nil
		}
	default:
		if rv.Type().ConvertibleTo(dst.Type()) {
			dst.Set(rv.Convert(dst.Type()))
			return nil
		}
	}
	return &UnmarshalError{Path: path, Code: CodeInvalidType,
		Message: fmt.Sprintf("cannot assign %v (%T) to %v", v, v, dst.Type())}
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("integer overflow: %d", n)
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int64(n), nil
	case float32:
		return toInt64(float64(n))
	}
	return 0, fmt.Errorf("not an integer: %v (%T)", v, v)
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		i, err := toInt64(v)
		return float64(i), err
	}
	return 0, fmt.Errorf("not a number: %v (%T)", v, v)
}

// keysOf renders the available keys of an input mapping for error messages,
// sorted for stable output.
func keysOf(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "[" + strings.Join(keys, ", ") + "]"
}

// derefType follows pointer types to their element.
func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
