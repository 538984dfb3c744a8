package recwire

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/recwire/recwire/codec"
)

// Marshal flattens a record graph into a JSON-compatible tree: nested
// map[string]any and []any holding strings, integers, floats, booleans, and
// nils, ready for any text encoder. Field external keys and omit-on-empty
// come from json struct tags; enums, UUIDs, timestamps, and dates are
// rendered to strings. The input graph is never mutated.
func Marshal(v any, opts ...Option) (any, error) {
	m := &marshaller{opts: buildOptions(opts)}
	m.eng = &engine{process: m.processItem, attach: m.attachItem}
	return m.eng.run(&workItem{data: v})
}

type marshaller struct {
	eng  *engine
	opts Options
}

func (m *marshaller) processItem(it *workItem) error {
	if it.kind == KindInvalid {
		k, err := kindOfValue(it.data)
		if err != nil {
			return &MarshalError{Path: it.path, Code: CodeUnsupportedValue, Message: err.Error()}
		}
		it.kind = k
	}
	switch it.kind {
	case KindRecord:
		return m.processRecord(it)
	case KindSequence:
		return m.processSequence(it)
	case KindMapping:
		return m.processMapping(it)
	default:
		return m.processLeaf(it)
	}
}

// processRecord enumerates a record's fields in declared order on first
// visit: primitive values attach straight into the output mapping, anything
// else becomes a child work item. The record finalizes on a later visit once
// nothing is left in the dump.
func (m *marshaller) processRecord(it *workItem) error {
	if !it.normalized {
		rv := derefValue(reflect.ValueOf(it.data))
		out := make(map[string]any, rv.NumField())
		for _, f := range fieldsOf(rv.Type()) {
			fv := rv.Field(f.Index)
			if f.Optional && fv.IsNil() {
				if f.OmitEmpty {
					// Dropped entirely; it never appears in the output,
					// not even as null.
					continue
				}
				out[f.Key] = nil
				continue
			}
			v := derefValue(fv).Interface()
			k, err := kindOfValue(v)
			if err != nil {
				return &MarshalError{Path: childPath(it.path, f.Key), Code: CodeUnsupportedValue, Message: err.Error()}
			}
			if k.primitive() {
				out[f.Key] = v
				continue
			}
			m.eng.spawn(&workItem{
				data:       v,
				kind:       k,
				key:        f.Key,
				parentPath: it.path,
				path:       childPath(it.path, f.Key),
			})
		}
		it.data = out
		it.normalized = true
	}
	if len(m.eng.dump) == 0 && !it.finalized {
		it.finalized = true
	}
	m.eng.push(it)
	return nil
}

// processSequence splits a sequence into one child per element, preserving
// input order, and finalizes on a later visit once the elements have been
// reattached.
func (m *marshaller) processSequence(it *workItem) error {
	if !it.normalized {
		rv := reflect.ValueOf(it.data)
		for i := 0; i < rv.Len(); i++ {
			m.eng.spawn(&workItem{
				data:       derefValue(rv.Index(i)).Interface(),
				key:        it.key,
				parentPath: it.path,
				path:       childPath(it.path, strconv.Itoa(i)),
			})
		}
		it.data = make([]any, 0, rv.Len())
		it.normalized = true
	} else {
		it.finalized = true
	}
	m.eng.push(it)
	return nil
}

// processMapping passes a mapping through as-is; it is assumed to already be
// JSON-safe. The copy keeps the output detached from the caller's map.
func (m *marshaller) processMapping(it *workItem) error {
	rv := reflect.ValueOf(it.data)
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	it.data = out
	it.normalized = true
	it.finalized = true
	m.eng.push(it)
	return nil
}

func (m *marshaller) processLeaf(it *workItem) error {
	if it.finalized {
		m.eng.push(it)
		return nil
	}
	switch it.kind {
	case KindEnum:
		it.data = reflect.ValueOf(it.data).String()
	case KindIdentifier:
		it.data = it.data.(uuid.UUID).String()
	case KindTimestamp:
		it.data = codec.FormatTime(it.data.(time.Time), m.opts.TimeFormat)
	case KindDate:
		it.data = codec.FormatDate(it.data.(codec.Date), m.opts.DateFormat)
	case KindNull:
		it.data = nil
	case KindString, KindInt, KindFloat, KindBool:
		// Pass through.
	default:
		return &MarshalError{Path: it.path, Code: CodeUnsupportedValue,
			Message: fmt.Sprintf("cannot marshal value %v (%T)", it.data, it.data)}
	}
	it.normalized = true
	it.finalized = true
	m.eng.push(it)
	return nil
}

func (m *marshaller) attachItem(parent, child *workItem) error {
	switch parent.kind {
	case KindSequence:
		parent.data = append(parent.data.([]any), child.data)
	case KindRecord:
		parent.data.(map[string]any)[child.key] = child.data
	default:
		// Failsafe; the traversal should never pair other kinds.
		return &MarshalError{Path: child.path, Code: CodeParseError,
			Message: fmt.Sprintf("cannot attach %s into %s parent", child.kind, parent.kind)}
	}
	return nil
}

// derefValue follows non-nil pointers to their element.
func derefValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	return v
}
