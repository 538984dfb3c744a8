package recwire

import "reflect"

// workItem tracks one node through the traversal: its value, the governing
// schema type (unmarshalling only), where in the parent the finished result
// must be written, and two monotonic progress flags. An item is created when
// its parent is split into children and destroyed when its value attaches
// into a finalized parent or is returned as the final result.
type workItem struct {
	data any          // Marshal: source value, then built output. Unmarshal: input subtree, then converted value.
	typ  reflect.Type // Governing schema type; nil on the marshal side.
	kind Kind

	key        string // Attachment key in the parent record.
	path       string // Dotted path from the root; "" at the root.
	parentPath string

	normalized bool // Children enumerated, renaming/validation applied.
	finalized  bool // Ready value computed, safe to attach to the parent.
}

// engine runs the iterative decompose/reassemble loop shared by both
// directions. The work list is a LIFO stack of pending items; the dump is a
// temporary holding stack for items that are not ready to proceed but must
// survive the current pass. Each call owns a private engine, so concurrent
// conversions never share state.
type engine struct {
	work []*workItem
	dump []*workItem

	// process advances one item (normalize, convert a leaf, or finalize)
	// and pushes it back onto the work list.
	process func(*workItem) error
	// attach writes a finalized child's value into its parent structure.
	attach func(parent, child *workItem) error
}

// run loops until the work list holds exactly one finalized item and returns
// its value. Termination relies on the schema graph being acyclic.
func (e *engine) run(root *workItem) (any, error) {
	e.work = append(e.work, root)
	var item *workItem
	for len(e.work) > 0 {
		item = e.pop()
		if len(e.work) == 0 && item.normalized && item.finalized {
			break
		}
		if err := e.process(item); err != nil {
			return nil, err
		}
		if err := e.promote(); err != nil {
			return nil, err
		}
	}
	return item.data, nil
}

func (e *engine) push(it *workItem) {
	e.work = append(e.work, it)
}

func (e *engine) pop() *workItem {
	it := e.work[len(e.work)-1]
	e.work = e.work[:len(e.work)-1]
	return it
}

// spawn defers a freshly split child to the dump; it re-enters the work list
// on the next flush, after its parent has been pushed back.
func (e *engine) spawn(it *workItem) {
	e.dump = append(e.dump, it)
}

// promote reassembles finished children into their parents. It inspects the
// top two items of the work list; a child that is not finalized, or a pair
// that is not actually parent and child at this position, is set aside in the
// dump so scanning can continue with the remaining items. The dump is flushed
// back onto the work list before returning in all cases.
func (e *engine) promote() error {
	if len(e.dump) > 0 {
		// Children were just split off; they must all be processed before
		// any reassembly can happen.
		e.flushDump()
		return nil
	}
	for len(e.work) >= 2 {
		child := e.pop()
		parent := e.pop()

		if !child.finalized {
			// Not ready yet; park it and retry with the next pair.
			e.dump = append(e.dump, child)
			e.push(parent)
			continue
		}
		if child.parentPath != parent.path {
			// Not related at this position; park the non-matching candidate
			// and keep scanning for this child's real parent.
			e.push(child)
			e.dump = append(e.dump, parent)
			continue
		}
		if err := e.attach(parent, child); err != nil {
			return err
		}
		e.push(parent)
	}
	e.flushDump()
	return nil
}

func (e *engine) flushDump() {
	for len(e.dump) > 0 {
		it := e.dump[len(e.dump)-1]
		e.dump = e.dump[:len(e.dump)-1]
		e.work = append(e.work, it)
	}
}

// childPath extends a dotted path with a key or index segment.
func childPath(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + "." + segment
}
