// Package recwire converts between typed Go records (structs) and generic
// JSON-compatible trees (map[string]any, []any, primitives), in both
// directions, without per-field conversion code:
//
//   - Marshal flattens a record graph into a tree ready for any JSON encoder.
//   - Unmarshal instantiates a typed record graph from an already-parsed tree.
//   - Field renaming via json struct tags, optional fields as pointers,
//     omit-on-empty, enums, UUIDs, timestamps, and calendar dates.
//   - Errors carry a dotted path (for example items.2.dateKey) locating the
//     offending node.
//
// Design policy:
//
//   - Keep the public API in the root package; temporal conversions live
//     under codec/.
//   - Both directions run the same iterative work-list/side-buffer engine;
//     conversion is synchronous and CPU-only, so no context is threaded
//     through.
//   - Neither direction mutates caller-owned input; inputs are consumed by
//     index and results are built into fresh maps and slices.
//
// Record types are expected to be acyclic. A struct that contains itself
// transitively (without an intervening pointer left nil) does not terminate;
// the engine performs no cycle detection.
//
// Typical usage:
//
//	tree, err := recwire.Marshal(order)
//	order, err := recwire.Unmarshal[Order](tree)
//	b, err := recwire.MarshalJSON(order)
//	order, err = recwire.UnmarshalJSON[Order](b)
package recwire
