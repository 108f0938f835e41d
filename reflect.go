package ecscore

import (
	"reflect"

	"github.com/stratumgames/ecscore/internal/ecsreflect"
)

// DiffWithDefault compares e's value for c against T's zero-valued
// default, returning a bitmask with bit i set for every field at index i
// that differs (spec.md §4.15, component C15). Types with more than
// ecsreflect.MaxDiffFields fields saturate into the top bit rather than
// erroring, matching the original's "≤64 fields, saturating above that".
// Panics (via Assert) if e doesn't currently carry c — "read-not-present"
// is a contract violation, not a recoverable error (spec.md §7).
func (c Component[T]) DiffWithDefault(w *World, e Entity) uint64 {
	v, ok := c.Get(w, e)
	Assert(ok, w.config.logger(), "component", ComponentNotFoundError{TypeID: c.id})
	bit, ok := w.registry.bitFor(c.id)
	Assert(ok, w.config.logger(), "component", ComponentNotFoundError{TypeID: c.id})
	meta := w.registry.metaAt(bit)
	def := w.registry.defaultSnapshot(bit)
	return ecsreflect.DiffWithDefault(meta.layout, reflect.ValueOf(v).Elem(), def)
}

// FieldCount reports how many fields T's layout covers. Types with more
// than ecsreflect.MaxDiffFields fields still return their true count
// here; only DiffWithDefault's bitmask saturates.
func (c Component[T]) FieldCount(w *World) int {
	bit, ok := w.registry.bitFor(c.id)
	if !ok {
		return 0
	}
	return w.registry.metaAt(bit).layout.FieldCount()
}
