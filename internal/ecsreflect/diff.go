package ecsreflect

import "reflect"

// MaxDiffFields is the number of fields DiffWithDefault can represent
// exactly as a bitmask. Types with more fields saturate: every field at
// or past MaxDiffFields is folded into the top bit, matching spec.md
// §4.15's "≤64 fields, saturating above that" (a uint64 holds one bit per
// field, so 64 is the natural cutoff).
const MaxDiffFields = 64

// DiffWithDefault compares value against def (both addressable or
// interface-wrapped values of the same Layout.Type) field by field and
// returns a bitmask with bit i set if field i differs from its default.
// Fields at index >= MaxDiffFields-1 all fold into bit MaxDiffFields-1
// (saturation), so a caller can still tell "something past the cutoff
// changed" without false negatives.
func DiffWithDefault(layout Layout, value, def reflect.Value) uint64 {
	var mask uint64
	for i, f := range layout.Fields {
		if !fieldsEqual(value.Field(f.Index), def.Field(f.Index)) {
			mask |= 1 << saturatingBit(i)
		}
	}
	return mask
}

func saturatingBit(fieldIndex int) uint {
	if fieldIndex >= MaxDiffFields {
		return MaxDiffFields - 1
	}
	return uint(fieldIndex)
}

func fieldsEqual(a, b reflect.Value) bool {
	if !a.CanInterface() || !b.CanInterface() {
		// Unexported fields aren't addressable via Interface(); fall back
		// to a direct reflect.DeepEqual-free comparison using the
		// unsafe-free route reflect.Value.Equal provides (Go 1.20+).
		return a.Equal(b)
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}
