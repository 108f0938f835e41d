package ecscore

import (
	"fmt"
	"hash/fnv"
	"reflect"

	"github.com/stratumgames/ecscore/internal/ecsreflect"
)

// TypeID is the stable 64-bit identity of a registered component or
// resource type: FNV-1a of the type's fully-qualified name (spec.md §3
// mandates FNV-1a explicitly; TypeIDs are sparse u64s, never dense
// indices — dense bit positions for mask membership are a separate,
// per-World concern, see registry.go).
type TypeID uint64

func (t TypeID) String() string {
	return fmt.Sprintf("0x%016x", uint64(t))
}

func typeIDOf(t reflect.Type) TypeID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.PkgPath() + "." + t.Name()))
	return TypeID(h.Sum64())
}

// TypeIDOf returns the stable TypeID for T, registering nothing.
func TypeIDOf[T any]() TypeID {
	return typeIDOf(reflect.TypeOf((*T)(nil)).Elem())
}

// componentMeta is the type-erased vtable spec.md §3 describes as
// {type_id, size, alignment, construct, copy, move, destruct}. Go's
// reflect-backed slices give us size/alignment and construct/copy/move/
// destruct for free (reflect.MakeSlice/Index/Set/SetZero), so the vtable
// here only needs to remember the reflect.Type; the four operations are
// implemented once in column.go against any reflect.Type.
type componentMeta struct {
	id        TypeID
	goType    reflect.Type
	name      string
	isTrivial bool
	layout    ecsreflect.Layout
}

func newComponentMeta(t reflect.Type) componentMeta {
	return componentMeta{
		id:        typeIDOf(t),
		goType:    t,
		name:      t.String(),
		isTrivial: isTrivialType(t),
		layout:    ecsreflect.BuildLayout(t),
	}
}

// isTrivialType reports whether values of t can be treated as plain
// bytes (no pointers), matching spec.md §4.2's "for trivially copyable
// types they reduce to byte copies" — Go never lets us bypass the GC for
// pointer-containing types regardless. The flag is recorded on
// componentMeta only; reflection diffing (internal/ecsreflect) does not
// consult it.
func isTrivialType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isTrivialType(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isTrivialType(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
