// Package ecsreflect builds per-type field layouts and default-instance
// diff bitmasks for ecscore's reflection subsystem (spec.md §4.15,
// component C15), grounded on Queen's component_registry.h/
// component_reflector.h field-table idea, re-expressed with Go's
// reflect package instead of a hand-rolled static Reflect() registration
// function — reflect.Type.Field already gives every field's name, type,
// and offset for free.
package ecsreflect

import "reflect"

// FieldInfo describes one struct field's layout, the Go-native
// equivalent of Queen's FieldInfo{name, offset, type}.
type FieldInfo struct {
	Name   string
	Index  int
	Offset uintptr
	Type   reflect.Type
}

// Layout is the field table for one registered type, built once and
// cached by the caller (ecscore's registry keeps one per component).
type Layout struct {
	Type   reflect.Type
	Fields []FieldInfo
}

// BuildLayout walks t's exported and unexported fields (component
// structs are plain data, so ecscore doesn't require exported fields)
// in declaration order, matching Queen's Field() registration order.
func BuildLayout(t reflect.Type) Layout {
	fields := make([]FieldInfo, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fields[i] = FieldInfo{Name: f.Name, Index: i, Offset: f.Offset, Type: f.Type}
	}
	return Layout{Type: t, Fields: fields}
}

// FieldCount reports how many fields the layout covers.
func (l Layout) FieldCount() int { return len(l.Fields) }
