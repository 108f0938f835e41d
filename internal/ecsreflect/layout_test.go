package ecsreflect

import (
	"reflect"
	"testing"
)

type layoutPosition struct {
	X, Y float64
}

type layoutTag struct{}

func TestBuildLayoutFieldOrderAndNames(t *testing.T) {
	l := BuildLayout(reflect.TypeOf(layoutPosition{}))
	if l.FieldCount() != 2 {
		t.Fatalf("FieldCount() = %d, want 2", l.FieldCount())
	}
	if l.Fields[0].Name != "X" || l.Fields[1].Name != "Y" {
		t.Errorf("field names = [%s %s], want [X Y]", l.Fields[0].Name, l.Fields[1].Name)
	}
	if l.Fields[0].Index != 0 || l.Fields[1].Index != 1 {
		t.Errorf("field indices = [%d %d], want [0 1]", l.Fields[0].Index, l.Fields[1].Index)
	}
}

func TestBuildLayoutZeroFieldType(t *testing.T) {
	l := BuildLayout(reflect.TypeOf(layoutTag{}))
	if l.FieldCount() != 0 {
		t.Errorf("FieldCount() = %d, want 0 for an empty struct", l.FieldCount())
	}
}

func TestBuildLayoutRecordsType(t *testing.T) {
	l := BuildLayout(reflect.TypeOf(layoutPosition{}))
	if l.Type != reflect.TypeOf(layoutPosition{}) {
		t.Errorf("Layout.Type = %v, want %v", l.Type, reflect.TypeOf(layoutPosition{}))
	}
}
