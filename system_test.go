package ecscore

import (
	"sync"
	"testing"
)

func TestRegisterSystemRejectsDuplicateNames(t *testing.T) {
	w := NewWorld(DefaultConfig())
	desc := SystemDescriptor{Name: "move", Run: func(w *World, tick Tick) {}}
	if err := w.RegisterSystem(desc); err != nil {
		t.Fatalf("first RegisterSystem() error = %v", err)
	}
	if err := w.RegisterSystem(desc); err == nil {
		t.Errorf("RegisterSystem() with a duplicate name should error")
	}
}

func TestUpdateRunsEverySystemEachFrame(t *testing.T) {
	w := NewWorld(DefaultConfig())
	var calls []string
	var mu sync.Mutex

	record := func(name string) SystemFunc {
		return func(w *World, tick Tick) {
			mu.Lock()
			calls = append(calls, name)
			mu.Unlock()
		}
	}

	w.RegisterSystem(SystemDescriptor{Name: "a", Run: record("a")})
	w.RegisterSystem(SystemDescriptor{Name: "b", Run: record("b")})

	w.Update()
	if len(calls) != 2 {
		t.Fatalf("Update() ran %d systems, want 2", len(calls))
	}
	w.Update()
	if len(calls) != 4 {
		t.Fatalf("after two Update() calls, ran %d systems, want 4", len(calls))
	}
}

func TestUpdateAdvancesTick(t *testing.T) {
	w := NewWorld(DefaultConfig())
	start := w.Tick()
	w.Update()
	if w.Tick() != start+1 {
		t.Errorf("Tick() = %d, want %d", w.Tick(), start+1)
	}
}

func TestSystemExplicitAfterOrdersExecution(t *testing.T) {
	w := NewWorld(DefaultConfig())
	pos := RegisterComponent[testPosition](w)
	var order []string
	var mu sync.Mutex
	record := func(name string) SystemFunc {
		return func(w *World, tick Tick) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	w.RegisterSystem(SystemDescriptor{
		Name: "render",
		Run:  record("render"),
		Access: AccessDescriptor{
			ReadsComponents: []TypeID{pos.ID()},
		},
		After: []string{"physics"},
	})
	w.RegisterSystem(SystemDescriptor{
		Name: "physics",
		Run:  record("physics"),
		Access: AccessDescriptor{
			WritesComponents: []TypeID{pos.ID()},
		},
	})

	w.Update()

	if len(order) != 2 || order[0] != "physics" || order[1] != "render" {
		t.Errorf("execution order = %v, want [physics render]", order)
	}
}

func TestAccessDescriptorConflictsWith(t *testing.T) {
	posID, velID := TypeID(1), TypeID(2)

	tests := []struct {
		name string
		a, b AccessDescriptor
		want bool
	}{
		{
			name: "disjoint reads never conflict",
			a:    AccessDescriptor{ReadsComponents: []TypeID{posID}},
			b:    AccessDescriptor{ReadsComponents: []TypeID{velID}},
			want: false,
		},
		{
			name: "write vs read on same component conflicts",
			a:    AccessDescriptor{WritesComponents: []TypeID{posID}},
			b:    AccessDescriptor{ReadsComponents: []TypeID{posID}},
			want: true,
		},
		{
			name: "write vs write on same component conflicts",
			a:    AccessDescriptor{WritesComponents: []TypeID{posID}},
			b:    AccessDescriptor{WritesComponents: []TypeID{posID}},
			want: true,
		},
		{
			name: "exclusive always conflicts",
			a:    AccessDescriptor{ExclusiveWorld: true},
			b:    AccessDescriptor{},
			want: true,
		},
		{
			name: "write vs read across mixed access conflicts",
			a:    AccessDescriptor{ReadsComponents: []TypeID{posID}, WritesComponents: []TypeID{velID}},
			b:    AccessDescriptor{ReadsComponents: []TypeID{velID}},
			want: true, // b reads velID which a writes
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.ConflictsWith(tt.b); got != tt.want {
				t.Errorf("ConflictsWith() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSystemCycleFromExplicitOrderingPanics(t *testing.T) {
	w := NewWorld(DefaultConfig())
	w.RegisterSystem(SystemDescriptor{Name: "a", Run: func(w *World, tick Tick) {}, After: []string{"b"}})
	w.RegisterSystem(SystemDescriptor{Name: "b", Run: func(w *World, tick Tick) {}, After: []string{"a"}})

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Update() with a cyclic explicit ordering should panic")
		}
	}()
	w.Update()
}
