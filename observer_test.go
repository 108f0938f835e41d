package ecscore

import "testing"

func TestObserverOnAddFiresForMatchingComponent(t *testing.T) {
	w := NewWorld(DefaultConfig())
	pos := RegisterComponent[testPosition](w)
	vel := RegisterComponent[testVelocity](w)

	var fired []Entity
	OnAdd(w.Observers(), "track-pos-add", pos).Each(func(w *World, e Entity, v *testPosition) {
		fired = append(fired, e)
	})

	e1, _ := w.Spawn(pos.With(testPosition{X: 1}))
	e2, _ := w.Spawn(vel.With(testVelocity{}))
	if err := pos.Add(w, e2, testPosition{X: 2}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if len(fired) != 2 || fired[0] != e1 || fired[1] != e2 {
		t.Errorf("OnAdd observer fired for %v, want [%v %v]", fired, e1, e2)
	}
}

func TestObserverOnRemoveSeesComponentBeforeStructuralMove(t *testing.T) {
	w := NewWorld(DefaultConfig())
	pos := RegisterComponent[testPosition](w)

	var removedValues []float64
	OnRemove(w.Observers(), "track-pos-remove", pos).Each(func(w *World, e Entity, v *testPosition) {
		if v == nil {
			t.Errorf("OnRemove callback should still observe the component value before the move")
			return
		}
		removedValues = append(removedValues, v.X)
	})

	e, _ := w.Spawn(pos.With(testPosition{X: 7}))
	if err := pos.Remove(w, e); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if len(removedValues) != 1 || removedValues[0] != 7 {
		t.Errorf("removedValues = %v, want [7]", removedValues)
	}
	if pos.Has(w, e) {
		t.Errorf("component should be gone after Remove() returns")
	}
}

func TestObserverOnSetFiresOnOverwrite(t *testing.T) {
	w := NewWorld(DefaultConfig())
	pos := RegisterComponent[testPosition](w)

	calls := 0
	OnSet(w.Observers(), "track-pos-set", pos).Each(func(w *World, e Entity, v *testPosition) {
		calls++
	})

	e, _ := w.Spawn(pos.With(testPosition{X: 1}))
	pos.Set(w, e, testPosition{X: 2})
	pos.Set(w, e, testPosition{X: 3})

	if calls != 2 {
		t.Errorf("OnSet fired %d times, want 2", calls)
	}
}

func TestObserversFireInRegistrationOrder(t *testing.T) {
	w := NewWorld(DefaultConfig())
	pos := RegisterComponent[testPosition](w)

	var order []string
	OnAdd(w.Observers(), "first", pos).Each(func(w *World, e Entity, v *testPosition) {
		order = append(order, "first")
	})
	OnAdd(w.Observers(), "second", pos).Each(func(w *World, e Entity, v *testPosition) {
		order = append(order, "second")
	})

	w.Spawn(pos.With(testPosition{}))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("observers fired in order %v, want [first second]", order)
	}
}
