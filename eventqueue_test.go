package ecscore

import "testing"

type testDamageEvent struct {
	Target Entity
	Amount int
}

func collectEvents[T any](q *EventQueue[T]) []T {
	var out []T
	q.All(func(e T) bool {
		out = append(out, e)
		return true
	})
	return out
}

func TestEventQueuePushVisibleBeforeSwap(t *testing.T) {
	q := NewEventQueue[int]()
	q.Push(1)
	q.Push(2)

	got := collectEvents(q)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("All() = %v, want [1 2]", got)
	}
}

func TestEventQueueSwapKeepsOneFrameOfHistory(t *testing.T) {
	q := NewEventQueue[int]()
	q.Push(1)
	q.Swap()
	q.Push(2)

	got := collectEvents(q)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("after one Swap(), All() = %v, want [1 2] (previous + current frame)", got)
	}
}

func TestEventQueueSwapTwiceDropsOldestFrame(t *testing.T) {
	q := NewEventQueue[int]()
	q.Push(1)
	q.Swap()
	q.Push(2)
	q.Swap()
	q.Push(3)

	got := collectEvents(q)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("after two Swap()s, All() = %v, want [2 3] (frame 1 dropped)", got)
	}
}

func TestEventQueueOfLazilyCreatesAndRegistersForSwap(t *testing.T) {
	w := NewWorld(DefaultConfig())
	q := EventQueueOf[testDamageEvent](w)
	q.Push(testDamageEvent{Target: newEntity(1, 0), Amount: 5})

	again := EventQueueOf[testDamageEvent](w)
	if again != q {
		t.Fatalf("EventQueueOf() returned a different queue on second call for the same type")
	}

	w.Update()
	got := collectEvents(q)
	if len(got) != 1 || got[0].Amount != 5 {
		t.Errorf("event should survive the frame it was pushed plus one Update(): got %v", got)
	}

	w.Update()
	got = collectEvents(q)
	if len(got) != 0 {
		t.Errorf("event should be gone after a second Update(): got %v", got)
	}
}
