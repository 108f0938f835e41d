package ecscore

// Tick is a monotonically increasing, wrap-safe logical clock value.
// World.Update increments the current tick exactly once per frame
// (spec.md §3 "Tick", §4.8).
type Tick uint32

// IsNewer reports whether a is newer than b using wrap-safe signed
// comparison: (int32)(a-b) > 0. Correct for any two ticks within 2^31 of
// each other — the only ordering operation Tick defines (spec.md §3).
func (a Tick) IsNewer(b Tick) bool {
	return int32(a-b) > 0
}

// ComponentTicks holds the (added, changed) pair stored per column slot.
type ComponentTicks struct {
	Added   Tick
	Changed Tick
}

// WasAdded reports whether the slot was added after lastRun.
func (t ComponentTicks) WasAdded(lastRun Tick) bool {
	return t.Added.IsNewer(lastRun)
}

// WasChanged reports whether the slot was changed after lastRun.
func (t ComponentTicks) WasChanged(lastRun Tick) bool {
	return t.Changed.IsNewer(lastRun)
}

// set stamps both added and changed to tick (used on allocation).
func (t *ComponentTicks) set(tick Tick) {
	t.Added = tick
	t.Changed = tick
}

// markChanged stamps changed to tick, leaving added untouched (used on
// direct writes and mutable query access).
func (t *ComponentTicks) markChanged(tick Tick) {
	t.Changed = tick
}
