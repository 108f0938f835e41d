package ecscore

import "reflect"

// column is type-erased, contiguous storage for one component type
// inside one archetype's table, with a parallel change-tick array
// (spec.md §3 "Column", §4.2).
//
// Go's reflect.MakeSlice already gives every element its type's natural
// alignment and a contiguous backing array, so column doesn't need the
// hand-rolled aligned byte buffer spec.md describes — it wraps a
// reflect.Value of kind Slice instead. Growth still follows the
// teacher's geometric doubling (column.go's contract in spec.md §4.2),
// starting at 8 to match the default InitialArchetypeCapacity.
type column struct {
	meta  componentMeta
	data  reflect.Value // reflect.Value of kind Slice, len == len(ticks) == count
	ticks []ComponentTicks
	count int
}

func newColumn(meta componentMeta, capacity int) *column {
	if capacity < 8 {
		capacity = 8
	}
	sliceType := reflect.SliceOf(meta.goType)
	return &column{
		meta:  meta,
		data:  reflect.MakeSlice(sliceType, 0, capacity),
		ticks: make([]ComponentTicks, 0, capacity),
	}
}

func (c *column) Len() int { return c.count }

func (c *column) reserve(capacity int) {
	if c.data.Cap() >= capacity {
		return
	}
	grown := reflect.MakeSlice(c.data.Type(), c.data.Len(), capacity)
	reflect.Copy(grown, c.data)
	c.data = grown
}

func (c *column) grow() {
	newCap := c.data.Cap() * 2
	if newCap == 0 {
		newCap = 8
	}
	c.reserve(newCap)
}

// pushDefault appends a zero-valued element, stamping (added, changed)
// to tick. Matches Column's PushDefault contract (spec.md §4.2).
func (c *column) pushDefault(tick Tick) {
	if c.data.Len() == c.data.Cap() {
		c.grow()
	}
	c.data.Set(appendZero(c.data))
	c.count++
	var ct ComponentTicks
	ct.set(tick)
	c.ticks = append(c.ticks, ct)
}

// pushValue appends value (a reflect.Value assignable to the column's
// element type), stamping ticks to tick. Used by Spawn(components...)
// and AddComponent-with-value paths.
func (c *column) pushValue(value reflect.Value, tick Tick) {
	if c.data.Len() == c.data.Cap() {
		c.grow()
	}
	c.data.Set(appendZero(c.data))
	c.data.Index(c.data.Len() - 1).Set(value)
	c.count++
	var ct ComponentTicks
	ct.set(tick)
	c.ticks = append(c.ticks, ct)
}

// appendZero grows the slice by one zero-valued element and returns the
// new slice header, matching reflect.Append's growth semantics without
// needing to construct a reflect.Value of the element type up front.
func appendZero(s reflect.Value) reflect.Value {
	zero := reflect.Zero(s.Type().Elem())
	return reflect.Append(s, zero)
}

// swapRemove moves the last element into slot i (destructing the former
// last by zeroing it so it carries no stale references) and copies its
// tick pair, matching spec.md §4.2/§8's SwapRemove contract.
func (c *column) swapRemove(i int) {
	last := c.count - 1
	if i != last {
		c.data.Index(i).Set(c.data.Index(last))
		c.ticks[i] = c.ticks[last]
	}
	c.data.Index(last).Set(reflect.Zero(c.data.Type().Elem()))
	c.ticks = c.ticks[:last]
	c.data.Set(c.data.Slice(0, last))
	c.count--
}

func (c *column) elemAddr(i int) reflect.Value {
	return c.data.Index(i).Addr()
}

func (c *column) setValue(i int, value reflect.Value, tick Tick) {
	c.data.Index(i).Set(value)
	c.ticks[i].markChanged(tick)
}

func (c *column) markChanged(i int, tick Tick) {
	c.ticks[i].markChanged(tick)
}

func (c *column) ticksAt(i int) ComponentTicks {
	return c.ticks[i]
}
