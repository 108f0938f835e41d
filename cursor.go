package ecscore

// Cursor iterates the entities matching a Query, locking the world
// against structural mutation for its lifetime (spec.md §4.7 "Cursor");
// grounded on warehouse's cursor.go Next/advance/Initialize/Reset shape,
// generalized with per-row change-filter evaluation.
type Cursor struct {
	query    *Query
	world    *World
	lastRun  Tick
	matched  []*archetype
	archIdx  int
	row      int
	remain   int
	initialized bool
}

// newCursor creates an uninitialized cursor; Initialize (or the first
// Next call) locks the world and computes the matched archetype
// list.
func newCursor(q *Query, w *World, lastRun Tick) *Cursor {
	return &Cursor{query: q, world: w, lastRun: lastRun}
}

// NewCursor returns a Cursor over q against w, filtering change terms
// against lastRun (typically the calling system's tick from its previous run).
func NewCursor(w *World, q *Query, lastRun Tick) *Cursor {
	return newCursor(q, w, lastRun)
}

func (c *Cursor) Initialize() {
	if c.initialized {
		return
	}
	c.world.Lock()
	c.matched = c.query.matchedArchetypes(c.world.registry, c.world.graph)
	c.archIdx = 0
	c.row = -1
	if len(c.matched) > 0 {
		c.remain = c.matched[c.archIdx].tbl.Len()
	}
	c.initialized = true
}

func (c *Cursor) Reset() {
	if c.initialized {
		c.world.Unlock()
	}
	c.archIdx = 0
	c.row = -1
	c.remain = 0
	c.matched = nil
	c.initialized = false
}

// Next advances to the next matching row, returning false when
// exhausted (and releasing the world lock on exhaustion).
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.Initialize()
	}
	for {
		c.row++
		if c.row >= c.remain {
			c.archIdx++
			if c.archIdx >= len(c.matched) {
				c.Reset()
				return false
			}
			c.remain = c.matched[c.archIdx].tbl.Len()
			c.row = -1
			continue
		}
		if c.passesChangeFilters() {
			return true
		}
	}
}

func (c *Cursor) passesChangeFilters() bool {
	if len(c.query.changes) == 0 {
		return true
	}
	arche := c.matched[c.archIdx]
	for _, cf := range c.query.changes {
		col, ok := arche.tbl.columnFor(cf.id)
		if !ok {
			return false
		}
		ticks := col.ticksAt(c.row)
		if cf.added && !ticks.WasAdded(c.lastRun) {
			return false
		}
		if cf.changed && !ticks.WasChanged(c.lastRun) {
			return false
		}
	}
	return true
}

// Entity returns the entity at the cursor's current position.
func (c *Cursor) Entity() Entity {
	return c.matched[c.archIdx].tbl.entityAt(c.row)
}

func (c *Cursor) currentArchetype() *archetype { return c.matched[c.archIdx] }

// markIfWrite stamps id's slot at row as changed at the world's current
// tick if q declared id a Write term — the Each helpers hand out raw
// pointers for in-place mutation, so this is the only place left to
// honor the per-term access mode a Query.Write call records (spec.md
// §4.7/§4.8: mutable query access marks the slot changed).
func markIfWrite(w *World, q *Query, arche *archetype, row int, id TypeID) {
	for _, term := range q.terms {
		if term.id == id && term.mode == AccessWrite {
			if col, ok := arche.tbl.columnFor(id); ok {
				col.markChanged(row, w.tick)
			}
			return
		}
	}
}

// Each1 iterates every entity matching q, calling fn with the entity and
// a pointer to its T component (spec.md §4.7's single-term read loop).
func Each1[T any](w *World, q *Query, c1 Component[T], fn func(e Entity, a *T)) {
	cur := NewCursor(w, q, 0)
	defer cur.Reset()
	for cur.Next() {
		arche := cur.currentArchetype()
		col, ok := arche.tbl.columnFor(c1.id)
		if !ok {
			continue
		}
		fn(cur.Entity(), col.elemAddr(cur.row).Interface().(*T))
		markIfWrite(w, q, arche, cur.row, c1.id)
	}
}

// Each2 iterates every entity matching q, calling fn with pointers to its
// T1 and T2 components.
func Each2[T1, T2 any](w *World, q *Query, c1 Component[T1], c2 Component[T2], fn func(e Entity, a *T1, b *T2)) {
	cur := NewCursor(w, q, 0)
	defer cur.Reset()
	for cur.Next() {
		arche := cur.currentArchetype()
		col1, ok1 := arche.tbl.columnFor(c1.id)
		col2, ok2 := arche.tbl.columnFor(c2.id)
		if !ok1 || !ok2 {
			continue
		}
		fn(cur.Entity(), col1.elemAddr(cur.row).Interface().(*T1), col2.elemAddr(cur.row).Interface().(*T2))
		markIfWrite(w, q, arche, cur.row, c1.id)
		markIfWrite(w, q, arche, cur.row, c2.id)
	}
}

// Each3 iterates every entity matching q, calling fn with pointers to its
// T1, T2, and T3 components.
func Each3[T1, T2, T3 any](w *World, q *Query, c1 Component[T1], c2 Component[T2], c3 Component[T3], fn func(e Entity, a *T1, b *T2, c *T3)) {
	cur := NewCursor(w, q, 0)
	defer cur.Reset()
	for cur.Next() {
		arche := cur.currentArchetype()
		col1, ok1 := arche.tbl.columnFor(c1.id)
		col2, ok2 := arche.tbl.columnFor(c2.id)
		col3, ok3 := arche.tbl.columnFor(c3.id)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		fn(cur.Entity(), col1.elemAddr(cur.row).Interface().(*T1), col2.elemAddr(cur.row).Interface().(*T2), col3.elemAddr(cur.row).Interface().(*T3))
		markIfWrite(w, q, arche, cur.row, c1.id)
		markIfWrite(w, q, arche, cur.row, c2.id)
		markIfWrite(w, q, arche, cur.row, c3.id)
	}
}
