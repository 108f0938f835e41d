package ecscore

import (
	"fmt"
	"reflect"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
	"github.com/stratumgames/ecscore/internal/ecssched"
)

// lockStructural is the single lock bit World uses to guard structural
// mutation during query iteration, mirroring warehouse's storage.locks
// mask.Mask256 (storage.go) but with one fixed bit rather than per-caller
// bits — ecscore's only iteration path is Cursor, so one bit suffices.
const lockStructural = 0

// World is the facade spec.md §6 describes: it owns the entity allocator,
// archetype graph, location table, resource map, observer registry,
// system registry, scheduler, and the current frame Tick.
type World struct {
	config    Config
	registry  *registry
	graph     *archetypeGraph
	locations *locationTable
	allocator *entityAllocator
	resources *resourceMap
	observers   *observerRegistry
	systems     *systemRegistry
	ops         *operationQueue
	eventQueues *eventQueueMap
	pool        *ecssched.Pool

	locks mask.Mask256
	tick  Tick
}

// NewWorld constructs an empty World from cfg, filling an unset
// InitialArchetypeCapacity and Logger from DefaultConfig; every other
// field is used as given.
func NewWorld(cfg Config) *World {
	if cfg.InitialArchetypeCapacity <= 0 {
		cfg.InitialArchetypeCapacity = DefaultConfig().InitialArchetypeCapacity
	}
	if cfg.Logger == nil {
		cfg.Logger = NewStdLogger()
	}
	reg := newRegistry()
	w := &World{
		config:    cfg,
		registry:  reg,
		graph:     newArchetypeGraph(reg, cfg.InitialArchetypeCapacity),
		locations: newLocationTable(),
		allocator: newEntityAllocator(),
		resources: newResourceMap(),
		observers: newObserverRegistry(),
		systems:     newSystemRegistry(),
		ops:         newOperationQueue(),
		eventQueues: newEventQueueMap(),
		pool:        ecssched.NewPool(cfg.WorkerCount),
		tick:        1,
	}
	return w
}

// Tick returns the current frame tick.
func (w *World) Tick() Tick { return w.tick }

// Locked reports whether structural mutation is currently deferred.
func (w *World) Locked() bool { return !w.locks.IsEmpty() }

// Lock defers structural mutation (Despawn/Add/Remove) into the
// operation queue until Unlock; Spawn returns LockedWorldError instead. Cursor iteration brackets itself with
// Lock/Unlock (spec.md §7 "Iterator invalidation").
func (w *World) Lock() { w.locks.Mark(lockStructural) }

// Unlock releases the structural lock and, once no locks remain, drains
// the deferred operation queue (spec.md §4 "Command buffering").
func (w *World) Unlock() {
	w.locks.Unmark(lockStructural)
	if w.locks.IsEmpty() {
		w.ops.processAll(w)
	}
}

// IsAlive reports whether e is a currently-live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.allocator.isAlive(e)
}

// Spawn allocates a new entity in the archetype matching the given
// component values and stores them, then fires the OnAdd observers of
// each component type (spec.md §6 "Spawn").
func (w *World) Spawn(values ...ComponentValue) (Entity, error) {
	if w.Locked() {
		return NullEntity, LockedWorldError{}
	}
	types := make([]TypeID, len(values))
	for i, v := range values {
		types[i] = v.id
	}
	arche := w.graph.intern(types)
	e := w.allocator.allocate()
	row := arche.tbl.allocateRow(e, w.tick)
	for _, v := range values {
		col, ok := arche.tbl.columnFor(v.id)
		if !ok {
			continue
		}
		col.setValue(row, v.value, w.tick)
	}
	w.locations.set(e, arche, row)
	for _, v := range values {
		w.observers.trigger(w, EventAdd, v.id, e)
	}
	return e, nil
}

// Despawn destroys e immediately, or defers the destruction if the world
// is locked. Panics via Assert if e is not a live entity — a null or
// stale Entity is a contract violation, not a recoverable error
// (spec.md §7 "Programmer errors").
func (w *World) Despawn(e Entity) error {
	if w.Locked() {
		w.ops.enqueue(despawnOp{entity: e})
		return nil
	}
	return w.despawnNow(e)
}

func (w *World) despawnNow(e Entity) error {
	loc, ok := w.locations.get(e)
	Assert(ok, w.config.logger(), "entity", InvalidEntityError{Entity: e})
	moved := loc.arche.tbl.freeRow(loc.row)
	if !moved.IsNull() {
		w.locations.updateRow(moved, loc.row)
	}
	w.locations.clear(e.Index())
	w.allocator.free(e)
	return nil
}

// componentPtr returns an addressable reflect.Value pointer to e's
// component id, used by Component[T].Get.
func (w *World) componentPtr(e Entity, id TypeID) (reflect.Value, bool) {
	loc, ok := w.locations.get(e)
	if !ok {
		return reflect.Value{}, false
	}
	col, ok := loc.arche.tbl.columnFor(id)
	if !ok {
		return reflect.Value{}, false
	}
	return col.elemAddr(loc.row), true
}

func (w *World) hasComponent(e Entity, id TypeID) bool {
	loc, ok := w.locations.get(e)
	if !ok {
		return false
	}
	return loc.arche.Has(id)
}

// addComponent moves e to the archetype with id added and stores value
// in the new column slot (spec.md §4.5 "AddComponent"). Panics via
// Assert for an invalid entity or a component already present — both
// are contract violations (spec.md §7), not recoverable errors.
func (w *World) addComponent(e Entity, id TypeID, value reflect.Value) error {
	if w.Locked() {
		w.ops.enqueue(addComponentOp{entity: e, id: id, value: value})
		return nil
	}
	loc, ok := w.locations.get(e)
	Assert(ok, w.config.logger(), "component", InvalidEntityError{Entity: e})
	Assert(!loc.arche.Has(id), w.config.logger(), "component", ComponentExistsError{TypeID: id})
	dst := w.graph.GetOrCreateAddTarget(loc.arche, id)
	w.moveEntity(e, loc, dst)
	newLoc, _ := w.locations.get(e)
	col, ok := newLoc.arche.tbl.columnFor(id)
	if !ok {
		panic(bark.AddTrace(fmt.Errorf("archetype %d missing freshly-added column %s", newLoc.arche.id, id)))
	}
	col.setValue(newLoc.row, value, w.tick)
	w.observers.trigger(w, EventAdd, id, e)
	return nil
}

// setComponent overwrites e's value for id in place, marking it changed.
// Panics via Assert for an invalid entity or an absent component — both
// are "read/write-not-present" contract violations (spec.md §7).
func (w *World) setComponent(e Entity, id TypeID, value reflect.Value) error {
	loc, ok := w.locations.get(e)
	Assert(ok, w.config.logger(), "component", InvalidEntityError{Entity: e})
	col, ok := loc.arche.tbl.columnFor(id)
	Assert(ok, w.config.logger(), "component", ComponentNotFoundError{TypeID: id})
	col.setValue(loc.row, value, w.tick)
	w.observers.trigger(w, EventSet, id, e)
	return nil
}

// removeComponent moves e to the archetype with id removed (spec.md §4.5
// "RemoveComponent"). Panics via Assert for an invalid entity or a
// component not present — both are contract violations (spec.md §7).
func (w *World) removeComponent(e Entity, id TypeID) error {
	if w.Locked() {
		w.ops.enqueue(removeComponentOp{entity: e, id: id})
		return nil
	}
	loc, ok := w.locations.get(e)
	Assert(ok, w.config.logger(), "component", InvalidEntityError{Entity: e})
	Assert(loc.arche.Has(id), w.config.logger(), "component", ComponentNotFoundError{TypeID: id})
	w.observers.trigger(w, EventRemove, id, e)
	dst := w.graph.GetOrCreateRemoveTarget(loc.arche, id)
	w.moveEntity(e, loc, dst)
	return nil
}

// moveEntity migrates e from its current location into dst, copying
// every intersecting component and freeing the vacated row (spec.md §4.3
// "MoveRowTo" / §4.5 structural transitions).
func (w *World) moveEntity(e Entity, loc entityLocation, dst *archetype) {
	dstRow := dst.tbl.allocateRow(e, w.tick)
	moveRowIntersection(loc.arche.tbl, loc.row, dst.tbl, dstRow, w.tick)
	moved := loc.arche.tbl.freeRow(loc.row)
	if !moved.IsNull() {
		w.locations.updateRow(moved, loc.row)
	}
	w.locations.set(e, dst, dstRow)
}

// RegisterSystem adds desc to the system registry, erroring on duplicate
// names (spec.md §7).
func (w *World) RegisterSystem(desc SystemDescriptor) error {
	return w.systems.register(desc)
}

// Observers exposes the fluent observer-registration builder.
func (w *World) Observers() *ObserverBuilder {
	return &ObserverBuilder{world: w}
}

// Update runs one frame: builds (or reuses) the scheduler's execution
// plan, runs every registered system to completion, drains any
// structural operations queued mid-frame, and advances the tick
// (spec.md §6 "Update", §5 "frame lifecycle").
func (w *World) Update() {
	w.systems.runAll(w, w.tick)
	w.ops.processAll(w)
	w.tick++
	w.eventQueues.swapAll()
}
