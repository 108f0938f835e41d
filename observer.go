package ecscore

// EventKind distinguishes the three structural triggers observers can
// subscribe to (spec.md §4.9, component C9; Queen's TriggerType).
type EventKind uint8

const (
	EventAdd EventKind = iota
	EventRemove
	EventSet
)

func (k EventKind) String() string {
	switch k {
	case EventAdd:
		return "Add"
	case EventRemove:
		return "Remove"
	case EventSet:
		return "Set"
	default:
		return "Unknown"
	}
}

// ObserverCallback runs for every entity matching a registered trigger.
type ObserverCallback func(w *World, e Entity)

// observer is one registered (kind, component type) subscription,
// grounded on Queen's observer_storage.h Observer record.
type observer struct {
	name      string
	kind      EventKind
	component TypeID
	enabled   bool
	callback  ObserverCallback
}

// observerKey indexes the lookup map the same way Queen's ObserverKey
// does: (TriggerType, TypeId) -> indices into the dense observer vector.
type observerKey struct {
	kind      EventKind
	component TypeID
}

// observerRegistry is the two-level structure observer_storage.h
// describes: a dense vector owning every observer, plus a hashmap from
// (kind, type) to the indices that match it, so Trigger only visits
// observers that could possibly fire.
type observerRegistry struct {
	observers []observer
	lookup    map[observerKey][]int
}

func newObserverRegistry() *observerRegistry {
	return &observerRegistry{lookup: make(map[observerKey][]int)}
}

func (r *observerRegistry) register(name string, kind EventKind, component TypeID, cb ObserverCallback) int {
	idx := len(r.observers)
	r.observers = append(r.observers, observer{
		name:      name,
		kind:      kind,
		component: component,
		enabled:   true,
		callback:  cb,
	})
	key := observerKey{kind: kind, component: component}
	r.lookup[key] = append(r.lookup[key], idx)
	return idx
}

// trigger invokes, in registration order, every enabled observer matching
// (kind, component) (spec.md §4.9 "observers fire in registration order").
func (r *observerRegistry) trigger(w *World, kind EventKind, component TypeID, e Entity) {
	indices := r.lookup[observerKey{kind: kind, component: component}]
	for _, idx := range indices {
		ob := r.observers[idx]
		if ob.enabled {
			ob.callback(w, e)
		}
	}
}

func (r *observerRegistry) setEnabled(idx int, enabled bool) {
	if idx >= 0 && idx < len(r.observers) {
		r.observers[idx].enabled = enabled
	}
}

// ObserverBuilder is the fluent registration entry point returned by
// World.Observers(), mirroring Queen's ObserverBuilder chain
// (Register<Trigger>(name).Each(callback)).
type ObserverBuilder struct {
	world *World
	name  string
	kind  EventKind
	comp  TypeID
}

// OnAdd begins registration of an add-trigger observer for component c.
func OnAdd[T any](b *ObserverBuilder, name string, c Component[T]) *observerHandle[T] {
	return &observerHandle[T]{builder: b, name: name, kind: EventAdd, comp: c.id}
}

// OnRemove begins registration of a remove-trigger observer for component c.
func OnRemove[T any](b *ObserverBuilder, name string, c Component[T]) *observerHandle[T] {
	return &observerHandle[T]{builder: b, name: name, kind: EventRemove, comp: c.id}
}

// OnSet begins registration of a set-trigger observer for component c.
func OnSet[T any](b *ObserverBuilder, name string, c Component[T]) *observerHandle[T] {
	return &observerHandle[T]{builder: b, name: name, kind: EventSet, comp: c.id}
}

// observerHandle defers actual registration until Each supplies the
// callback, the same two-step Register(...).Each(...) shape Queen uses.
type observerHandle[T any] struct {
	builder *ObserverBuilder
	name    string
	kind    EventKind
	comp    TypeID
}

// Each registers fn to run for every entity matching the trigger,
// returning the observer's registration index.
func (h *observerHandle[T]) Each(fn func(w *World, e Entity, value *T)) int {
	return h.builder.world.observers.register(h.name, h.kind, h.comp, func(w *World, e Entity) {
		var comp Component[T]
		comp.id = h.comp
		v, ok := comp.Get(w, e)
		if !ok {
			fn(w, e, nil)
			return
		}
		fn(w, e, v)
	})
}
