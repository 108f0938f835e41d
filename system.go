package ecscore

import (
	"github.com/TheBitDrifter/bark"
	"github.com/stratumgames/ecscore/internal/ecssched"
)

// SystemID is a dense index into the system registry, assigned in
// registration order (spec.md §4.10/§4.11, components C10-C11).
type SystemID uint32

// SystemFunc is the per-frame callable a registered system runs.
type SystemFunc func(w *World, tick Tick)

// AccessDescriptor declares which components and resources a system
// reads or writes, used to infer scheduling conflicts automatically
// (spec.md §4.11; Queen's AccessDescriptor/ConflictsWith).
type AccessDescriptor struct {
	ReadsComponents  []TypeID
	WritesComponents []TypeID
	ReadsResources   []TypeID
	WritesResources  []TypeID
	ExclusiveWorld   bool // true for systems that must never run concurrently with any other
}

// ConflictsWith reports whether a and b access anything in a way that
// requires ordering between them: any write overlapping another read or
// write, or either side being exclusive.
func (a AccessDescriptor) ConflictsWith(b AccessDescriptor) bool {
	if a.ExclusiveWorld || b.ExclusiveWorld {
		return true
	}
	if setsOverlap(a.WritesComponents, b.ReadsComponents) || setsOverlap(a.WritesComponents, b.WritesComponents) {
		return true
	}
	if setsOverlap(a.ReadsComponents, b.WritesComponents) {
		return true
	}
	if setsOverlap(a.WritesResources, b.ReadsResources) || setsOverlap(a.WritesResources, b.WritesResources) {
		return true
	}
	if setsOverlap(a.ReadsResources, b.WritesResources) {
		return true
	}
	return false
}

func setsOverlap(a, b []TypeID) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// SystemDescriptor is the registration payload for RegisterSystem
// (spec.md §4.10). After/Before name systems this one must run after or
// before, independent of any inferred access conflict.
type SystemDescriptor struct {
	Name   string
	Run    SystemFunc
	Access AccessDescriptor
	After  []string
	Before []string
}

// systemRegistry owns every registered system in registration order plus
// the cached dependency graph/execution plan built from their
// AccessDescriptors (spec.md §4.10-§4.14). Name dedup and dense storage
// are delegated to SimpleCache, unbounded (capacity 0) since spec.md
// never caps system count.
type systemRegistry struct {
	cache *SimpleCache[SystemDescriptor]
	graph *ecssched.DependencyGraph
	dirty bool
}

func newSystemRegistry() *systemRegistry {
	return &systemRegistry{cache: NewSimpleCache[SystemDescriptor](0), dirty: true}
}

// register appends desc, rejecting duplicate names (spec.md §7).
func (r *systemRegistry) register(desc SystemDescriptor) error {
	_, err := r.cache.Register(desc.Name, desc)
	if err != nil {
		return err
	}
	r.dirty = true
	return nil
}

func (r *systemRegistry) indexOf(name string) (int, bool) {
	return r.cache.GetIndex(name)
}

func (r *systemRegistry) descs() []SystemDescriptor {
	return r.cache.All()
}

// rebuild constructs the dependency graph from the current descriptors:
// explicit After/Before edges first, then O(N^2) conflict edges between
// earlier/later systems for every pair the explicit edges didn't already
// order, per Queen's DependencyGraph::Build. Explicit ordering always
// wins over the registration-order conflict inference — otherwise a
// system explicitly declared to run After a conflicting, later-registered
// system would get a contradictory conflict edge pointing the other way,
// turning a perfectly orderable pair into a spurious cycle.
func (r *systemRegistry) rebuild() {
	descs := r.descs()
	nodes := make([]ecssched.Node, len(descs))
	for i := range descs {
		nodes[i] = ecssched.Node{Index: i}
	}
	g := ecssched.NewDependencyGraph(nodes)

	ordered := make(map[[2]int]bool, len(descs))
	addExplicit := func(before, after int) {
		g.AddEdge(before, after)
		ordered[[2]int{before, after}] = true
		ordered[[2]int{after, before}] = true
	}
	for i, desc := range descs {
		for _, afterName := range desc.After {
			if j, ok := r.indexOf(afterName); ok {
				addExplicit(j, i)
			}
		}
		for _, beforeName := range desc.Before {
			if j, ok := r.indexOf(beforeName); ok {
				addExplicit(i, j)
			}
		}
	}
	for i := range descs {
		for j := 0; j < i; j++ {
			if ordered[[2]int{i, j}] {
				continue
			}
			if descs[i].Access.ConflictsWith(descs[j].Access) {
				g.AddEdge(j, i)
			}
		}
	}
	g.Build()
	r.graph = g
	r.dirty = false
}

// runAll executes every system once, honoring dependency order, via the
// parallel scheduler (spec.md §5 "Update").
func (r *systemRegistry) runAll(w *World, tick Tick) {
	descs := r.descs()
	if len(descs) == 0 {
		return
	}
	if r.dirty {
		r.rebuild()
	}
	if r.graph.HasCycle() {
		stuck := make([]string, 0)
		for _, i := range r.graph.UnresolvedIndices() {
			stuck = append(stuck, descs[i].Name)
		}
		panic(bark.AddTrace(CycleError{Stuck: stuck}))
	}
	w.pool.RunGraph(r.graph, func(i int) {
		descs[i].Run(w, tick)
	})
}
