package ecscore

import "github.com/TheBitDrifter/mask"

// archetypeGraph is the lazily-populated ArchetypeID → archetype map plus
// the always-present empty archetype (spec.md §3/§4.5 "Archetype graph").
// generation increments on every newly created archetype so cached query
// results know to recompute (spec.md §4.7).
type archetypeGraph struct {
	reg        *registry
	byID       map[ArchetypeID]*archetype
	all        []*archetype
	empty      *archetype
	generation uint64
	capacity   int
}

func newArchetypeGraph(reg *registry, initialCapacity int) *archetypeGraph {
	g := &archetypeGraph{
		reg:      reg,
		byID:     make(map[ArchetypeID]*archetype),
		capacity: initialCapacity,
	}
	g.empty = g.intern(nil)
	return g
}

// intern looks up or creates the archetype for the given sorted type set,
// bumping generation on creation.
func (g *archetypeGraph) intern(types []TypeID) *archetype {
	var m mask.Mask
	metas := make([]componentMeta, len(types))
	for i, t := range types {
		bit, meta := g.reg.bitFor(t)
		_ = bit
		metas[i] = meta
	}
	for _, t := range types {
		bit, _ := g.reg.bitFor(t)
		m.Mark(bit)
	}
	arche := newArchetype(types, metas, m, g.capacity)
	if existing, ok := g.byID[arche.id]; ok {
		return existing
	}
	g.byID[arche.id] = arche
	g.all = append(g.all, arche)
	g.generation++
	return arche
}

// GetEmpty returns the always-present archetype with no components.
func (g *archetypeGraph) GetEmpty() *archetype { return g.empty }

// GetOrCreateAddTarget implements spec.md §4.5: check the cached add
// edge first; on miss compute the new sorted type set, intern it,
// install both edges, and return it. Adding a type the source already
// has is idempotent (returns source unchanged).
func (g *archetypeGraph) GetOrCreateAddTarget(src *archetype, id TypeID) *archetype {
	if src.Has(id) {
		return src
	}
	if dst, ok := src.edgeAdd(id); ok {
		return dst
	}
	newTypes := append(append([]TypeID(nil), src.types...), id)
	dst := g.intern(newTypes)
	linkEdges(src, id, dst)
	return dst
}

// GetOrCreateRemoveTarget implements spec.md §4.5: removal of an absent
// type returns the source unchanged.
func (g *archetypeGraph) GetOrCreateRemoveTarget(src *archetype, id TypeID) *archetype {
	if !src.Has(id) {
		return src
	}
	if dst, ok := src.edgeRemove(id); ok {
		return dst
	}
	newTypes := make([]TypeID, 0, len(src.types)-1)
	for _, t := range src.types {
		if t != id {
			newTypes = append(newTypes, t)
		}
	}
	dst := g.intern(newTypes)
	linkEdges(dst, id, src)
	return dst
}

// Archetypes returns every archetype currently in the graph.
func (g *archetypeGraph) Archetypes() []*archetype { return g.all }

func (g *archetypeGraph) Generation() uint64 { return g.generation }
