package ecscore

import (
	"hash/fnv"
	"sort"

	"github.com/TheBitDrifter/mask"
)

// ArchetypeID is a pure function of the component-type set: the FNV-1a
// fold of the sorted TypeIDs (spec.md §3 "Archetype"). Archetypes with
// identical sets are the same archetype object.
type ArchetypeID uint64

func archetypeIDOf(sorted []TypeID) ArchetypeID {
	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, id := range sorted {
		for i := 0; i < 8; i++ {
			buf[i] = byte(id >> (8 * i))
		}
		_, _ = h.Write(buf)
	}
	return ArchetypeID(h.Sum64())
}

// archetype owns a table plus a sorted component-type set, an identity
// hash, a membership bitmask for O(1) query matching, and cached
// structural-transition edges (spec.md §3 "Archetype", §4.4).
type archetype struct {
	id         ArchetypeID
	types      []TypeID // sorted ascending
	membership mask.Mask
	tbl        *table
	addEdges   map[TypeID]*archetype
	removeEdges map[TypeID]*archetype
}

func newArchetype(types []TypeID, metas []componentMeta, membership mask.Mask, capacity int) *archetype {
	sorted := append([]TypeID(nil), types...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return &archetype{
		id:          archetypeIDOf(sorted),
		types:       sorted,
		membership:  membership,
		tbl:         newTable(metas, capacity),
		addEdges:    make(map[TypeID]*archetype),
		removeEdges: make(map[TypeID]*archetype),
	}
}

// Has reports whether the archetype's type set contains id, via sorted
// binary search (spec.md §4.4).
func (a *archetype) Has(id TypeID) bool {
	i := sort.Search(len(a.types), func(i int) bool { return a.types[i] >= id })
	return i < len(a.types) && a.types[i] == id
}

func (a *archetype) edgeAdd(id TypeID) (*archetype, bool) {
	dst, ok := a.addEdges[id]
	return dst, ok
}

func (a *archetype) edgeRemove(id TypeID) (*archetype, bool) {
	dst, ok := a.removeEdges[id]
	return dst, ok
}

// linkEdges installs the add edge a--T-->b and, per spec.md §4.4's
// invariant, the paired inverse remove edge b--T-->a.
func linkEdges(a *archetype, id TypeID, b *archetype) {
	a.addEdges[id] = b
	b.removeEdges[id] = a
}

func (a *archetype) isEmpty() bool {
	return len(a.types) == 0
}
