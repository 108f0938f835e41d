package ecscore

// Entity is a 64-bit identity split into a 32-bit index and a 32-bit
// generation (spec.md §3 "Entity identity"). Index 0 / generation 0 is
// the sentinel NullEntity.
type Entity uint64

// NullEntity is the sentinel "no entity" value.
const NullEntity Entity = 0

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the 32-bit index half of the identity.
func (e Entity) Index() uint32 { return uint32(e) }

// Generation returns the 32-bit generation half of the identity.
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

// IsNull reports whether e is the sentinel value.
func (e Entity) IsNull() bool { return e == NullEntity }

// entityAllocator mints and recycles 64-bit entity identities with
// generation counters (spec.md §4.1, component C1). At most one live
// entity exists per index at any time; the generation stored at an
// index equals the generation of the current live entity, if any.
type entityAllocator struct {
	generations []uint32 // generation currently stored at each index; index 0 unused (sentinel)
	freeList    []uint32
	highWater   uint32
}

func newEntityAllocator() *entityAllocator {
	return &entityAllocator{generations: []uint32{0}, highWater: 1}
}

// allocate mints a new Entity, preferring the free-list (spec.md §4.1).
func (a *entityAllocator) allocate() Entity {
	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		return newEntity(idx, a.generations[idx])
	}
	idx := a.highWater
	a.highWater++
	a.generations = append(a.generations, 0)
	return newEntity(idx, 0)
}

// free bumps the generation at e's index and pushes it on the free
// list. Double-free is a no-op, returning false (spec.md §4.1).
func (a *entityAllocator) free(e Entity) bool {
	idx := e.Index()
	if idx == 0 || idx >= uint32(len(a.generations)) {
		return false
	}
	if a.generations[idx] != e.Generation() {
		return false // stale identity, already freed (or never matched)
	}
	a.generations[idx]++
	a.freeList = append(a.freeList, idx)
	return true
}

// isAlive compares the stored generation against e's generation.
func (a *entityAllocator) isAlive(e Entity) bool {
	idx := e.Index()
	if idx == 0 || idx >= uint32(len(a.generations)) {
		return false
	}
	return a.generations[idx] == e.Generation()
}

// liveCount is the number of currently-allocated, non-freed indices.
func (a *entityAllocator) liveCount() int {
	return int(a.highWater) - 1 - len(a.freeList)
}
