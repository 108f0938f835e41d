package ecscore

import "reflect"

// registry assigns every registered component/resource TypeID a dense
// bit position, the same role warehouse's table.Schema.RowIndexFor plays
// for its mask.Mask archetype identities. TypeIDs themselves stay sparse
// (FNV-1a hashes); dense positions exist purely so mask.Mask can treat
// "does this archetype contain type T" as a single bit test.
type registry struct {
	metas     []componentMeta
	bitOf     map[TypeID]uint32
	snapshots []reflect.Value // default-constructed instance per registered type, for DiffWithDefault (C15)
}

func newRegistry() *registry {
	return &registry{bitOf: make(map[TypeID]uint32)}
}

// register ensures t is known and returns its dense bit position and
// componentMeta, registering it on first sight.
func (r *registry) register(t reflect.Type) (uint32, componentMeta) {
	meta := newComponentMeta(t)
	if bit, ok := r.bitOf[meta.id]; ok {
		return bit, r.metas[bit]
	}
	bit := uint32(len(r.metas))
	r.bitOf[meta.id] = bit
	r.metas = append(r.metas, meta)
	r.snapshots = append(r.snapshots, reflect.New(t).Elem())
	return bit, meta
}

func (r *registry) bitFor(id TypeID) (uint32, bool) {
	bit, ok := r.bitOf[id]
	return bit, ok
}

func (r *registry) metaAt(bit uint32) componentMeta {
	return r.metas[bit]
}

func (r *registry) defaultSnapshot(bit uint32) reflect.Value {
	return r.snapshots[bit]
}

func (r *registry) count() int {
	return len(r.metas)
}
