package ecscore

import "github.com/TheBitDrifter/mask"

// componentRef is the type-erased handle any Component[T] satisfies,
// letting Query accept terms across different component types the same
// way warehouse's query.go accepts its non-generic Component interface.
type componentRef interface {
	ID() TypeID
}

// AccessMode records whether a query term is read-only or mutable,
// spec.md §4.7's per-term access mode. The Each helpers use it to stamp
// Write terms changed; the scheduler does not read it, since system
// conflicts come from each SystemDescriptor's AccessDescriptor.
type AccessMode uint8

const (
	AccessRead AccessMode = iota
	AccessWrite
)

// changeFilter is a per-term WasAdded/WasChanged requirement, evaluated
// per-row at iteration time rather than per-archetype, since it depends
// on the caller's lastRun tick (spec.md §4.8).
type changeFilter struct {
	id        TypeID
	added     bool
	changed   bool
}

// Query composes required/excluded/optional type sets into an AND/OR/NOT
// tree, the same shape as warehouse's query.go, generalized with an
// explicit access mode per required term and tick-aware change filters.
type Query struct {
	root      QueryNode
	terms     []queryTerm
	changes   []changeFilter
	cacheGen  uint64
	cacheHit  []*archetype
	hasCache  bool
}

type queryTerm struct {
	id   TypeID
	mode AccessMode
}

// QueryOperation is the logical operator a composite QueryNode applies.
type QueryOperation int

const (
	OpAnd QueryOperation = iota
	OpOr
	OpNot
)

// QueryNode is one node of the composed query tree.
type QueryNode interface {
	evaluate(reg *registry, arche *archetype) bool
}

type compositeNode struct {
	op       QueryOperation
	children []QueryNode
	types    []TypeID
}

type leafNode struct {
	types []TypeID
}

func nodeMaskOf(reg *registry, types []TypeID) mask.Mask {
	var m mask.Mask
	for _, id := range types {
		if bit, ok := reg.bitFor(id); ok {
			m.Mark(bit)
		}
	}
	return m
}

func (n *leafNode) evaluate(reg *registry, arche *archetype) bool {
	m := nodeMaskOf(reg, n.types)
	return arche.membership.ContainsAll(m)
}

func (n *compositeNode) evaluate(reg *registry, arche *archetype) bool {
	m := nodeMaskOf(reg, n.types)
	switch n.op {
	case OpAnd:
		if !arche.membership.ContainsAll(m) {
			return false
		}
		for _, child := range n.children {
			if !child.evaluate(reg, arche) {
				return false
			}
		}
		return true
	case OpOr:
		if arche.membership.ContainsAny(m) {
			return true
		}
		for _, child := range n.children {
			if child.evaluate(reg, arche) {
				return true
			}
		}
		return false
	case OpNot:
		if len(n.children) == 0 {
			return arche.membership.ContainsNone(m)
		}
		if len(n.types) > 0 && !arche.membership.ContainsNone(m) {
			return false
		}
		for _, child := range n.children {
			if child.evaluate(reg, arche) {
				return false
			}
		}
		return true
	}
	return false
}

// NewQuery starts an empty query: until terms are added it matches every
// entity that has at least one component (the empty archetype is skipped).
func NewQuery() *Query {
	return &Query{}
}

// Read adds required, read-only terms.
func (q *Query) Read(refs ...componentRef) *Query {
	for _, r := range refs {
		q.terms = append(q.terms, queryTerm{id: r.ID(), mode: AccessRead})
	}
	q.invalidate()
	return q
}

// Write adds required, mutable terms.
func (q *Query) Write(refs ...componentRef) *Query {
	for _, r := range refs {
		q.terms = append(q.terms, queryTerm{id: r.ID(), mode: AccessWrite})
	}
	q.invalidate()
	return q
}

// Without excludes entities carrying any of refs (spec.md §4.7 "excluded set").
func (q *Query) Without(refs ...componentRef) *Query {
	types := refsToTypes(refs)
	node := &compositeNode{op: OpNot, types: types}
	if q.root == nil {
		q.root = node
	} else {
		q.root = &compositeNode{op: OpAnd, children: []QueryNode{q.root, node}}
	}
	q.invalidate()
	return q
}

// Optional adds terms that do not affect matching but may be accessed
// per-row via a nil-checked Get once iterating (spec.md §4.7 "optional set").
func (q *Query) Optional(refs ...componentRef) *Query {
	// Optional terms never constrain the archetype match; callers use
	// Component[T].Get inside Cursor iteration to read them when present.
	return q
}

// WithAdded restricts iteration to rows where ref was added after lastRun,
// evaluated per-row (spec.md §4.8 change detection).
func (q *Query) WithAdded(ref componentRef) *Query {
	q.changes = append(q.changes, changeFilter{id: ref.ID(), added: true})
	return q
}

// WithChanged restricts iteration to rows where ref changed after lastRun.
func (q *Query) WithChanged(ref componentRef) *Query {
	q.changes = append(q.changes, changeFilter{id: ref.ID(), changed: true})
	return q
}

// And/Or/Not build arbitrary composite sub-trees, mirroring warehouse's
// Query.And/Or/Not — accepting either componentRef terms or nested
// QueryNodes (including nodes returned by an earlier And/Or/Not call on
// the same Query, so callers can build a tree either as one nested
// expression or across several statements). Whichever call runs last
// becomes the Query's matching root, so the final top-level combinator
// in a chain is the one that determines what Read/Without terms get
// ANDed against.
func (q *Query) And(items ...any) QueryNode {
	return q.compose(OpAnd, items...)
}

func (q *Query) Or(items ...any) QueryNode {
	return q.compose(OpOr, items...)
}

func (q *Query) Not(items ...any) QueryNode {
	return q.compose(OpNot, items...)
}

func (q *Query) compose(op QueryOperation, items ...any) QueryNode {
	var types []TypeID
	var children []QueryNode
	for _, item := range items {
		switch v := item.(type) {
		case componentRef:
			types = append(types, v.ID())
		case []componentRef:
			types = append(types, refsToTypes(v)...)
		case QueryNode:
			children = append(children, v)
		}
	}
	node := &compositeNode{op: op, types: types, children: children}
	q.root = node
	q.invalidate()
	return node
}

func combine(existing QueryNode, next QueryNode) QueryNode {
	if existing == nil {
		return next
	}
	return &compositeNode{op: OpAnd, children: []QueryNode{existing, next}}
}

func refsToTypes(refs []componentRef) []TypeID {
	types := make([]TypeID, len(refs))
	for i, r := range refs {
		types[i] = r.ID()
	}
	return types
}

func (q *Query) invalidate() { q.hasCache = false }

// termsNode builds the implicit AND node for q.terms (the Read/Write
// required set), combined with any explicit And/Or/Not sub-tree.
func (q *Query) termsNode() QueryNode {
	if len(q.terms) == 0 {
		return nil
	}
	types := make([]TypeID, len(q.terms))
	for i, t := range q.terms {
		types[i] = t.id
	}
	return &leafNode{types: types}
}

func (q *Query) fullRoot() QueryNode {
	return combine(q.termsNode(), q.root)
}

// matchedArchetypes returns every archetype in g currently matching q,
// recomputing only when g's generation has advanced since the last call
// (spec.md §4.7 "cached matching archetype list invalidated by graph
// generation").
func (q *Query) matchedArchetypes(reg *registry, g *archetypeGraph) []*archetype {
	if q.hasCache && q.cacheGen == g.Generation() {
		return q.cacheHit
	}
	root := q.fullRoot()
	var hits []*archetype
	for _, arche := range g.Archetypes() {
		if arche.isEmpty() && root == nil {
			continue
		}
		if root == nil || root.evaluate(reg, arche) {
			hits = append(hits, arche)
		}
	}
	q.cacheHit = hits
	q.cacheGen = g.Generation()
	q.hasCache = true
	return hits
}
