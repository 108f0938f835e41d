// Package ecssched implements the dependency graph and parallel,
// work-stealing scheduler that runs a World's registered systems each
// frame. It has no dependency on the ecscore package itself — it only
// knows about node indices — so World wires AccessDescriptor conflicts
// and system callables into it by index.
package ecssched

// Node is one system's scheduling record: its index. Predecessor counts
// live on the DependencyGraph (DepCount), not on the Node.
type Node struct {
	Index int
}

// DependencyGraph is a DAG over system indices built from pairwise
// access conflicts plus explicit ordering edges, topologically sorted
// with Kahn's algorithm (grounded on Queen's dependency_graph.h Build /
// ComputeTopologicalOrder).
type DependencyGraph struct {
	nodes          []Node
	dependents     [][]int // adjacency_: systems that depend on node i
	depCount       []int   // number of predecessor edges for node i
	roots          []int
	executionOrder []int
}

// NewDependencyGraph creates an unbuilt graph over nodes. Call AddEdge
// for every conflict/ordering edge, then Build.
func NewDependencyGraph(nodes []Node) *DependencyGraph {
	g := &DependencyGraph{
		nodes:      nodes,
		dependents: make([][]int, len(nodes)),
		depCount:   make([]int, len(nodes)),
	}
	return g
}

// AddEdge records that `before` must run before `after`: before -> after.
func (g *DependencyGraph) AddEdge(before, after int) {
	g.dependents[before] = append(g.dependents[before], after)
	g.depCount[after]++
}

// Build computes roots and the topological execution order via Kahn's
// algorithm. Safe to call again after further AddEdge calls (e.g. on
// rebuild) since it recomputes from depCount snapshots taken at call
// time — callers rebuild a fresh graph per rebuild rather than reusing
// one across AddEdge rounds.
func (g *DependencyGraph) Build() {
	remaining := append([]int(nil), g.depCount...)
	queue := make([]int, 0, len(g.nodes))
	for i, c := range remaining {
		if c == 0 {
			queue = append(queue, i)
		}
	}
	g.roots = append([]int(nil), queue...)

	order := make([]int, 0, len(g.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, dep := range g.dependents[n] {
			remaining[dep]--
			if remaining[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	g.executionOrder = order
}

// HasCycle reports whether the last Build failed to order every node —
// the execution order coming up short means a cycle ate the remainder
// (matches Queen's HasCycle: execution_order_.Size() != nodes_.Size()).
func (g *DependencyGraph) HasCycle() bool {
	return len(g.executionOrder) != len(g.nodes)
}

// UnresolvedIndices returns the node indices Build could not place into
// the execution order (the stuck set for a CycleError report).
func (g *DependencyGraph) UnresolvedIndices() []int {
	placed := make(map[int]bool, len(g.executionOrder))
	for _, i := range g.executionOrder {
		placed[i] = true
	}
	var stuck []int
	for i := range g.nodes {
		if !placed[i] {
			stuck = append(stuck, i)
		}
	}
	return stuck
}

// Roots returns the nodes with no predecessors.
func (g *DependencyGraph) Roots() []int { return g.roots }

// Dependents returns the nodes that depend on node i.
func (g *DependencyGraph) Dependents(i int) []int { return g.dependents[i] }

// DepCount returns the number of predecessor edges node i started with.
func (g *DependencyGraph) DepCount(i int) int { return g.depCount[i] }

// NodeCount returns the number of nodes in the graph.
func (g *DependencyGraph) NodeCount() int { return len(g.nodes) }

// ExecutionOrder returns the topologically sorted node indices.
func (g *DependencyGraph) ExecutionOrder() []int { return g.executionOrder }

// Run executes run(i) for every node, respecting dependency order, using
// the package's work-stealing scheduler (grounded on Queen's
// ParallelScheduler::RunAll: submit roots, decrement dependents'
// remaining counts on completion, submit at zero, barrier on all).
func (g *DependencyGraph) Run(run func(i int)) {
	RunGraph(g, run)
}
