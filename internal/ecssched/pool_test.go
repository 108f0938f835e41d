package ecssched

import (
	"runtime"
	"sync"
	"testing"
)

func TestNewPoolDefaultsToGOMAXPROCS(t *testing.T) {
	p := NewPool(0)
	if p.WorkerCount() != runtime.GOMAXPROCS(0) {
		t.Errorf("WorkerCount() = %d, want %d", p.WorkerCount(), runtime.GOMAXPROCS(0))
	}
}

func TestNewPoolHonorsExplicitWorkerCount(t *testing.T) {
	p := NewPool(3)
	if p.WorkerCount() != 3 {
		t.Errorf("WorkerCount() = %d, want 3", p.WorkerCount())
	}
}

func TestPoolStealRoundRobinsAcrossOthers(t *testing.T) {
	p := NewPool(3)
	p.deques[2].Push(42)

	got, ok := p.steal(0)
	if !ok || got != 42 {
		t.Fatalf("steal(0) = (%v, %v), want (42, true)", got, ok)
	}
}

func TestPoolStealFindsNothingWhenAllEmpty(t *testing.T) {
	p := NewPool(4)
	if _, ok := p.steal(0); ok {
		t.Errorf("steal(0) on an all-empty pool should return ok=false")
	}
}

func TestRunGraphExecutesEveryNodeExactlyOnce(t *testing.T) {
	g := NewDependencyGraph(nodesFor(20))
	for i := 1; i < 20; i++ {
		g.AddEdge(i-1, i)
	}
	g.Build()

	counts := make([]int, 20)
	p := NewPool(4)
	p.RunGraph(g, func(i int) {
		counts[i]++
	})

	for i, c := range counts {
		if c != 1 {
			t.Errorf("node %d ran %d times, want exactly 1", i, c)
		}
	}
}

func TestRunGraphRespectsDependencyOrder(t *testing.T) {
	// A fan-in graph: 0,1,2 (roots, may run in any order) must all
	// complete before 3 runs.
	g := NewDependencyGraph(nodesFor(4))
	g.AddEdge(0, 3)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)
	g.Build()

	var order []int
	var mu sync.Mutex
	p := NewPool(4)
	p.RunGraph(g, func(i int) {
		mu.Lock()
		order = append(order, i)
		mu.Unlock()
	})

	if len(order) != 4 || order[3] != 3 {
		t.Fatalf("execution order = %v, want node 3 last", order)
	}
}
