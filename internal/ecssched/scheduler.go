package ecssched

import (
	"runtime"
	"sync/atomic"
)

// RunGraph executes run(i) for every node in g exactly once, honoring
// dependency order, using a fresh Pool sized to runtime.GOMAXPROCS(0).
// This is the package-level entry point DependencyGraph.Run delegates
// to; a caller that wants to reuse one Pool across frames should call
// (*Pool).RunGraph directly instead.
func RunGraph(g *DependencyGraph, run func(i int)) {
	NewPool(0).RunGraph(g, run)
}

// RunGraph submits g's root nodes to the pool, then — as each node
// finishes — atomically decrements its dependents' remaining-predecessor
// counts and submits any that reach zero, with a single WaitGroup
// barrier covering the whole run (grounded on Queen's
// ParallelScheduler::RunAll).
func (p *Pool) RunGraph(g *DependencyGraph, run func(i int)) {
	total := g.NodeCount()
	if total == 0 {
		return
	}

	remaining := make([]atomic.Int32, total)
	for i := 0; i < total; i++ {
		remaining[i].Store(int32(g.DepCount(i)))
	}
	var completed atomic.Int64

	var push func(worker, task int)
	push = func(worker, task int) {
		p.deques[worker%p.workerCount].Push(task)
	}

	for idx, root := range g.Roots() {
		push(idx, root)
	}

	execute := func(worker, task int) {
		run(task)
		for _, dep := range g.Dependents(task) {
			if remaining[dep].Add(-1) == 0 {
				push(worker, dep)
			}
		}
		completed.Add(1)
	}

	p.wg.Add(p.workerCount)
	for w := 0; w < p.workerCount; w++ {
		go func(worker int) {
			defer p.wg.Done()
			for {
				if task, ok := p.deques[worker].Pop(); ok {
					execute(worker, task)
					continue
				}
				if task, ok := p.steal(worker); ok {
					execute(worker, task)
					continue
				}
				if completed.Load() >= int64(total) {
					return
				}
				runtime.Gosched()
			}
		}(w)
	}
	p.wg.Wait()
}
