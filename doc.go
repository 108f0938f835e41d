/*
Package ecscore is the entity/component/system core of a game engine's
simulation substrate.

It provides an archetype-based component store (entities sharing an exact
component-type set live packed together in row-major columns), a
declarative query engine with tick-based change filtering, an observer
dispatch mechanism for structural events, and a dependency-graph-driven
parallel scheduler built on a work-stealing thread pool.

Core Concepts:

  - Entity: a 64-bit identity (index + generation) naming a live or
    formerly-live object.
  - Component: a plain data type registered once and attached to entities.
  - Archetype: the storage bucket for all entities sharing an exact
    component-type set.
  - Query: a declarative filter compiled into a cached archetype list.
  - System: a named callable with a declared access pattern, scheduled
    according to an inferred dependency graph.
  - Observer: a callback bound to an Add/Remove/Set event on one type.

Basic Usage:

	w := ecscore.NewWorld(ecscore.DefaultConfig())

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	position := ecscore.RegisterComponent[Position](w)
	velocity := ecscore.RegisterComponent[Velocity](w)

	e, _ := w.Spawn(position.With(Position{1, 0}), velocity.With(Velocity{10, 0}))

	q := ecscore.NewQuery().Read(position).Write(velocity)
	w.RegisterSystem(ecscore.SystemDescriptor{
		Name: "integrate",
		Run: func(w *ecscore.World, tick ecscore.Tick) {
			ecscore.Each2(w, q, position, velocity, func(_ ecscore.Entity, p *Position, v *Velocity) {
				v.X = p.X * 2
			})
		},
		Access: ecscore.AccessDescriptor{
			ReadsComponents:  []ecscore.TypeID{position.ID()},
			WritesComponents: []ecscore.TypeID{velocity.ID()},
		},
	})

	w.Update()

The core is the simulation substrate only: asset pipelines, rendering,
input, networking, and disk persistence are explicitly out of scope and
are consumed (or not) by layers above this package.
*/
package ecscore
