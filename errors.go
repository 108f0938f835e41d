package ecscore

import "fmt"

// LockedWorldError is returned when Spawn is attempted while the world is
// locked (e.g. during query iteration); Despawn and component Add/Remove
// are deferred instead.
type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is currently locked for structural mutation"
}

// InvalidEntityError is a contract violation: a null or stale Entity was
// passed where a live one is required.
type InvalidEntityError struct {
	Entity Entity
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("invalid entity: %v", e.Entity)
}

// ComponentExistsError reports an Add on a component already present.
type ComponentExistsError struct {
	TypeID TypeID
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already present on entity: %s", e.TypeID)
}

// ComponentNotFoundError reports a Remove/Set/DiffWithDefault on an absent
// component (Component[T].Get reports absence with ok == false instead).
type ComponentNotFoundError struct {
	TypeID TypeID
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component not present on entity: %s", e.TypeID)
}

// DuplicateSystemNameError reports re-registration of a system name.
type DuplicateSystemNameError struct {
	Name string
}

func (e DuplicateSystemNameError) Error() string {
	return fmt.Sprintf("duplicate system name: %q", e.Name)
}

// CacheCapacityError reports a SimpleCache registration past capacity.
type CacheCapacityError struct {
	Capacity int
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}

// CycleError reports an unresolvable cycle in explicit system ordering
// hints discovered while building the dependency graph (spec.md §7,
// "Graph errors (build-time)").
type CycleError struct {
	Stuck []string
}

func (e CycleError) Error() string {
	return fmt.Sprintf("dependency graph has a cycle, stuck systems: %v", e.Stuck)
}
