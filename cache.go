package ecscore

// SimpleCache is a capacity-bounded, name-indexed append-only store,
// adapted from warehouse's cache.go. ecscore repurposes it for system
// name deduplication (observers are stored separately and need no unique
// names): Register enforces unique keys and a hard capacity, and
// GetItem/GetIndex give O(1) lookup both ways.
type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

// NewSimpleCache returns an empty cache bounded to maxCapacity entries.
func NewSimpleCache[T any](maxCapacity int) *SimpleCache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: maxCapacity,
	}
}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

// Register appends item under key, erroring if key already exists or the
// cache is at capacity (spec.md §7 "duplicate name" / CacheCapacityError).
func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if _, exists := c.itemIndices[key]; exists {
		return -1, DuplicateSystemNameError{Name: key}
	}
	if c.maxCapacity > 0 && len(c.items) >= c.maxCapacity {
		return -1, CacheCapacityError{Capacity: c.maxCapacity}
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

func (c *SimpleCache[T]) Len() int { return len(c.items) }

func (c *SimpleCache[T]) All() []T { return c.items }
