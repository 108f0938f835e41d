package ecscore

import "testing"

func TestSimpleCacheBasicOperations(t *testing.T) {
	cache := NewSimpleCache[string](0)

	items := []string{"item1", "item2", "item3", "item4", "item5"}
	indices := make([]int, len(items))

	for i, item := range items {
		index, err := cache.Register(item, item)
		if err != nil {
			t.Fatalf("Register(%q) error = %v", item, err)
		}
		indices[i] = index
		if index != i {
			t.Errorf("Register(%q) index = %d, want %d", item, index, i)
		}
	}

	for i, item := range items {
		index, found := cache.GetIndex(item)
		if !found {
			t.Errorf("GetIndex(%q) not found", item)
		}
		if index != indices[i] {
			t.Errorf("GetIndex(%q) = %d, want %d", item, index, indices[i])
		}
		if got := *cache.GetItem(index); got != item {
			t.Errorf("GetItem(%d) = %q, want %q", index, got, item)
		}
	}

	if _, found := cache.GetIndex("nonexistent"); found {
		t.Errorf("GetIndex() found a key that was never registered")
	}
	if cache.Len() != len(items) {
		t.Errorf("Len() = %d, want %d", cache.Len(), len(items))
	}
}

func TestSimpleCacheRejectsDuplicateNames(t *testing.T) {
	cache := NewSimpleCache[int](0)
	if _, err := cache.Register("a", 1); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := cache.Register("a", 2); err == nil {
		t.Errorf("Register() of a duplicate name should error")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (duplicate registration must not grow the cache)", cache.Len())
	}
}

func TestSimpleCacheCapacityLimit(t *testing.T) {
	const capacity = 5
	cache := NewSimpleCache[int](capacity)

	for i := 0; i < capacity; i++ {
		if _, err := cache.Register(string(rune('a'+i)), i); err != nil {
			t.Fatalf("Register() #%d error = %v", i, err)
		}
	}
	if _, err := cache.Register("overflow", 100); err == nil {
		t.Errorf("Register() past capacity should error")
	}
}

func TestSimpleCacheZeroCapacityIsUnbounded(t *testing.T) {
	cache := NewSimpleCache[int](0)
	for i := 0; i < 1000; i++ {
		if _, err := cache.Register(string(rune(i)), i); err != nil {
			t.Fatalf("Register() #%d error = %v (capacity 0 must mean unbounded)", i, err)
		}
	}
}

func TestSimpleCacheAllReturnsItemsInRegistrationOrder(t *testing.T) {
	cache := NewSimpleCache[string](0)
	cache.Register("b", "second")
	cache.Register("a", "first")

	all := cache.All()
	if len(all) != 2 {
		t.Fatalf("All() len = %d, want 2", len(all))
	}
	if all[0] != "second" || all[1] != "first" {
		t.Errorf("All() = %v, want registration order [second first]", all)
	}
}
