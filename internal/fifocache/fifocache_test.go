package fifocache

import "testing"

func TestPutGet(t *testing.T) {
	c := New[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestEvictsOldestFirst(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry survived eviction")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("entry b was evicted too early")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("newest entry missing")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestGetDoesNotRefreshAge(t *testing.T) {
	// Insertion order alone decides eviction. Reading an entry must not
	// protect it, unlike an LRU.
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("read entry survived eviction; cache behaves like an LRU")
	}
}

func TestPutExistingKeyKeepsPosition(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10) // update, not reinsert
	c.Put("c", 3)  // evicts a, still the oldest

	if _, ok := c.Get("a"); ok {
		t.Error("updated entry kept its original insertion age incorrectly")
	}
	if v, _ := c.Get("b"); v != 2 {
		t.Errorf("Get(b) = %d, want 2", v)
	}
}

func TestUpdateReplacesValue(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("a", 9)
	if v, _ := c.Get("a"); v != 9 {
		t.Errorf("Get(a) = %d, want 9", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
