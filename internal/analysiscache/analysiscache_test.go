package analysiscache

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestGetBuildsOncePerKey(t *testing.T) {
	t.Parallel()

	c := New[int]()
	var builds atomic.Int32

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := c.Get("a", func() int {
				builds.Add(1)
				return 42
			})
			if got != 42 {
				t.Errorf("unexpected value %d", got)
			}
		}()
	}
	wg.Wait()

	if builds.Load() != 1 {
		t.Fatalf("build ran %d times, want 1", builds.Load())
	}
	if c.Len() != 1 {
		t.Fatalf("unexpected cache size %d", c.Len())
	}
}

func TestGetIsolatesKeys(t *testing.T) {
	t.Parallel()

	c := New[string]()
	if got := c.Get("a", func() string { return "first" }); got != "first" {
		t.Fatalf("unexpected value %q", got)
	}
	if got := c.Get("b", func() string { return "second" }); got != "second" {
		t.Fatalf("unexpected value %q", got)
	}
	// A second Get must not rebuild.
	if got := c.Get("a", func() string { return "rebuilt" }); got != "first" {
		t.Fatalf("cached value was rebuilt: %q", got)
	}
	if c.Len() != 2 {
		t.Fatalf("unexpected cache size %d", c.Len())
	}
}
