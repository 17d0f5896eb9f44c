package metadata

import (
	"sync"
	"testing"
)

func TestRequestReturnsDistinctContainers(t *testing.T) {
	p := NewPool("test", 2, 16)

	a := p.Request()
	b := p.Request()
	if a == nil || b == nil {
		t.Fatalf("expected two containers, got a=%v b=%v", a, b)
	}
	if a == b {
		t.Fatalf("expected distinct containers")
	}
	if p.Available() != 0 {
		t.Fatalf("expected pool exhausted, got %d available", p.Available())
	}
	if c := p.Request(); c != nil {
		t.Fatalf("expected nil on exhausted pool, got %v", c)
	}
}

func TestDecrementReturnsToPool(t *testing.T) {
	p := NewPool("test", 1, 8)

	c := p.Request()
	if c == nil {
		t.Fatal("expected a container")
	}
	c.Decrement()

	if p.Available() != 1 {
		t.Fatalf("expected container back in pool, available=%d", p.Available())
	}

	c2 := p.Request()
	if c2 != c {
		t.Fatalf("expected the same reclaimed container back")
	}
	if c2.RefCount() != 1 {
		t.Fatalf("expected fresh refcount of 1, got %d", c2.RefCount())
	}
}

func TestIncrementDecrementRoundTrip(t *testing.T) {
	p := NewPool("test", 1, 4)
	c := p.Request()

	c.Increment() // simulate pass_metadata to a second buffer
	if c.RefCount() != 2 {
		t.Fatalf("expected refcount 2, got %d", c.RefCount())
	}

	c.Decrement() // first buffer's slot goes empty
	if p.Available() != 0 {
		t.Fatalf("container should still be live, available=%d", p.Available())
	}

	c.Decrement() // second buffer's slot goes empty
	if p.Available() != 1 {
		t.Fatalf("container should now be returned, available=%d", p.Available())
	}
}

func TestDecrementBelowZeroPanics(t *testing.T) {
	p := NewPool("test", 1, 4)
	c := p.Request()
	c.Decrement()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on over-decrement")
		}
	}()
	c.Decrement()
}

// TestConcurrentRequestRelease exercises the property-based invariant that
// every container returns to the pool in a closed scenario: N goroutines
// each request, touch, and release a container many times, and at the end
// the pool must be back at full capacity with no leaked or duplicated
// containers.
func TestConcurrentRequestRelease(t *testing.T) {
	const capacity = 8
	const workers = 16
	const rounds = 200

	p := NewPool("concurrent", capacity, 32)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				var c *Container
				for c == nil {
					c = p.Request()
				}
				c.Data()[0] = 1
				c.Decrement()
			}
		}()
	}
	wg.Wait()

	if got := p.Available(); got != capacity {
		t.Fatalf("expected pool fully drained back to capacity %d, got %d", capacity, got)
	}
}
