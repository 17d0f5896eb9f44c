// Package metadata implements a fixed-size, reference-counted pool of opaque
// metadata records, ported from kotekan's metadataPool/metadataContainer
// (lib/core/metadata.c): a producer draws a container on demand, the
// container travels alongside a frame through the buffer fabric, and it
// returns to the free list only once its last reference is dropped.
//
// This package is INTERNAL - clients use the public API in the parent
// package. Reason: allows internal refactoring without breaking changes.
package metadata

import (
	"sync"
)

// Container is a fixed-size opaque metadata record living in a Pool.
//
// Thread-safety: Increment/Decrement are safe for concurrent callers; Data
// is only safe to read/write while the caller holds a live reference (the
// same handoff discipline the buffer fabric uses for frame storage).
type Container struct {
	pool *Pool

	mu       sync.Mutex
	data     []byte
	refCount int
	inUse    bool
}

// Data returns the underlying record bytes. Callers must hold a live
// reference (refCount >= 1) for the duration of any access.
func (c *Container) Data() []byte {
	return c.data
}

// Size returns the record size in bytes.
func (c *Container) Size() int {
	return len(c.data)
}

// Increment adds one reference. Called when a container is shared onto a
// second buffer via pass_metadata.
func (c *Container) Increment() {
	c.mu.Lock()
	c.refCount++
	c.mu.Unlock()
}

// Decrement drops one reference, returning the container to its pool's free
// list once the count reaches zero.
func (c *Container) Decrement() {
	c.mu.Lock()
	if c.refCount <= 0 {
		c.mu.Unlock()
		panic("metadata: decrement on container with zero refcount")
	}
	c.refCount--
	zero := c.refCount == 0
	c.mu.Unlock()

	if zero {
		c.pool.release(c)
	}
}

// RefCount returns a snapshot of the current reference count.
func (c *Container) RefCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refCount
}

// Pool is a fixed-capacity array of Containers with a free list guarded by a
// single mutex, matching kotekan's metadataPool: pre-sized at construction so
// steady-state operation performs no heap allocation and no allocator jitter
// enters the fixed-cadence pipeline.
type Pool struct {
	mu        sync.Mutex
	name      string
	objSize   int
	free      []*Container
	all       []*Container
}

// NewPool creates a pool of capacity containers, each objSize bytes.
func NewPool(name string, capacity, objSize int) *Pool {
	if capacity <= 0 {
		panic("metadata: pool capacity must be positive")
	}
	p := &Pool{
		name:    name,
		objSize: objSize,
		free:    make([]*Container, 0, capacity),
		all:     make([]*Container, 0, capacity),
	}
	for i := 0; i < capacity; i++ {
		c := &Container{pool: p, data: make([]byte, objSize)}
		p.free = append(p.free, c)
		p.all = append(p.all, c)
	}
	return p
}

// Name returns the pool's configured name (used in diagnostics).
func (p *Pool) Name() string {
	return p.name
}

// Capacity returns the fixed number of containers the pool was built with.
func (p *Pool) Capacity() int {
	return len(p.all)
}

// Available returns a snapshot of how many containers are currently free.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Request draws a container from the free list, sets its refcount to 1, and
// returns it. Returns nil if the pool is exhausted (pool-exhausted is a
// recoverable condition per the fabric's error design, not a fatal one).
func (p *Pool) Request() *Container {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.free)
	if n == 0 {
		return nil
	}

	c := p.free[n-1]
	p.free = p.free[:n-1]

	c.mu.Lock()
	c.refCount = 1
	c.inUse = true
	for i := range c.data {
		c.data[i] = 0
	}
	c.mu.Unlock()

	return c
}

// release returns a drained container to the free list. Called only by
// Container.Decrement once refCount reaches zero.
func (p *Pool) release(c *Container) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c.mu.Lock()
	if !c.inUse {
		c.mu.Unlock()
		panic("metadata: double release of container")
	}
	c.inUse = false
	c.mu.Unlock()

	p.free = append(p.free, c)
}
