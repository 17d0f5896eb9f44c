package ring

import (
	"fmt"

	"github.com/e7canasta/kotekan-fabric/internal/metadata"
)

// AllocateNewMetadata requests a container from the buffer's metadata pool
// for slotIdx if one isn't already bound. Calling this without a configured
// pool is a stage bug (fatal); the pool being exhausted is a normal runtime
// condition callers must be able to react to, so it is returned as an error.
func (b *Buffer) AllocateNewMetadata(slotIdx int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.metadataPool == nil {
		panic(fmt.Sprintf("ring: buffer %q: no metadata pool configured but metadata was requested", b.name))
	}

	s := &b.slots[slotIdx]
	if s.meta != nil {
		return nil
	}
	c := b.metadataPool.Request()
	if c == nil {
		return fmt.Errorf("%w: pool %q", ErrPoolExhausted, b.metadataPool.Name())
	}
	s.meta = c
	return nil
}

// GetMetadata returns the raw metadata bytes bound to slotIdx. Calling it
// on a slot with no bound metadata is a stage bug: check GetMetadataContainer
// first if that's a possibility.
func (b *Buffer) GetMetadata(slotIdx int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &b.slots[slotIdx]
	if s.meta == nil {
		panic(fmt.Sprintf("ring: buffer %q: frame %d has no bound metadata", b.name, slotIdx))
	}
	return s.meta.Data()
}

// GetMetadataContainer returns the metadata container bound to slotIdx, or
// nil if none is bound.
func (b *Buffer) GetMetadataContainer(slotIdx int) *metadata.Container {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slots[slotIdx].meta
}

// SetMetadataContainer binds c to slotIdx directly, used by the inter-buffer
// operators (pass_metadata) rather than by stages. Passing
// nil unbinds without touching c's refcount - the caller owns that.
func (b *Buffer) SetMetadataContainer(slotIdx int, c *metadata.Container) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots[slotIdx].meta = c
}

// Lock and Unlock expose the buffer's own mutex to the inter-buffer
// operators, which must take two buffers' locks in a fixed order to avoid
// deadlocking against a concurrent operator running the other direction.
func (b *Buffer) Lock()   { b.mu.Lock() }
func (b *Buffer) Unlock() { b.mu.Unlock() }
