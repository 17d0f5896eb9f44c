package fabric

import (
	"github.com/e7canasta/kotekan-fabric/internal/memalloc"
	"github.com/e7canasta/kotekan-fabric/internal/metadata"
	"github.com/e7canasta/kotekan-fabric/internal/ops"
	"github.com/e7canasta/kotekan-fabric/internal/ring"
)

// Public API - re-export internal types as this module's stable contract.

// Buffer is a fixed-capacity ring of frame slots. See doc.go for usage.
type Buffer = ring.Buffer

// Config carries everything New needs to build one Buffer.
type Config = ring.Config

// Status is the outcome of a timed wait.
type Status = ring.Status

const (
	StatusOK       = ring.StatusOK
	StatusTimeout  = ring.StatusTimeout
	StatusShutdown = ring.StatusShutdown
)

// MetadataPool hands out fixed-size, refcounted metadata containers.
type MetadataPool = metadata.Pool

// MetadataContainer is one refcounted metadata record bound to a slot.
type MetadataContainer = metadata.Container

// Allocator supplies and reclaims a Buffer's frame storage.
type Allocator = memalloc.Allocator

// AllocatorOptions configures a single Allocate call.
type AllocatorOptions = memalloc.Options

// HostFunc adapts caller-supplied alloc/release functions to Allocator, for
// wiring in a host-accelerator interop allocator.
type HostFunc = memalloc.HostFunc

// Public API errors - re-export internal sentinels as this module's stable
// contract.
var (
	ErrInvalidConfig  = ring.ErrInvalidConfig
	ErrAllocation     = ring.ErrAllocation
	ErrNoMetadataPool = ring.ErrNoMetadataPool
	ErrPoolExhausted  = ring.ErrPoolExhausted
	ErrSizeMismatch   = ops.ErrSizeMismatch

	ErrOutOfMemory     = memalloc.ErrOutOfMemory
	ErrInvalidNUMANode = memalloc.ErrInvalidNUMANode
)

// NewMetadataPool creates a pool of capacity containers, each objSize bytes.
func NewMetadataPool(name string, capacity, objSize int) *MetadataPool {
	return metadata.NewPool(name, capacity, objSize)
}

// NewPageAllocator is the default frame-storage allocator: page-aligned,
// optionally mlocked, optionally NUMA-node-bound.
func NewPageAllocator(name string) Allocator {
	return memalloc.NewPageAllocator(name)
}
