// Package memalloc implements the frame-memory allocator: page-aligned,
// optionally page-locked, optionally NUMA-bound raw byte regions used as
// frame storage, plus the symmetric release path.
package memalloc

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when the underlying platform allocation fails.
var ErrOutOfMemory = errors.New("memalloc: out of memory")

// ErrInvalidNUMANode is returned when a NUMA node hint cannot be honored.
var ErrInvalidNUMANode = errors.New("memalloc: invalid NUMA node")

// PageLockError identifies a page-lock (mlock) failure and names the system
// resource limit that was hit.
type PageLockError struct {
	Limit string
	Err   error
}

func (e *PageLockError) Error() string {
	return fmt.Sprintf("memalloc: page-lock failed (limit: %s): %v", e.Limit, e.Err)
}

func (e *PageLockError) Unwrap() error { return e.Err }

// Options configures a single Allocate call.
type Options struct {
	// PageLock pins the region in RAM (mlock) so DMA from accelerators is
	// safe. Freed automatically before Release unmaps the region.
	PageLock bool

	// NUMANode, when >= 0, requests the region be allocated on that node.
	// -1 means "no preference".
	NUMANode int
}

// Allocator is the frame-memory allocation contract. A build-time policy may
// substitute a host-accelerator interop allocator (e.g. a GPU-driver
// host-memory call) for the default PageAllocator; the fabric only ever
// depends on this interface, never on a concrete allocator.
type Allocator interface {
	// Allocate returns a page-aligned, zero-initialized region of exactly
	// size bytes, honoring the requested options.
	Allocate(size int, opts Options) ([]byte, error)

	// Release frees a region previously returned by Allocate. buf must be
	// exactly the slice Allocate returned (same length and backing array).
	Release(buf []byte)
}

// NewPageAllocator returns the platform default Allocator: page-aligned
// mmap-backed regions on Linux (via golang.org/x/sys/unix), with optional
// mlock page-locking and optional libnuma node binding; a portable
// heap-backed fallback elsewhere. name is used only in diagnostics.
func NewPageAllocator(name string) Allocator {
	return &pageAllocator{name: name}
}

// HostFunc adapts a host-accelerator interop allocation function (e.g. a
// cudaHostAlloc/hipHostMalloc wrapper) into an Allocator. Construct a Buffer
// with a HostFunc-wrapped Allocator instead of NewPageAllocator to switch
// the whole buffer's frame storage over to accelerator-pinned memory; the
// choice is made once at construction, not per call.
type HostFunc struct {
	AllocFn   func(size int) ([]byte, error)
	ReleaseFn func(buf []byte)
}

func (h HostFunc) Allocate(size int, _ Options) ([]byte, error) {
	return h.AllocFn(size)
}

func (h HostFunc) Release(buf []byte) {
	h.ReleaseFn(buf)
}
