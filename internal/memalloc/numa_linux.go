//go:build linux && cgo

// NUMA node binding for the frame-memory allocator. No Go module wraps
// libnuma, so this calls into the system library directly through a small
// cgo shim.
package memalloc

/*
#cgo LDFLAGS: -lnuma
#include <numa.h>
#include <stdlib.h>

static int kf_numa_available() {
	return numa_available();
}
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

var (
	numaOnce      sync.Once
	numaAvailable bool

	numaRegionsMu sync.Mutex
	numaRegions   = map[uintptr]int{} // base address -> length, for buffers allocated via libnuma
)

func numaCheckAvailable() bool {
	numaOnce.Do(func() {
		numaAvailable = C.kf_numa_available() != -1
	})
	return numaAvailable
}

// numaAllocOnNode allocates size bytes pinned to the given NUMA node via
// libnuma. Returns an error if libnuma is unavailable on this system.
func numaAllocOnNode(size int, node int) ([]byte, error) {
	if !numaCheckAvailable() {
		return nil, fmt.Errorf("libnuma unavailable")
	}
	if node < 0 {
		return nil, ErrInvalidNUMANode
	}

	ptr := C.numa_alloc_onnode(C.size_t(size), C.int(node))
	if ptr == nil {
		return nil, fmt.Errorf("numa_alloc_onnode(node=%d) failed", node)
	}

	buf := unsafe.Slice((*byte)(ptr), size)
	for i := range buf {
		buf[i] = 0
	}

	numaRegionsMu.Lock()
	numaRegions[uintptr(ptr)] = size
	numaRegionsMu.Unlock()

	return buf, nil
}

// numaOwns reports whether buf was allocated by numaAllocOnNode.
func numaOwns(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(&buf[0]))
	numaRegionsMu.Lock()
	_, ok := numaRegions[base]
	numaRegionsMu.Unlock()
	return ok
}

// numaFree releases a region previously returned by numaAllocOnNode.
func numaFree(buf []byte) {
	if len(buf) == 0 {
		return
	}
	base := uintptr(unsafe.Pointer(&buf[0]))

	numaRegionsMu.Lock()
	size, ok := numaRegions[base]
	if ok {
		delete(numaRegions, base)
	}
	numaRegionsMu.Unlock()

	if !ok {
		return
	}
	C.numa_free(unsafe.Pointer(&buf[0]), C.size_t(size))
}
