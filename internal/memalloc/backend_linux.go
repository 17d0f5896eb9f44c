//go:build linux

package memalloc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// pageAlloc returns a page-aligned, zero-initialized, anonymous mapping of
// exactly size bytes, rounded up to the page size internally by mmap itself.
// When node >= 0 and libnuma is available, the region is placed on that
// node; grounded on momentics-hioload-ws/core/buffer/bufferpool_linux.go's
// mmap call and pool/numa_linux.go's numa_alloc_onnode wrapper.
func pageAlloc(size int, node int) ([]byte, error) {
	if node >= 0 {
		buf, err := numaAllocOnNode(size, node)
		if err == nil {
			return buf, nil
		}
		// Fall through to a plain anonymous mapping whenever the libnuma
		// allocation fails, whether libnuma is missing or the node cannot
		// be used. ErrInvalidNUMANode is returned only for node numbers
		// below -1, which pageAllocator.Allocate rejects before calling
		// here; a node number the system does not have is not rejected.
	}

	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANONYMOUS|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return buf, nil
}

// pageRelease returns a region obtained from pageAlloc to the OS.
func pageRelease(buf []byte, node int) {
	if node >= 0 && numaOwns(buf) {
		numaFree(buf)
		return
	}
	_ = unix.Munmap(buf)
}

// pageLock pins buf in RAM so DMA transfers into/out of it are safe.
func pageLock(buf []byte) error {
	return unix.Mlock(buf)
}

// pageUnlock releases a previous pageLock. Safe to call on a buffer that
// was never locked.
func pageUnlock(buf []byte) {
	_ = unix.Munlock(buf)
}
