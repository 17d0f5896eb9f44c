//go:build !linux

package memalloc

import "fmt"

// pageAlloc falls back to a plain Go heap allocation on platforms without a
// dedicated mmap/NUMA backend wired up (mirrors
// momentics-hioload-ws/pool/bufferpool_linux.go's own fallback branch when
// its hugepage mmap fails). The NUMA node hint is accepted but ignored.
func pageAlloc(size int, _ int) ([]byte, error) {
	return make([]byte, size), nil
}

func pageRelease(_ []byte, _ int) {
	// Left to the garbage collector; nothing to unmap.
}

func pageLock(_ []byte) error {
	return fmt.Errorf("memalloc: page-locking is not supported on this platform")
}

func pageUnlock(_ []byte) {}
