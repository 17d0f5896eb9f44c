package memalloc

import "fmt"

// pageAllocator is the default Allocator: page-aligned regions from the
// platform-specific pageAlloc/pageRelease pair, with an optional mlock and
// an optional NUMA node hint layered on top. See backend_linux.go and
// backend_other.go for the platform backends, grounded on
// momentics-hioload-ws's core/buffer/bufferpool_linux.go mmap allocator and
// pool/numa_linux.go libnuma binding.
type pageAllocator struct {
	name string
}

func (a *pageAllocator) Allocate(size int, opts Options) ([]byte, error) {
	if size <= 0 {
		panic("memalloc: allocate requires positive size")
	}
	if opts.NUMANode < -1 {
		return nil, ErrInvalidNUMANode
	}

	buf, err := pageAlloc(size, opts.NUMANode)
	if err != nil {
		return nil, fmt.Errorf("%w: pool %q: %v", ErrOutOfMemory, a.name, err)
	}

	if opts.PageLock {
		if err := pageLock(buf); err != nil {
			pageRelease(buf, opts.NUMANode)
			return nil, &PageLockError{Limit: "RLIMIT_MEMLOCK", Err: err}
		}
	}

	return buf, nil
}

func (a *pageAllocator) Release(buf []byte) {
	if len(buf) == 0 {
		return
	}
	pageUnlock(buf)
	pageRelease(buf, -1)
}
