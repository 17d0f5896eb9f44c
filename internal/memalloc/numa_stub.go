//go:build !linux || !cgo

// Stub NUMA binding for platforms/builds without libnuma (non-Linux, or
// cgo disabled). Mirrors momentics-hioload-ws/pool/numa_stub.go: the hint is
// accepted but not honored, so callers degrade to node-agnostic allocation
// rather than failing outright.
package memalloc

import "fmt"

func numaAllocOnNode(size int, node int) ([]byte, error) {
	return nil, fmt.Errorf("numa binding not available on this build")
}

func numaOwns(buf []byte) bool {
	return false
}

func numaFree(buf []byte) {}
