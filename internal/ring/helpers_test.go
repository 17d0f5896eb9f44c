package ring

import (
	"testing"
	"time"

	"github.com/e7canasta/kotekan-fabric/internal/metadata"
)

func newRingTestMetadataPool(t *testing.T, capacity, objSize int) *metadata.Pool {
	t.Helper()
	return metadata.NewPool("test-pool", capacity, objSize)
}

func timeoutChan(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}
