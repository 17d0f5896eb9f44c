// Package ring implements the frame buffer: a central multi-producer,
// multi-consumer ring of fixed-size frame slots, built on a
// sync.Mutex+sync.Cond mailbox idiom.
//
// This package is INTERNAL - clients use the public API in the parent
// package.
package ring

import (
	"log/slog"
	"time"

	"github.com/e7canasta/kotekan-fabric/internal/memalloc"
	"github.com/e7canasta/kotekan-fabric/internal/metadata"
)

// Status is the outcome of a timed wait.
type Status int

const (
	// StatusOK means the predicate was satisfied before the deadline.
	StatusOK Status = iota
	// StatusTimeout means the deadline elapsed first.
	StatusTimeout
	// StatusShutdown means the buffer was shut down while waiting.
	StatusShutdown
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTimeout:
		return "timeout"
	case StatusShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// roleRecord is one entry in a buffer's producer or consumer table.
type roleRecord struct {
	inUse       bool
	name        string
	lastAcquired int
	lastReleased int
}

// slot is one ring position: its backing storage, full/done state, and any
// bound metadata container.
type slot struct {
	storage []byte

	full bool

	// producerDone[i] / consumerDone[i] track completion against the role
	// table row i.
	producerDone []bool
	consumerDone []bool

	meta *metadata.Container

	lastArrival time.Time

	// zeroing is true while an async zero-on-release job owns this slot's
	// storage; WaitForEmpty must not hand the slot out until it clears.
	zeroing bool
}

// Config carries everything the fabric needs to build one Buffer; supplied
// by the surrounding pipeline/config layer. The fabric never parses this
// itself.
type Config struct {
	Name string
	Type string

	NumFrames int
	FrameSize int
	// AlignedFrameSize, if zero, defaults to FrameSize. It is the length of
	// each slot's allocated storage.
	AlignedFrameSize int

	MaxProducers int
	MaxConsumers int

	MetadataPool *metadata.Pool

	// NUMANode, when non-nil, pins frame storage to that node.
	NUMANode *int

	// PageLock pins frame storage in RAM for accelerator DMA.
	PageLock bool

	// ZeroOnRelease scrubs a frame's bytes to zero before it becomes
	// available to the next producer.
	ZeroOnRelease bool

	// Allocator overrides the default page allocator (e.g. for a
	// host-accelerator interop allocator). Defaults to
	// memalloc.NewPageAllocator(Name) when nil.
	Allocator memalloc.Allocator

	// Logger receives structured status/lifecycle events. Defaults to
	// slog.Default() when nil.
	Logger *slog.Logger
}
