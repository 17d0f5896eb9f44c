package ring

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/e7canasta/kotekan-fabric/internal/memalloc"
	"github.com/e7canasta/kotekan-fabric/internal/metadata"
	"github.com/e7canasta/kotekan-fabric/internal/zero"
)

// Buffer is a fixed-capacity ring of frame slots shared between one or more
// producer stages and one or more consumer stages. All state transitions
// are guarded by mu; fullCond/emptyCond signal the two directions of flow.
type Buffer struct {
	id      string
	name    string
	typeTag string

	frameSize        int
	alignedFrameSize int
	numaNode         *int
	pageLock         bool
	zeroOnRelease    bool

	allocator    memalloc.Allocator
	metadataPool *metadata.Pool
	zeroer       *zero.Worker
	logger       *slog.Logger

	mu        sync.Mutex
	fullCond  *sync.Cond
	emptyCond *sync.Cond
	shutdown  bool

	slots     []slot
	producers []roleRecord
	consumers []roleRecord

	lastArrival time.Time
}

// NewBuffer allocates a Buffer's frame storage and role tables per cfg.
// On allocation failure it releases whatever slots it already acquired and
// returns a nil Buffer with a wrapped ErrAllocation rather than a partially
// built object.
func NewBuffer(cfg Config) (*Buffer, error) {
	if cfg.NumFrames <= 0 {
		return nil, fmt.Errorf("%w: %s: num_frames must be positive", ErrInvalidConfig, cfg.Name)
	}
	if cfg.FrameSize <= 0 {
		return nil, fmt.Errorf("%w: %s: frame_size must be positive", ErrInvalidConfig, cfg.Name)
	}
	if cfg.MaxProducers <= 0 || cfg.MaxConsumers <= 0 {
		return nil, fmt.Errorf("%w: %s: max_producers and max_consumers must be positive", ErrInvalidConfig, cfg.Name)
	}

	aligned := cfg.AlignedFrameSize
	if aligned == 0 {
		aligned = cfg.FrameSize
	}
	if aligned < cfg.FrameSize {
		return nil, fmt.Errorf("%w: %s: aligned_frame_size %d smaller than frame_size %d", ErrInvalidConfig, cfg.Name, aligned, cfg.FrameSize)
	}

	allocator := cfg.Allocator
	if allocator == nil {
		allocator = memalloc.NewPageAllocator(cfg.Name)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	numaHint := -1
	if cfg.NUMANode != nil {
		numaHint = *cfg.NUMANode
	}
	allocOpts := memalloc.Options{PageLock: cfg.PageLock, NUMANode: numaHint}

	slots := make([]slot, cfg.NumFrames)
	for i := range slots {
		storage, err := allocator.Allocate(aligned, allocOpts)
		if err != nil {
			for j := 0; j < i; j++ {
				allocator.Release(slots[j].storage)
			}
			return nil, fmt.Errorf("%w: %s: frame %d: %v", ErrAllocation, cfg.Name, i, err)
		}
		slots[i] = slot{
			storage:      storage,
			producerDone: make([]bool, cfg.MaxProducers),
			consumerDone: make([]bool, cfg.MaxConsumers),
		}
	}

	b := &Buffer{
		id:               uuid.NewString(),
		name:             cfg.Name,
		typeTag:          cfg.Type,
		frameSize:        cfg.FrameSize,
		alignedFrameSize: aligned,
		numaNode:         cfg.NUMANode,
		pageLock:         cfg.PageLock,
		zeroOnRelease:    cfg.ZeroOnRelease,
		allocator:        allocator,
		metadataPool:     cfg.MetadataPool,
		logger:           logger,
		slots:            slots,
		producers:        make([]roleRecord, cfg.MaxProducers),
		consumers:        make([]roleRecord, cfg.MaxConsumers),
	}
	b.fullCond = sync.NewCond(&b.mu)
	b.emptyCond = sync.NewCond(&b.mu)

	if cfg.ZeroOnRelease {
		b.zeroer = zero.NewWorker(cfg.NumFrames)
	}

	logger.Info("buffer created", "buffer", b.name, "type", b.typeTag, "id", b.id,
		"num_frames", cfg.NumFrames, "frame_size", cfg.FrameSize, "aligned_frame_size", aligned)

	return b, nil
}

// ID is the buffer instance's correlation id, stable for its lifetime.
func (b *Buffer) ID() string { return b.id }

// Name is the buffer's configured name.
func (b *Buffer) Name() string { return b.name }

// Type is the buffer's configured type tag (e.g. "vdif", "visibility").
func (b *Buffer) Type() string { return b.typeTag }

// NumFrames returns the number of slots in the ring.
func (b *Buffer) NumFrames() int { return len(b.slots) }

// FrameSize returns the requested (unaligned) per-frame size.
func (b *Buffer) FrameSize() int { return b.frameSize }

// Close releases every slot's backing storage and stops the zero-on-release
// worker, if one is running. It does not itself signal shutdown to blocked
// waiters; call SendShutdownSignal first.
func (b *Buffer) Close() {
	if b.zeroer != nil {
		b.zeroer.Stop()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.slots {
		b.allocator.Release(b.slots[i].storage)
		b.slots[i].storage = nil
	}
	b.logger.Info("buffer closed", "buffer", b.name, "id", b.id)
}
