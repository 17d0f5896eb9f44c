package ops

import (
	"fmt"

	"github.com/e7canasta/kotekan-fabric/internal/ring"
)

// PassMetadata binds to's slot to the exact same metadata container already
// bound on from's slot, incrementing its refcount. The source binding is
// read under the source's lock and the destination binding is read and set
// under the destination's lock; the two locks are never held together.
// Calling it when the destination already holds a *different* container is
// a stage bug and panics; calling it when the destination already holds the
// *same* container is a no-op (idempotent).
func PassMetadata(from *ring.Buffer, fromSlot int, to *ring.Buffer, toSlot int) {
	c := from.GetMetadataContainer(fromSlot)

	existing := to.GetMetadataContainer(toSlot)
	if existing == c {
		return
	}
	if existing != nil {
		panic(fmt.Sprintf("ops: pass_metadata: buffer %q slot %d already holds a different metadata container", to.Name(), toSlot))
	}
	if c != nil {
		c.Increment()
	}
	to.SetMetadataContainer(toSlot, c)
}

// CopyMetadata copies metadata bytes from source to destination when both
// slots hold containers of equal size. It is a value copy: neither
// container's refcount changes. Locks are taken in a fixed order across the
// two buffers' instance ids to avoid deadlocking a concurrent operator
// running the opposite direction.
func CopyMetadata(src *ring.Buffer, srcSlot int, dst *ring.Buffer, dstSlot int) error {
	if src == dst {
		panic("ops: copy_metadata: source and destination must not be the same buffer")
	}

	from := src.GetMetadataContainer(srcSlot)
	to := dst.GetMetadataContainer(dstSlot)

	first, second := src, dst
	if second.ID() < first.ID() {
		first, second = second, first
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	if from == nil || to == nil || from.Size() != to.Size() {
		return fmt.Errorf("%w: copy_metadata %s[%d] -> %s[%d]", ErrSizeMismatch, src.Name(), srcSlot, dst.Name(), dstSlot)
	}
	copy(to.Data(), from.Data())
	return nil
}

// SwapFrames atomically exchanges the raw storage pointers of two slots.
// The buffers must share an aligned frame size. The caller is responsible
// for the single-producer/single-consumer setup-time guarantees this
// requires; SwapFrames only asserts the size precondition it can actually
// check.
func SwapFrames(from *ring.Buffer, fromSlot int, to *ring.Buffer, toSlot int) error {
	if from.AlignedFrameSize() != to.AlignedFrameSize() {
		return fmt.Errorf("%w: swap_frames %s[%d] (%d bytes) <-> %s[%d] (%d bytes)",
			ErrSizeMismatch, from.Name(), fromSlot, from.AlignedFrameSize(), to.Name(), toSlot, to.AlignedFrameSize())
	}

	first, second := from, to
	if second.ID() < first.ID() {
		first, second = second, first
	}
	first.Lock()
	defer first.Unlock()
	if from != to {
		second.Lock()
		defer second.Unlock()
	}

	fromStorage := from.FrameStorageLocked(fromSlot)
	toStorage := to.FrameStorageLocked(toSlot)
	from.SetFrameStorageLocked(fromSlot, toStorage)
	to.SetFrameStorageLocked(toSlot, fromStorage)
	return nil
}

// SafeSwapFrame swaps pointers when src has exactly one consumer (nothing
// else can observe the frame moving out from under it) and falls back to a
// byte copy when src has more than one consumer, so the other consumers
// still see the original payload. dest must have exactly one producer.
func SafeSwapFrame(src *ring.Buffer, srcSlot int, dest *ring.Buffer, destSlot int) error {
	if src == dest {
		panic("ops: safe_swap_frame: src and dest must not be the same buffer")
	}
	if dest.ProducerCount() > 1 {
		panic(fmt.Sprintf("ops: safe_swap_frame: destination buffer %q has more than one producer", dest.Name()))
	}
	if src.AlignedFrameSize() != dest.AlignedFrameSize() {
		return fmt.Errorf("%w: safe_swap_frame %s[%d] -> %s[%d]", ErrSizeMismatch, src.Name(), srcSlot, dest.Name(), destSlot)
	}

	if src.ConsumerCount() == 1 {
		return SwapFrames(src, srcSlot, dest, destSlot)
	}

	first, second := src, dest
	if second.ID() < first.ID() {
		first, second = second, first
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	copy(dest.FrameStorageLocked(destSlot), src.FrameStorageLocked(srcSlot))
	return nil
}

// SwapExternalFrame substitutes externalFrame for slot's backing storage
// and returns the storage it displaced, handing a frame's memory to an
// external owner (e.g. an accelerator doing zero-copy DMA) without a bulk
// copy. buf must have exactly one producer.
func SwapExternalFrame(buf *ring.Buffer, slot int, externalFrame []byte) []byte {
	if buf.ProducerCount() > 1 {
		panic(fmt.Sprintf("ops: swap_external_frame: buffer %q has more than one producer", buf.Name()))
	}

	buf.Lock()
	defer buf.Unlock()

	previous := buf.FrameStorageLocked(slot)
	buf.SetFrameStorageLocked(slot, externalFrame)
	return previous
}
