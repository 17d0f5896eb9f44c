package fabric

import "github.com/e7canasta/kotekan-fabric/internal/ops"

// Inter-buffer operators. See internal/ops for the full contract; these
// are thin re-exports so callers only ever import one package.

// PassMetadata binds to's slot to the exact same metadata container already
// bound on from's slot, incrementing its refcount.
func PassMetadata(from *Buffer, fromSlot int, to *Buffer, toSlot int) {
	ops.PassMetadata(from, fromSlot, to, toSlot)
}

// CopyMetadata copies metadata bytes from source to destination when both
// slots hold equal-sized containers.
func CopyMetadata(src *Buffer, srcSlot int, dst *Buffer, dstSlot int) error {
	return ops.CopyMetadata(src, srcSlot, dst, dstSlot)
}

// SwapFrames atomically exchanges two slots' raw storage pointers.
func SwapFrames(from *Buffer, fromSlot int, to *Buffer, toSlot int) error {
	return ops.SwapFrames(from, fromSlot, to, toSlot)
}

// SafeSwapFrame swaps pointers when src has exactly one consumer and falls
// back to a byte copy otherwise.
func SafeSwapFrame(src *Buffer, srcSlot int, dest *Buffer, destSlot int) error {
	return ops.SafeSwapFrame(src, srcSlot, dest, destSlot)
}

// SwapExternalFrame substitutes externalFrame for slot's backing storage
// and returns the storage it displaced.
func SwapExternalFrame(buf *Buffer, slot int, externalFrame []byte) []byte {
	return ops.SwapExternalFrame(buf, slot, externalFrame)
}
