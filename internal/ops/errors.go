// Package ops implements the inter-buffer operators that move frames and
// their metadata between adjacent stages without necessarily copying the
// payload: PassMetadata, CopyMetadata, SwapFrames, SafeSwapFrame and
// SwapExternalFrame.
package ops

import "errors"

var (
	// ErrSizeMismatch is returned by CopyMetadata/SwapFrames/SafeSwapFrame
	// when the two sides disagree on size in a way the operator cannot
	// reconcile.
	ErrSizeMismatch = errors.New("ops: frame or metadata size mismatch")
)
