package ring

import (
	"strings"
	"time"
)

// IsEmpty reports whether slotIdx currently holds no data. A slot mid
// zero-on-release is still reported full: it isn't safe to hand out yet.
func (b *Buffer) IsEmpty(slotIdx int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.slots[slotIdx].full
}

// FullCount returns how many slots currently hold data.
func (b *Buffer) FullCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := range b.slots {
		if b.slots[i].full {
			n++
		}
	}
	return n
}

// LastArrivalTime is the wall-clock time the most recent frame became full,
// the zero value if no frame ever has.
func (b *Buffer) LastArrivalTime() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastArrival
}

// StatusString renders one character per slot ('X' full, '_' empty).
func (b *Buffer) StatusString() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var sb strings.Builder
	sb.Grow(len(b.slots))
	for i := range b.slots {
		if b.slots[i].full {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// PrintStatus logs the buffer's current fill pattern at info level.
func (b *Buffer) PrintStatus() {
	b.logger.Info("buffer status", "buffer", b.name, "id", b.id, "status", b.StatusString())
}
