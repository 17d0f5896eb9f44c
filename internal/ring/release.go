package ring

import (
	"fmt"
	"time"

	"github.com/e7canasta/kotekan-fabric/internal/zero"
)

// MarkFull records that producer has finished writing slotIdx. Once every
// registered producer has done so the slot transitions to full and
// consumers are woken. If no consumer is registered (or every registered
// consumer's done bit for the slot is already set), the frame is dropped
// immediately without ever becoming visible, bypassing the zero-on-release
// path entirely.
func (b *Buffer) MarkFull(producerName string, slotIdx int) {
	b.mu.Lock()

	prodIdx := b.findProducerLocked(producerName)
	if prodIdx == -1 {
		b.mu.Unlock()
		panic(fmt.Sprintf("ring: buffer %q: producer %q is not registered", b.name, producerName))
	}
	s := &b.slots[slotIdx]
	if s.producerDone[prodIdx] {
		b.mu.Unlock()
		panic(fmt.Sprintf("ring: buffer %q: producer %q double-marked frame %d full", b.name, producerName, slotIdx))
	}
	s.producerDone[prodIdx] = true
	b.producers[prodIdx].lastReleased = slotIdx

	var setFull, setEmpty bool
	if b.allProducersDoneLocked(slotIdx) {
		b.resetProducerDoneLocked(slotIdx)
		s.full = true
		s.lastArrival = time.Now()
		b.lastArrival = s.lastArrival
		setFull = true

		if b.allConsumersDoneLocked(slotIdx) {
			b.dropSlotLocked(slotIdx)
			setEmpty = true
		}
	}

	b.mu.Unlock()

	if setFull {
		b.fullCond.Broadcast()
	}
	if setEmpty {
		b.emptyCond.Broadcast()
	}
}

// MarkEmpty records that consumer has finished reading slotIdx. Once every
// registered consumer has done so, the slot is released - either
// immediately, or via a deferred zero-on-release job, per releaseSlotLocked.
func (b *Buffer) MarkEmpty(consumerName string, slotIdx int) {
	b.mu.Lock()

	consIdx := b.findConsumerLocked(consumerName)
	if consIdx == -1 {
		b.mu.Unlock()
		panic(fmt.Sprintf("ring: buffer %q: consumer %q is not registered", b.name, consumerName))
	}
	s := &b.slots[slotIdx]
	if s.consumerDone[consIdx] {
		b.mu.Unlock()
		panic(fmt.Sprintf("ring: buffer %q: consumer %q double-marked frame %d empty", b.name, consumerName, slotIdx))
	}
	s.consumerDone[consIdx] = true
	b.consumers[consIdx].lastReleased = slotIdx

	var broadcastEmpty bool
	if b.allConsumersDoneLocked(slotIdx) {
		broadcastEmpty = b.releaseSlotLocked(slotIdx)
	}

	b.mu.Unlock()

	if broadcastEmpty {
		b.emptyCond.Broadcast()
	}
}

// dropSlotLocked clears a slot without going through zero-on-release. Used
// only by MarkFull's no-consumers-registered path, which drops synchronously
// rather than deferring.
func (b *Buffer) dropSlotLocked(slotIdx int) {
	s := &b.slots[slotIdx]
	if s.meta != nil {
		s.meta.Decrement()
		s.meta = nil
	}
	s.full = false
	b.resetConsumerDoneLocked(slotIdx)
}

// releaseSlotLocked is the general "slot has been fully consumed" path used
// by MarkEmpty and UnregisterConsumer. It decrements any bound metadata
// immediately, then either clears the slot synchronously or, when
// zero-on-release is configured, hands the storage to the zero worker and
// returns false: the slot stays "full" (unavailable to producers) until the
// worker's callback clears it and broadcasts emptyCond itself, since a
// zeroing slot must not be visible as empty.
func (b *Buffer) releaseSlotLocked(slotIdx int) bool {
	s := &b.slots[slotIdx]
	if s.meta != nil {
		s.meta.Decrement()
		s.meta = nil
	}

	if b.zeroOnRelease && b.zeroer != nil {
		s.zeroing = true
		storage := s.storage
		b.zeroer.Submit(zero.Job{
			Data: storage,
			Done: func() {
				b.mu.Lock()
				s.full = false
				s.zeroing = false
				b.resetConsumerDoneLocked(slotIdx)
				b.mu.Unlock()
				b.emptyCond.Broadcast()
			},
		})
		return false
	}

	s.full = false
	b.resetConsumerDoneLocked(slotIdx)
	return true
}

// SendShutdownSignal wakes every waiter blocked in WaitForEmpty/WaitForFull
// so they return a zero value / StatusShutdown instead of blocking forever.
// It is idempotent.
func (b *Buffer) SendShutdownSignal() {
	b.mu.Lock()
	b.shutdown = true
	b.mu.Unlock()

	b.emptyCond.Broadcast()
	b.fullCond.Broadcast()
	b.logger.Info("shutdown signaled", "buffer", b.name, "id", b.id)
}

// ShuttingDown reports whether SendShutdownSignal has been called.
func (b *Buffer) ShuttingDown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown
}
