package ring

import "time"

// WaitForEmpty blocks producerName's caller until slotIdx is not full and
// this producer has not already marked it done this cycle, then returns
// its storage. It returns ok=false only if the buffer was shut down while
// waiting.
func (b *Buffer) WaitForEmpty(producerName string, slotIdx int) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prodIdx := b.mustFindProducerLocked(producerName)
	s := &b.slots[slotIdx]

	for (s.full || s.producerDone[prodIdx]) && !b.shutdown {
		b.emptyCond.Wait()
	}
	if b.shutdown {
		return nil, false
	}

	b.producers[prodIdx].lastAcquired = slotIdx
	return s.storage, true
}

// WaitForFull blocks consumerName's caller until slotIdx is full and this
// consumer has not already marked it done this cycle, then returns its
// storage. It returns ok=false only if the buffer was shut down while
// waiting.
func (b *Buffer) WaitForFull(consumerName string, slotIdx int) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	consIdx := b.mustFindConsumerLocked(consumerName)
	s := &b.slots[slotIdx]

	for (!s.full || s.consumerDone[consIdx]) && !b.shutdown {
		b.fullCond.Wait()
	}
	if b.shutdown {
		return nil, false
	}

	b.consumers[consIdx].lastAcquired = slotIdx
	return s.storage, true
}

// WaitForFullTimeout is WaitForFull bounded by deadline. sync.Cond has no
// native timed wait, so a timer broadcasts fullCond once deadline elapses
// and the predicate is rechecked on every wake, including that final one.
// A deadline that has already passed returns StatusTimeout without
// blocking if the slot isn't already available.
func (b *Buffer) WaitForFullTimeout(consumerName string, slotIdx int, deadline time.Time) ([]byte, Status) {
	b.mu.Lock()
	defer b.mu.Unlock()

	consIdx := b.mustFindConsumerLocked(consumerName)
	s := &b.slots[slotIdx]

	timer := time.AfterFunc(time.Until(deadline), func() {
		b.mu.Lock()
		b.fullCond.Broadcast()
		b.mu.Unlock()
	})
	defer timer.Stop()

	for {
		if b.shutdown {
			return nil, StatusShutdown
		}
		if s.full && !s.consumerDone[consIdx] {
			b.consumers[consIdx].lastAcquired = slotIdx
			return s.storage, StatusOK
		}
		if !time.Now().Before(deadline) {
			return nil, StatusTimeout
		}
		b.fullCond.Wait()
	}
}
