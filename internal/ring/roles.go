package ring

import "fmt"

// RegisterProducer adds name to the producer role table. Registering a
// duplicate name or overflowing the table is a stage bug, not a runtime
// condition a caller can recover from, so both are fatal.
func (b *Buffer) RegisterProducer(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findProducerLocked(name) != -1 {
		panic(fmt.Sprintf("ring: buffer %q: producer %q already registered", b.name, name))
	}
	for i := range b.producers {
		if !b.producers[i].inUse {
			b.producers[i] = roleRecord{inUse: true, name: name, lastAcquired: -1, lastReleased: -1}
			b.logger.Debug("producer registered", "buffer", b.name, "producer", name)
			return
		}
	}
	panic(fmt.Sprintf("ring: buffer %q: producer table exhausted (capacity %d)", b.name, len(b.producers)))
}

// RegisterConsumer adds name to the consumer role table. See RegisterProducer
// for why duplicates and table exhaustion are fatal.
func (b *Buffer) RegisterConsumer(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findConsumerLocked(name) != -1 {
		panic(fmt.Sprintf("ring: buffer %q: consumer %q already registered", b.name, name))
	}
	for i := range b.consumers {
		if !b.consumers[i].inUse {
			b.consumers[i] = roleRecord{inUse: true, name: name, lastAcquired: -1, lastReleased: -1}
			b.logger.Debug("consumer registered", "buffer", b.name, "consumer", name)
			return
		}
	}
	panic(fmt.Sprintf("ring: buffer %q: consumer table exhausted (capacity %d)", b.name, len(b.consumers)))
}

// UnregisterProducer is symmetric with RegisterProducer but simpler: it
// clears the row without inducing any slot state transition. Unregistering
// a name that was never registered is a no-op.
func (b *Buffer) UnregisterProducer(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.findProducerLocked(name)
	if idx == -1 {
		return
	}
	b.producers[idx] = roleRecord{}
	b.logger.Debug("producer unregistered", "buffer", b.name, "producer", name)
}

// UnregisterConsumer clears the named consumer's row. Because the removed
// row no longer counts toward "all consumers done", removing it can free
// slots whose only remaining holdout was this consumer - those slots
// transition to empty exactly as if the consumer had just released them,
// including a deferred zero-on-release dispatch when configured.
func (b *Buffer) UnregisterConsumer(name string) {
	b.mu.Lock()

	idx := b.findConsumerLocked(name)
	if idx == -1 {
		b.mu.Unlock()
		return
	}
	b.consumers[idx] = roleRecord{}
	b.logger.Debug("consumer unregistered", "buffer", b.name, "consumer", name)

	var broadcastEmpty bool
	for i := range b.slots {
		if b.slots[i].full && b.allConsumersDoneLocked(i) {
			if b.releaseSlotLocked(i) {
				broadcastEmpty = true
			}
		}
	}

	b.mu.Unlock()

	if broadcastEmpty {
		b.emptyCond.Broadcast()
	}
}

func (b *Buffer) findProducerLocked(name string) int {
	for i := range b.producers {
		if b.producers[i].inUse && b.producers[i].name == name {
			return i
		}
	}
	return -1
}

func (b *Buffer) findConsumerLocked(name string) int {
	for i := range b.consumers {
		if b.consumers[i].inUse && b.consumers[i].name == name {
			return i
		}
	}
	return -1
}

// mustFindProducerLocked panics if name is not a registered producer. Every
// caller with a Buffer method taking a producer name expects the caller to
// have registered first; calling in without doing so is a stage bug.
func (b *Buffer) mustFindProducerLocked(name string) int {
	idx := b.findProducerLocked(name)
	if idx == -1 {
		panic(fmt.Sprintf("ring: buffer %q: producer %q is not registered", b.name, name))
	}
	return idx
}

func (b *Buffer) mustFindConsumerLocked(name string) int {
	idx := b.findConsumerLocked(name)
	if idx == -1 {
		panic(fmt.Sprintf("ring: buffer %q: consumer %q is not registered", b.name, name))
	}
	return idx
}

func (b *Buffer) allProducersDoneLocked(slotIdx int) bool {
	s := &b.slots[slotIdx]
	for i := range b.producers {
		if b.producers[i].inUse && !s.producerDone[i] {
			return false
		}
	}
	return true
}

func (b *Buffer) allConsumersDoneLocked(slotIdx int) bool {
	s := &b.slots[slotIdx]
	for i := range b.consumers {
		if b.consumers[i].inUse && !s.consumerDone[i] {
			return false
		}
	}
	return true
}

func (b *Buffer) resetProducerDoneLocked(slotIdx int) {
	s := &b.slots[slotIdx]
	for i := range s.producerDone {
		s.producerDone[i] = false
	}
}

func (b *Buffer) resetConsumerDoneLocked(slotIdx int) {
	s := &b.slots[slotIdx]
	for i := range s.consumerDone {
		s.consumerDone[i] = false
	}
}

// ProducerCount returns the number of currently registered producers.
func (b *Buffer) ProducerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := range b.producers {
		if b.producers[i].inUse {
			n++
		}
	}
	return n
}

// ConsumerCount returns the number of currently registered consumers.
func (b *Buffer) ConsumerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := range b.consumers {
		if b.consumers[i].inUse {
			n++
		}
	}
	return n
}
