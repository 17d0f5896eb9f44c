package ring

import (
	"testing"
)

func newTestBuffer(t *testing.T, numFrames, frameSize, maxProducers, maxConsumers int) *Buffer {
	t.Helper()
	b, err := NewBuffer(Config{
		Name:         "test",
		Type:         "raw",
		NumFrames:    numFrames,
		FrameSize:    frameSize,
		MaxProducers: maxProducers,
		MaxConsumers: maxConsumers,
	})
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func TestNewBufferRejectsInvalidConfig(t *testing.T) {
	cases := []Config{
		{Name: "a", NumFrames: 0, FrameSize: 8, MaxProducers: 1, MaxConsumers: 1},
		{Name: "a", NumFrames: 2, FrameSize: 0, MaxProducers: 1, MaxConsumers: 1},
		{Name: "a", NumFrames: 2, FrameSize: 8, MaxProducers: 0, MaxConsumers: 1},
		{Name: "a", NumFrames: 2, FrameSize: 8, MaxProducers: 1, MaxConsumers: 0},
		{Name: "a", NumFrames: 2, FrameSize: 8, AlignedFrameSize: 4, MaxProducers: 1, MaxConsumers: 1},
	}
	for i, cfg := range cases {
		if _, err := NewBuffer(cfg); err == nil {
			t.Fatalf("case %d: expected error, got nil", i)
		}
	}
}

func TestNewBufferAllocatesDistinctSlots(t *testing.T) {
	b := newTestBuffer(t, 3, 128, 1, 1)
	if b.NumFrames() != 3 {
		t.Fatalf("expected 3 frames, got %d", b.NumFrames())
	}
	seen := map[*byte]bool{}
	for i := range b.slots {
		if len(b.slots[i].storage) != 128 {
			t.Fatalf("slot %d: expected 128 bytes, got %d", i, len(b.slots[i].storage))
		}
		p := &b.slots[i].storage[0]
		if seen[p] {
			t.Fatalf("slot %d: storage aliases another slot", i)
		}
		seen[p] = true
	}
}

// Scenario 1: single producer, single consumer, in-order round trip.
func TestSingleProducerSingleConsumerRoundTrip(t *testing.T) {
	b := newTestBuffer(t, 2, 4, 1, 1)
	b.RegisterProducer("P")
	b.RegisterConsumer("C")

	payloads := [][]byte{{1, 1, 1, 1}, {2, 2, 2, 2}, {3, 3, 3, 3}, {4, 4, 4, 4}}
	slotOrder := []int{0, 1, 0, 1}

	for i, want := range payloads {
		slot := slotOrder[i]
		buf, ok := b.WaitForEmpty("P", slot)
		if !ok {
			t.Fatalf("iteration %d: WaitForEmpty returned shutdown", i)
		}
		copy(buf, want)
		b.MarkFull("P", slot)

		got, ok := b.WaitForFull("C", slot)
		if !ok {
			t.Fatalf("iteration %d: WaitForFull returned shutdown", i)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("iteration %d: payload mismatch at byte %d: got %d want %d", i, j, got[j], want[j])
			}
		}
		b.MarkEmpty("C", slot)
	}
}

// Scenario 2: two co-producers must both mark done before the slot is full.
func TestCoProducersBothMustMarkDone(t *testing.T) {
	b := newTestBuffer(t, 4, 4, 2, 1)
	b.RegisterProducer("P1")
	b.RegisterProducer("P2")
	b.RegisterConsumer("C")

	if _, ok := b.WaitForEmpty("P1", 0); !ok {
		t.Fatal("P1 WaitForEmpty failed")
	}
	if _, ok := b.WaitForEmpty("P2", 0); !ok {
		t.Fatal("P2 WaitForEmpty failed")
	}
	b.MarkFull("P1", 0)

	if b.FullCount() != 0 {
		t.Fatalf("slot should not be full until both producers mark done, FullCount=%d", b.FullCount())
	}

	done := make(chan struct{})
	go func() {
		b.WaitForFull("C", 0)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("consumer should still be blocked with only one producer done")
	default:
	}

	b.MarkFull("P2", 0)
	<-done

	if b.FullCount() != 1 {
		t.Fatalf("expected slot 0 full after both producers mark done, FullCount=%d", b.FullCount())
	}
}

// Scenario 3: producer with zero consumers registered never blocks; frames
// are dropped immediately and metadata returns to the pool between frames.
func TestNoConsumersDropsFramesImmediately(t *testing.T) {
	pool := newRingTestMetadataPool(t, 1, 16)
	b, err := NewBuffer(Config{
		Name: "drop", Type: "raw",
		NumFrames: 2, FrameSize: 8,
		MaxProducers: 1, MaxConsumers: 1,
		MetadataPool: pool,
	})
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	defer b.Close()
	b.RegisterProducer("P")

	for i := 0; i < 4; i++ {
		slot := i % 2
		if _, ok := b.WaitForEmpty("P", slot); !ok {
			t.Fatalf("iteration %d: WaitForEmpty returned shutdown", i)
		}
		if err := b.AllocateNewMetadata(slot); err != nil {
			t.Fatalf("iteration %d: AllocateNewMetadata: %v", i, err)
		}
		b.MarkFull("P", slot)

		if !b.IsEmpty(slot) {
			t.Fatalf("iteration %d: slot %d should have been dropped back to empty", i, slot)
		}
		if pool.Available() != pool.Capacity() {
			t.Fatalf("iteration %d: metadata pool did not return to full occupancy: available=%d capacity=%d",
				i, pool.Available(), pool.Capacity())
		}
	}
}

// Scenario 6: shutdown wakes a consumer blocked on an empty buffer.
func TestShutdownWakesBlockedWaiter(t *testing.T) {
	b := newTestBuffer(t, 4, 4, 1, 1)
	b.RegisterConsumer("C")

	done := make(chan bool, 1)
	go func() {
		_, ok := b.WaitForFull("C", 3)
		done <- ok
	}()

	b.SendShutdownSignal()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("expected WaitForFull to report shutdown")
		}
	case <-timeoutChan(t):
		t.Fatal("consumer did not wake up after shutdown signal")
	}
}
