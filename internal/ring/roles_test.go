package ring

import "testing"

func TestRegisterDuplicateProducerPanics(t *testing.T) {
	b := newTestBuffer(t, 1, 4, 2, 1)
	b.RegisterProducer("P")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate producer registration")
		}
	}()
	b.RegisterProducer("P")
}

func TestRegisterProducerTableExhaustedPanics(t *testing.T) {
	b := newTestBuffer(t, 1, 4, 1, 1)
	b.RegisterProducer("P1")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on producer table exhaustion")
		}
	}()
	b.RegisterProducer("P2")
}

func TestUnregisterUnknownProducerIsNoop(t *testing.T) {
	b := newTestBuffer(t, 1, 4, 1, 1)
	b.UnregisterProducer("ghost") // must not panic
}

// Boundary: unregistering the last consumer of a full slot transitions it
// to empty and wakes producers.
func TestUnregisterLastConsumerReleasesFullSlot(t *testing.T) {
	b := newTestBuffer(t, 1, 4, 1, 1)
	b.RegisterProducer("P")
	b.RegisterConsumer("C")

	if _, ok := b.WaitForEmpty("P", 0); !ok {
		t.Fatal("WaitForEmpty failed")
	}
	b.MarkFull("P", 0)
	if b.FullCount() != 1 {
		t.Fatal("slot should be full")
	}

	done := make(chan bool, 1)
	go func() {
		_, ok := b.WaitForEmpty("P", 0)
		done <- ok
	}()

	b.UnregisterConsumer("C")

	select {
	case ok := <-done:
		if !ok {
			t.Fatal("producer should have woken with a valid slot, not shutdown")
		}
	case <-timeoutChan(t):
		t.Fatal("producer never woke after last consumer unregistered")
	}
	if !b.IsEmpty(0) {
		t.Fatal("slot should be empty after last consumer unregistered")
	}
}

func TestMarkFullUnknownProducerPanics(t *testing.T) {
	b := newTestBuffer(t, 1, 4, 1, 1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unregistered producer")
		}
	}()
	b.MarkFull("nope", 0)
}

// A co-producer marking the same slot done twice before its peer has caught
// up is a stage bug: the done bit isn't reset until every producer has
// marked done and the slot transitions to full.
func TestDoubleMarkFullBeforeTransitionPanics(t *testing.T) {
	b := newTestBuffer(t, 1, 4, 2, 1)
	b.RegisterProducer("P1")
	b.RegisterProducer("P2")
	b.WaitForEmpty("P1", 0)
	b.MarkFull("P1", 0)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double mark_full before transition")
		}
	}()
	b.MarkFull("P1", 0)
}
