package zero

import (
	"sync"
	"testing"
	"time"
)

func TestWorkerZeroesAndSignals(t *testing.T) {
	w := NewWorker(4)
	defer w.Stop()

	buf := []byte{1, 2, 3, 4}

	var wg sync.WaitGroup
	wg.Add(1)
	w.Submit(Job{
		Data: buf,
		Done: func() { wg.Done() },
	})

	waited := make(chan struct{})
	go func() {
		wg.Wait()
		close(waited)
	}()

	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for zero job to complete")
	}

	for i, b := range buf {
		if b != 0 {
			t.Fatalf("expected byte %d to be zeroed, got %d", i, b)
		}
	}
}

func TestWorkerSubmitAfterStopDoesNotBlock(t *testing.T) {
	w := NewWorker(1)
	w.Stop()
	// Submit after Stop must not block forever.
	done := make(chan struct{})
	go func() {
		w.Submit(Job{Data: nil, Done: func() {}})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after Stop blocked")
	}
}
