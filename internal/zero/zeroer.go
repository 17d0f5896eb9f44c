// Package zero implements the deferred zero-on-release task queue: a
// single-owner worker that scrubs frame storage to zero off the buffer's
// hot path, so releasing a slot never blocks on clearing its bytes.
//
// The worker runs on its own dedicated OS thread so zero work backs up on
// its own channel instead of stealing scheduler time from producers and
// consumers.
package zero

import "runtime"

// Job is one unit of deferred work: zero data in place, then invoke done.
// done is called after zeroing completes and must not block.
type Job struct {
	Data []byte
	Done func()
}

// Worker drains a bounded channel of zero Jobs on a single dedicated
// goroutine.
type Worker struct {
	jobs chan Job
	quit chan struct{}
	done chan struct{}
}

// NewWorker starts a Worker with the given queue depth.
func NewWorker(queueDepth int) *Worker {
	w := &Worker{
		jobs: make(chan Job, queueDepth),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.done)

	// Pin to one OS thread: zero work should never migrate mid-job and
	// should never be scheduled onto the same M as a latency-sensitive
	// goroutine competing for the same core.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case job := <-w.jobs:
			zeroBytes(job.Data)
			job.Done()
		case <-w.quit:
			return
		}
	}
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Submit enqueues a job. Blocks if the queue is full, providing natural
// backpressure rather than spawning unbounded goroutines under load.
func (w *Worker) Submit(job Job) {
	select {
	case w.jobs <- job:
	case <-w.quit:
	}
}

// Stop signals the worker to exit and waits for the current job (if any) to
// finish. Queued-but-not-yet-run jobs are dropped.
func (w *Worker) Stop() {
	close(w.quit)
	<-w.done
}
