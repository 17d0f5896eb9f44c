// Package fabric provides the frame-buffer synchronization core for a
// real-time signal-processing pipeline.
//
// # Overview
//
// A Buffer is a fixed-capacity ring of N frame slots shared between one or
// more producer stages and one or more consumer stages, each identified by
// name. Producers and consumers acquire slots with blocking wait calls,
// fill or drain them, and release them with mark calls; the buffer's own
// lock and condition variables handle all the handoff bookkeeping. Frame
// storage is never copied on the hot path: adjacent stages exchange raw
// pointers via the operators in ops.go, and a stage that owns a slot has
// exclusive access to its bytes between acquiring and releasing it.
//
// The core philosophy, carried over unchanged from the C implementation
// this package replaces: "no consumer, no wait" - a producer never blocks
// on an absent consumer. If no consumer is registered when a frame
// completes, the frame is dropped immediately and its slot recycled. A
// registered consumer that is slow does hold its slots: WaitForEmpty blocks
// until every registered consumer has released the slot.
//
// # Basic Usage
//
//	pool := fabric.NewMetadataPool("headers", 32, 256)
//	buf, err := fabric.New(fabric.Config{
//	    Name: "vdif-in", Type: "vdif",
//	    NumFrames: 4, FrameSize: 1 << 20,
//	    MaxProducers: 1, MaxConsumers: 2,
//	    MetadataPool: pool,
//	})
//
//	buf.RegisterProducer("capture")
//	buf.RegisterConsumer("channelizer")
//
//	data, ok := buf.WaitForEmpty("capture", 0)
//	// ... fill data ...
//	buf.MarkFull("capture", 0)
//
//	data, ok = buf.WaitForFull("channelizer", 0)
//	// ... read data ...
//	buf.MarkEmpty("channelizer", 0)
//
// # Shutdown
//
// buf.SendShutdownSignal() wakes every current and future blocked waiter;
// they return ok=false instead of blocking forever. Call it once, from
// whichever goroutine owns pipeline teardown.
//
// # Thread Safety
//
// Every exported Buffer method is safe for concurrent use by multiple
// producer and consumer goroutines. Frame *contents* follow a handoff
// discipline rather than being lock-protected: only the goroutine currently
// holding a slot (between its wait and its mark call) may touch its bytes.
//
// # Non-goals
//
// This package does not parse configuration, read files, or open network
// sockets. It receives fully-resolved Config values from a surrounding
// pipeline builder and is otherwise self-contained, which is also what
// makes it safe to construct many independent instances in the same
// process for testing.
package fabric
