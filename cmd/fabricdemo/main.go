// Command fabricdemo wires one producer stage and two consumer stages
// (fast and slow) onto a single fabric.Buffer, to exercise the frame
// buffer's core handoff discipline end to end outside of a test binary.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/e7canasta/kotekan-fabric"
)

func main() {
	var (
		numFrames     = flag.Int("frames", 4, "number of slots in the ring")
		frameSize     = flag.Int("frame-size", 4096, "bytes per frame")
		produceEvery  = flag.Duration("produce-interval", 20*time.Millisecond, "time between produced frames")
		fastLatency   = flag.Duration("fast-latency", 5*time.Millisecond, "fast consumer's processing time per frame")
		slowLatency   = flag.Duration("slow-latency", 80*time.Millisecond, "slow consumer's processing time per frame")
		statsInterval = flag.Duration("stats-interval", 2*time.Second, "how often to log buffer status")
		zeroOnRelease = flag.Bool("zero-on-release", false, "scrub frame bytes to zero before recycling")
		debug         = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	printBanner(*numFrames, *frameSize, *zeroOnRelease)

	buf, err := fabric.New(fabric.Config{
		Name: "fabricdemo", Type: "demo",
		NumFrames:     *numFrames,
		FrameSize:     *frameSize,
		MaxProducers:  1,
		MaxConsumers:  2,
		ZeroOnRelease: *zeroOnRelease,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to create buffer", "error", err)
		os.Exit(1)
	}
	defer buf.Close()

	buf.RegisterProducer("capture")
	buf.RegisterConsumer("fast")
	buf.RegisterConsumer("slow")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received, stopping gracefully")
		buf.SendShutdownSignal()
	}()

	var wg sync.WaitGroup
	wg.Add(3)
	go produce(buf, *numFrames, *produceEvery, logger, &wg)
	go consume(buf, "fast", *fastLatency, logger, &wg)
	go consume(buf, "slow", *slowLatency, logger, &wg)

	stop := make(chan struct{})
	go reportStats(buf, *statsInterval, stop)

	wg.Wait()
	close(stop)

	logger.Info("fabricdemo stopped gracefully")
}

func produce(buf *fabric.Buffer, numFrames int, interval time.Duration, logger *slog.Logger, wg *sync.WaitGroup) {
	defer wg.Done()
	var seq uint64
	for {
		slot := int(seq) % numFrames
		data, ok := buf.WaitForEmpty("capture", slot)
		if !ok {
			logger.Debug("capture stopped: buffer shut down")
			return
		}
		for i := range data {
			data[i] = byte(seq)
		}
		buf.MarkFull("capture", slot)
		logger.Debug("frame produced", "seq", seq, "slot", slot)
		seq++
		time.Sleep(interval)
	}
}

func consume(buf *fabric.Buffer, name string, latency time.Duration, logger *slog.Logger, wg *sync.WaitGroup) {
	defer wg.Done()
	slot := 0
	numFrames := buf.NumFrames()
	for {
		data, ok := buf.WaitForFull(name, slot)
		if !ok {
			logger.Debug("consumer stopped: buffer shut down", "consumer", name)
			return
		}
		_ = data
		time.Sleep(latency)
		buf.MarkEmpty(name, slot)
		slot = (slot + 1) % numFrames
	}
}

func reportStats(buf *fabric.Buffer, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			buf.PrintStatus()
		}
	}
}

func printBanner(numFrames, frameSize int, zeroOnRelease bool) {
	fmt.Println("=================================================================")
	fmt.Println("  fabricdemo - kotekan-fabric ring buffer demonstration")
	fmt.Println("=================================================================")
	fmt.Printf("  Frames:          %d\n", numFrames)
	fmt.Printf("  Frame size:      %d bytes\n", frameSize)
	fmt.Printf("  Zero-on-release: %v\n", zeroOnRelease)
	fmt.Println("  Topology:        capture -> [fast consumer, slow consumer]")
	fmt.Println()
	fmt.Println("  Press Ctrl+C to stop gracefully")
	fmt.Println("=================================================================")
	fmt.Println()
}
