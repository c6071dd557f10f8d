package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/user/primbench/pkg/client"
)

// Run seeds the workload and drives it with cfg.Concurrency workers until
// ctx is cancelled or an interrupt/termination signal arrives, logging one
// throughput report per sample window. It returns an error only for
// configuration or seeding failures; once workers are running it blocks
// until shutdown and returns nil.
//
// Workers are not joined on shutdown: they are abandoned and reclaimed by
// process exit. That is fine for a bounded-lifetime benchmark run; if this
// harness is ever embedded in a long-running service, the workers need a
// managed pool with a drain phase instead.
func Run(ctx context.Context, w Workload, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("starting benchmark",
		"concurrency", cfg.Concurrency,
		"write_ratio", cfg.WriteRatio,
		"sample_interval", cfg.SampleInterval,
		"num_keys", cfg.NumKeys,
	)

	seedStart := time.Now()
	if err := w.Seed(ctx); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	slog.Info("seeding complete", "elapsed", time.Since(seedStart).Round(time.Millisecond))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	agg := NewAggregator()
	threshold := writeThreshold(cfg.WriteRatio)
	for i := 0; i < cfg.Concurrency; i++ {
		go worker(ctx, w, agg, threshold)
	}

	reporter := NewReporter(agg, cfg.SampleInterval)
	ticker := time.NewTicker(cfg.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			reporter.Report()
		case <-ctx.Done():
			slog.Info("benchmark stopped")
			return nil
		}
	}
}

// writeThreshold converts a write ratio in [0,1] to a cutoff for draws in
// [0,100): draws below the threshold are write-class.
func writeThreshold(ratio float64) int {
	return int(ratio * 100)
}

// worker issues operations in an unbounded loop. Every operation is timed
// and recorded whether it succeeds or fails; expected errors are swallowed,
// anything else is logged and the loop continues.
func worker(ctx context.Context, w Workload, agg *Aggregator, threshold int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()
		n := rand.IntN(100)
		var err error
		if n < threshold {
			err = w.Write(ctx, n)
		} else {
			err = w.Read(ctx)
		}
		agg.Record(time.Since(start))

		if isUnexpected(err) {
			slog.Warn("operation failed", "error", err)
		}
	}
}

// isUnexpected reports whether an operation error should be surfaced.
// NotFound is a normal outcome when a previously removed key or element is
// targeted, and cancellation errors at shutdown are noise.
func isUnexpected(err error) bool {
	if err == nil {
		return false
	}
	if client.IsNotFound(err) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
