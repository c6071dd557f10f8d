package bench

import (
	"sync/atomic"
	"time"
)

// Aggregator accumulates operation outcomes from all workers. It holds two
// independent counters updated with atomic adds on the hot path and drained
// with atomic swaps, so an increment racing a drain lands in exactly one
// window.
type Aggregator struct {
	ops        atomic.Uint64
	durationNs atomic.Int64
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record adds one completed operation and its elapsed wall-clock time.
// Safe for any number of concurrent callers.
func (a *Aggregator) Record(elapsed time.Duration) {
	a.durationNs.Add(int64(elapsed))
	a.ops.Add(1)
}

// Snapshot is an atomically captured and reset view of one reporting window.
type Snapshot struct {
	Ops   uint64
	Total time.Duration
}

// Mean returns the per-operation mean latency, or zero when the window is
// empty.
func (s Snapshot) Mean() time.Duration {
	if s.Ops == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Ops)
}

// Drain swaps both counters to zero and returns the pre-swap values.
// The two swaps are individually atomic; a Record racing a Drain may split
// its count and duration across adjacent windows, but nothing is lost or
// counted twice.
func (a *Aggregator) Drain() Snapshot {
	return Snapshot{
		Ops:   a.ops.Swap(0),
		Total: time.Duration(a.durationNs.Swap(0)),
	}
}
