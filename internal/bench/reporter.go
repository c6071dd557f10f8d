package bench

import (
	"log/slog"
	"time"
)

// Reporter drains the aggregator once per sample window and logs the
// result.
type Reporter struct {
	agg      *Aggregator
	interval time.Duration
	log      *slog.Logger
}

// NewReporter creates a Reporter over agg for windows of the given length.
func NewReporter(agg *Aggregator, interval time.Duration) *Reporter {
	return &Reporter{agg: agg, interval: interval, log: slog.Default()}
}

// Report drains the aggregator and logs one line for the just-completed
// window. An empty window is reported as no activity without computing a
// mean.
func (r *Reporter) Report() Snapshot {
	snap := r.agg.Drain()
	if snap.Ops == 0 {
		r.log.Info("no operations completed", "window", r.interval)
		return snap
	}
	r.log.Info("window complete",
		"ops", snap.Ops,
		"window", r.interval,
		"mean_latency", snap.Mean(),
		"ops_per_sec", float64(snap.Ops)/r.interval.Seconds(),
	)
	return snap
}
