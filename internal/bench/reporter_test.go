package bench

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func testReporter(agg *Aggregator, interval time.Duration) (*Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewReporter(agg, interval)
	r.log = slog.New(slog.NewTextHandler(&buf, nil))
	return r, &buf
}

func TestReporterEmptyWindow(t *testing.T) {
	agg := NewAggregator()
	r, buf := testReporter(agg, time.Second)

	snap := r.Report()
	if snap.Ops != 0 {
		t.Errorf("ops = %d, want 0", snap.Ops)
	}
	out := buf.String()
	if !strings.Contains(out, "no operations completed") {
		t.Errorf("log output %q missing no-activity line", out)
	}
	if strings.Contains(out, "mean_latency") {
		t.Errorf("empty window reported a mean latency: %q", out)
	}
}

func TestReporterComputesMean(t *testing.T) {
	agg := NewAggregator()
	for i := 0; i < 50; i++ {
		agg.Record(10 * time.Millisecond)
	}
	r, buf := testReporter(agg, time.Second)

	snap := r.Report()
	if snap.Ops != 50 {
		t.Errorf("ops = %d, want 50", snap.Ops)
	}
	if snap.Mean() != 10*time.Millisecond {
		t.Errorf("mean = %s, want 10ms", snap.Mean())
	}
	out := buf.String()
	if !strings.Contains(out, "ops=50") {
		t.Errorf("log output %q missing op count", out)
	}
	if !strings.Contains(out, "mean_latency=10ms") {
		t.Errorf("log output %q missing mean latency", out)
	}
}

func TestReporterDrainsWindow(t *testing.T) {
	agg := NewAggregator()
	agg.Record(time.Millisecond)
	r, _ := testReporter(agg, time.Second)

	if snap := r.Report(); snap.Ops != 1 {
		t.Fatalf("first report ops = %d, want 1", snap.Ops)
	}
	if snap := r.Report(); snap.Ops != 0 {
		t.Errorf("second report ops = %d, want 0 (window not drained)", snap.Ops)
	}
}
