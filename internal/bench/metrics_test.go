package bench

import (
	"sync"
	"testing"
	"time"
)

func TestAggregatorRecordAndDrain(t *testing.T) {
	agg := NewAggregator()
	agg.Record(10 * time.Millisecond)
	agg.Record(20 * time.Millisecond)

	snap := agg.Drain()
	if snap.Ops != 2 {
		t.Errorf("ops = %d, want 2", snap.Ops)
	}
	if snap.Total != 30*time.Millisecond {
		t.Errorf("total = %s, want 30ms", snap.Total)
	}

	snap = agg.Drain()
	if snap.Ops != 0 || snap.Total != 0 {
		t.Errorf("second drain = %+v, want zero", snap)
	}
}

func TestAggregatorConservationUnderConcurrency(t *testing.T) {
	agg := NewAggregator()
	const contributors = 16
	const perContributor = 5000
	const opDuration = time.Microsecond

	var wg sync.WaitGroup
	done := make(chan struct{})

	// Drain at arbitrary times while contributors are still recording.
	var snapsMu sync.Mutex
	var snaps []Snapshot
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			s := agg.Drain()
			snapsMu.Lock()
			snaps = append(snaps, s)
			snapsMu.Unlock()
		}
	}()

	var contribWG sync.WaitGroup
	for i := 0; i < contributors; i++ {
		contribWG.Add(1)
		go func() {
			defer contribWG.Done()
			for j := 0; j < perContributor; j++ {
				agg.Record(opDuration)
			}
		}()
	}
	contribWG.Wait()
	close(done)
	wg.Wait()

	// Sum of all snapshots plus whatever is still pending must equal the
	// total contributions exactly.
	final := agg.Drain()
	var totalOps uint64 = final.Ops
	var totalDur time.Duration = final.Total
	for _, s := range snaps {
		totalOps += s.Ops
		totalDur += s.Total
	}

	const wantOps = contributors * perContributor
	if totalOps != wantOps {
		t.Errorf("total ops = %d, want %d", totalOps, wantOps)
	}
	if totalDur != wantOps*opDuration {
		t.Errorf("total duration = %s, want %s", totalDur, wantOps*opDuration)
	}
}

func TestSnapshotMean(t *testing.T) {
	snap := Snapshot{Ops: 50, Total: 500 * time.Millisecond}
	if got := snap.Mean(); got != 10*time.Millisecond {
		t.Errorf("mean = %s, want 10ms", got)
	}

	empty := Snapshot{}
	if got := empty.Mean(); got != 0 {
		t.Errorf("empty mean = %s, want 0", got)
	}
}
