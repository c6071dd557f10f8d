package server

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
)

// OpsTracker counts operations served by the backend, split into read and
// write classes plus NotFound responses. Counters are monotonic for the
// lifetime of the process.
type OpsTracker struct {
	reads    atomic.Uint64
	writes   atomic.Uint64
	notFound atomic.Uint64
}

// NewOpsTracker creates a new tracker.
func NewOpsTracker() *OpsTracker {
	return &OpsTracker{}
}

func (t *OpsTracker) IncRead()     { t.reads.Add(1) }
func (t *OpsTracker) IncWrite()    { t.writes.Add(1) }
func (t *OpsTracker) IncNotFound() { t.notFound.Add(1) }

// Totals returns the current counter values.
func (t *OpsTracker) Totals() (reads, writes, notFound uint64) {
	return t.reads.Load(), t.writes.Load(), t.notFound.Load()
}

func (s *Server) handlePrometheusMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	reads, writes, notFound := s.ops.Totals()
	fmt.Fprintln(w, "# HELP primbench_backend_reads_total Read-class operations served.")
	fmt.Fprintln(w, "# TYPE primbench_backend_reads_total counter")
	fmt.Fprintf(w, "primbench_backend_reads_total %d\n", reads)
	fmt.Fprintln(w, "# HELP primbench_backend_writes_total Write-class operations served.")
	fmt.Fprintln(w, "# TYPE primbench_backend_writes_total counter")
	fmt.Fprintf(w, "primbench_backend_writes_total %d\n", writes)
	fmt.Fprintln(w, "# HELP primbench_backend_not_found_total Operations that targeted an absent key or element.")
	fmt.Fprintln(w, "# TYPE primbench_backend_not_found_total counter")
	fmt.Fprintf(w, "primbench_backend_not_found_total %d\n", notFound)

	fmt.Fprintln(w, "# HELP primbench_backend_goroutines Current goroutine count.")
	fmt.Fprintln(w, "# TYPE primbench_backend_goroutines gauge")
	fmt.Fprintf(w, "primbench_backend_goroutines %d\n", runtime.NumGoroutine())
}
