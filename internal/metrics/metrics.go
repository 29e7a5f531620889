package metrics

import (
	"sync"
	"time"
)

type monitorStats struct {
	cycles           int
	errors           int
	transitions      map[string]int
	lastCycleLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about monitor cycles and
// detected transitions. It mirrors everything into OpenTelemetry instruments
// when telemetry is enabled.
type Recorder struct {
	mu                  sync.Mutex
	stats               monitorStats
	persistenceFailures int
	otel                *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: monitorStats{transitions: make(map[string]int)},
		otel:  otel,
	}
}

// RecordMonitorCycle tracks one detection cycle and its outcome.
func (r *Recorder) RecordMonitorCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.cycles++
	r.stats.lastCycleLatency = duration
	if err != nil {
		r.stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordMonitorCycle(duration, err)
	}
}

// RecordTransition counts one emitted transition event by sport and kind.
func (r *Recorder) RecordTransition(sport, kind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.transitions[kind]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordTransition(sport, kind)
	}
}

// RecordSinkFailure counts a failed alert sink dispatch.
func (r *Recorder) RecordSinkFailure(sink string) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordSinkFailure(sink)
}

// RecordPersistenceFailure counts a failed season table write.
func (r *Recorder) RecordPersistenceFailure() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.persistenceFailures++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPersistenceFailure()
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// MonitorCycles returns the total detection cycles recorded.
func (r *Recorder) MonitorCycles() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.cycles
}

// MonitorErrors returns the total failed detection cycles recorded.
func (r *Recorder) MonitorErrors() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.errors
}

// Transitions returns the count of emitted events for a transition kind.
func (r *Recorder) Transitions(kind string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.transitions[kind]
}

// PersistenceFailures returns the number of failed table writes recorded.
func (r *Recorder) PersistenceFailures() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persistenceFailures
}
