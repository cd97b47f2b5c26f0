// Package profiler emits a Chrome trace-format event stream bracketing
// named phases of a run (grammar load, FIRST computation, table generation,
// parse). Each phase is bracketed by Span and the func it returns; load the
// capture in a chrome
// trace viewer to see the phases on a timeline.
package profiler

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

// event is one Chrome trace-format entry: {"pid":1,"ts":µs,"name":...,"ph":"B"|"E"}.
type event struct {
	PID  int     `json:"pid"`
	TS   float64 `json:"ts"`
	Name string  `json:"name"`
	Ph   string  `json:"ph"`
}

// capture is the on-disk shape: an object whose traceEvents array holds
// every Begin/End pair followed by one empty object, the termination the
// chrome trace viewer tolerates from streamed writers.
type capture struct {
	RunID       string        `json:"runId"`
	TraceEvents []interface{} `json:"traceEvents"`
}

// Profiler accumulates Begin/End events relative to a fixed start time and
// writes them as a chrome trace-format capture on WriteTo. Each Profiler is
// tagged with a uuid.New()-derived run id so that repeated profiling
// captures against the same grammar remain distinguishable on disk.
type Profiler struct {
	runID   string
	start   time.Time
	events  []event
	enabled bool
}

// New creates a Profiler. If enabled is false, Span records nothing and
// returns a no-op func, so call sites don't need to branch on whether
// profiling was requested; WriteTo then writes a capture holding only the
// terminating empty object.
func New(enabled bool) *Profiler {
	return &Profiler{
		runID:   uuid.New().String(),
		start:   time.Now(),
		enabled: enabled,
	}
}

// RunID returns the profiler's generated run identifier.
func (p *Profiler) RunID() string { return p.runID }

// Span begins a named phase and returns a func to call when the phase ends,
// e.g. defer p.Span("generate-table")().
func (p *Profiler) Span(name string) func() {
	if p == nil || !p.enabled {
		return func() {}
	}
	p.record(name, "B")
	return func() { p.record(name, "E") }
}

func (p *Profiler) record(name, ph string) {
	elapsed := time.Since(p.start)
	p.events = append(p.events, event{
		PID:  1,
		TS:   float64(elapsed.Microseconds()),
		Name: name,
		Ph:   ph,
	})
}

// WriteTo serializes the accumulated events to w as a JSON object with a
// traceEvents array, terminated by an empty object before the closing
// brackets.
func (p *Profiler) WriteTo(w io.Writer) error {
	if p == nil {
		return nil
	}
	out := capture{RunID: p.runID, TraceEvents: make([]interface{}, 0, len(p.events)+1)}
	for _, e := range p.events {
		out.TraceEvents = append(out.TraceEvents, e)
	}
	out.TraceEvents = append(out.TraceEvents, struct{}{})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
