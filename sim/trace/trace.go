package trace

// Enabled is a flag type mirroring the TRACELOGGING well-known ParXChange
// key (kernel.KeyTraceLogging). Run does not consult it: a non-nil *Run
// always records, and TimeDriver.Run installs one only when TRACELOGGING
// is set.
type Enabled bool

// Run collects the phase, write, and lifecycle records accumulated across
// one simulation run. A nil *Run is valid and every Record* method on it is
// a no-op, so kernel/simx code can unconditionally call through a possibly
// absent trace without branching on whether tracing is on.
type Run struct {
	Phases    []PhaseRecord
	Writes    []WriteRecord
	Lifecycle []LifecycleRecord
}

// New returns an empty Run ready for recording.
func New() *Run {
	return &Run{}
}

func (r *Run) RecordPhase(rec PhaseRecord) {
	if r == nil {
		return
	}
	r.Phases = append(r.Phases, rec)
}

func (r *Run) RecordWrite(rec WriteRecord) {
	if r == nil {
		return
	}
	r.Writes = append(r.Writes, rec)
}

func (r *Run) RecordLifecycle(rec LifecycleRecord) {
	if r == nil {
		return
	}
	r.Lifecycle = append(r.Lifecycle, rec)
}
