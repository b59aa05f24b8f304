// Package trace provides phase/lifecycle trace recording for a WISS run,
// gated by the TRACELOGGING well-known ParXChange key. This package has no
// dependencies on sim/kernel or sim/simx — it stores pure data types that
// those packages append to when tracing is enabled.
package trace

// PhaseRecord captures one module's lifecycle phase transition (intervene,
// aux, rate, or terminate), mirroring the LOGGER.trace calls scattered
// through original_source's SimObject.java phase methods.
type PhaseRecord struct {
	DayIndex int
	SimID    string
	Phase    string // phase entered, as kernel.Phase.String(): "INTERVENING", "AUXCALCULATING", "RATECALCULATING", "TERMINATED"
}

// WriteRecord captures one write into the dynamic store (forceState,
// setStateRate, setAux), mirroring SimXChange.java's forceSimValueState /
// setSimValueState / setSimValueAux trace calls.
type WriteRecord struct {
	DayIndex int
	SimID    string
	VarName  string
	Kind     string // "FORCE_STATE", "SET_RATE", "SET_AUX"
	Value    float64
}

// LifecycleRecord captures a simID registration or termination.
type LifecycleRecord struct {
	DayIndex int
	SimID    string
	Event    string // "REGISTERED", "TERMINATED_NORMALLY", "TERMINATED_ERROR"
	Detail   string
}
