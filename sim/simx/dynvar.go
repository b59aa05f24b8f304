package simx

import (
	"math"

	"github.com/robknapen/WISS-Framework/sim/rangecheck"
	"github.com/robknapen/WISS-Framework/sim/unit"
)

// dynVar is one dynamic variable: a (simID, name) pair's storage plus the
// bookkeeping needed to enforce ownership, bounds, and the state-continuity
// invariant. Storage is either dense (values + hasValues, one slot per day
// of the run) or aggregated (running summary only), chosen once at
// creation time: a name opted into SetFullTimeSeries before the run started
// gets dense storage, everything else defaults to aggregated.
type dynVar struct {
	simID      string
	name       string // uppercase
	isState    bool
	nativeUnit unit.ScientificUnit
	bounds     rangecheck.Bounds
	varIndex   int

	aggregated bool
	dead       bool // true once a state has gone missing; never writable again

	values    []float64 // dense storage, length duration+1; unused if aggregated
	hasValues []bool

	agg *aggregation // aggregated storage; nil if dense

	pendingRate      float64
	pendingRateValid bool
}

func newDynVar(simID, name string, isState bool, u unit.ScientificUnit, bounds rangecheck.Bounds, varIndex, duration int, aggregated bool) *dynVar {
	dv := &dynVar{
		simID: simID, name: name, isState: isState,
		nativeUnit: u, bounds: bounds, varIndex: varIndex,
		aggregated: aggregated,
	}
	if aggregated {
		dv.agg = newAggregation()
	} else {
		dv.values = make([]float64, duration+1)
		dv.hasValues = make([]bool, duration+1)
		for i := range dv.values {
			dv.values[i] = math.NaN()
		}
	}
	return dv
}

// hasValueAt reports whether dv carries a non-missing value on dayIndex.
// For aggregated storage only the current day and the immediately
// preceding one are ever queryable this way (spec invariant 5 — the
// aggregation keeps "previous" alongside "last"); callers that need
// deeper history must go through the aggregation accessors instead.
func (dv *dynVar) hasValueAt(dayIndex int) bool {
	if dv.aggregated {
		if dv.agg.count > 0 && dv.agg.lastIndex == dayIndex {
			return true
		}
		return dv.agg.count > 1 && dv.agg.lastIndex-1 == dayIndex
	}
	return dayIndex >= 0 && dayIndex < len(dv.hasValues) && dv.hasValues[dayIndex]
}

// valueAt returns the stored value at dayIndex, or NaN if missing. Only
// valid for dense storage or for an aggregated variable's current or
// immediately preceding day; callers enforce that distinction.
func (dv *dynVar) valueAt(dayIndex int) float64 {
	if dv.aggregated {
		if dv.agg.count > 0 && dv.agg.lastIndex == dayIndex {
			return dv.agg.last
		}
		if dv.agg.count > 0 && dv.agg.lastIndex-1 == dayIndex {
			return dv.agg.previous
		}
		return math.NaN()
	}
	if dayIndex < 0 || dayIndex >= len(dv.values) {
		return math.NaN()
	}
	return dv.values[dayIndex]
}

// setValueAt writes value at dayIndex, updating dense or aggregated
// storage as appropriate.
func (dv *dynVar) setValueAt(dayIndex int, value float64) {
	if dv.aggregated {
		dv.agg.record(value, dayIndex)
		return
	}
	dv.values[dayIndex] = value
	dv.hasValues[dayIndex] = true
}

// lastWrittenIndex returns the most recent day index carrying a value, or
// -1 if the variable has never been written.
func (dv *dynVar) lastWrittenIndex() int {
	if dv.aggregated {
		return dv.agg.lastIndex
	}
	for i := len(dv.hasValues) - 1; i >= 0; i-- {
		if dv.hasValues[i] {
			return i
		}
	}
	return -1
}
