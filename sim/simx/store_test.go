package simx

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robknapen/WISS-Framework/sim/unit"
)

func d(y, m, day int) time.Time { return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC) }

func newRunningStore(t *testing.T, duration int) *SimXChange {
	t.Helper()
	sx := New("test-run", 42)
	sx.SetDatePeriod(d(2020, 1, 1), duration)
	sx.Reset()
	return sx
}

// scenario 1: two-day integration of a state via ForceState + SetStateRate + UpdateToDate.
func TestSimXChange_TwoDayIntegration(t *testing.T) {
	sx := newRunningStore(t, 5)
	sx.RegisterSimID("SOIL", "SoilModule", 0)

	h := NewStateHandle("SOIL", "MOISTURE", unit.MM, 0, 1000)
	h.V = 50.0
	sx.ForceState(h)

	h.R = 5.0
	sx.SetStateRate(h)

	sx.UpdateToDate(d(2020, 1, 2))

	sx.GetSimValueState(h)
	assert.Equal(t, 55.0, h.V)
	assert.Equal(t, 50.0, h.VP)
}

// scenario 2: ownership locking. A second active publisher of the same name
// is rejected; once the first owner terminates, a new one may take over and
// the old dynVar becomes permanently locked.
func TestSimXChange_Locking_RejectsSecondActivePublisher(t *testing.T) {
	sx := newRunningStore(t, 5)
	sx.RegisterSimID("A", "ModuleA", 0)
	sx.RegisterSimID("B", "ModuleB", 0)

	h1 := NewStateHandle("A", "YIELD", unit.KG_HA, 0, 1e6)
	h1.V = 100.0
	sx.ForceState(h1)

	h2 := NewStateHandle("B", "YIELD", unit.KG_HA, 0, 1e6)
	h2.V = 200.0
	defer func() {
		if recover() == nil {
			t.Error("expected panic: B cannot publish YIELD while A is the active owner")
		}
	}()
	sx.ForceState(h2)
}

func TestSimXChange_Locking_TakeoverAfterTermination(t *testing.T) {
	sx := newRunningStore(t, 5)
	sx.RegisterSimID("A", "ModuleA", 0)
	sx.RegisterSimID("B", "ModuleB", 0)

	h1 := NewStateHandle("A", "YIELD", unit.KG_HA, 0, 1e6)
	h1.V = 100.0
	sx.ForceState(h1)

	sx.TerminateSimID("A", false, "done")

	h2 := NewStateHandle("B", "YIELD", unit.KG_HA, 0, 1e6)
	h2.V = 200.0
	sx.ForceState(h2) // should succeed: A is no longer active

	h2.Unit = unit.KG_HA
	sx.GetSimValueState(h2)
	assert.Equal(t, 200.0, h2.V)
}

// scenario 3: missing-value propagation. A state with no pending rate goes
// dead on the next UpdateToDate and can never be written again.
func TestSimXChange_MissingPropagation_StateGoesDeadWithoutRate(t *testing.T) {
	sx := newRunningStore(t, 5)
	sx.RegisterSimID("A", "ModuleA", 0)

	h := NewStateHandle("A", "TEMP", unit.CELSIUS, -50, 50)
	h.V = 10.0
	sx.ForceState(h)
	// no SetStateRate call today

	sx.UpdateToDate(d(2020, 1, 2))

	sx.GetSimValueState(h)
	assert.True(t, math.IsNaN(h.V), "expected h.V to be NaN after the state went missing")

	h2 := NewStateHandle("A", "TEMP", unit.CELSIUS, -50, 50)
	h2.V = 12.0
	defer func() {
		if recover() == nil {
			t.Error("expected panic resurrecting a dead state")
		}
	}()
	sx.ForceState(h2)
}

// scenario 4: aggregated vs dense equivalence for min/max/sum/average.
func TestSimXChange_AggregatedVsDense_Equivalence(t *testing.T) {
	dense := New("dense-run", 42)
	dense.SetFullTimeSeries("RAIN") // full per-day history for RAIN
	dense.SetDatePeriod(d(2020, 1, 1), 10)
	dense.Reset()
	dense.RegisterSimID("A", "ModuleA", 0)

	// aggStore never calls SetFullTimeSeries("RAIN"), so RAIN defaults to
	// aggregated (memory-lean) storage here, unlike dense's full history.
	aggStore := New("agg-run", 42)
	aggStore.SetDatePeriod(d(2020, 1, 1), 10)
	aggStore.Reset()
	aggStore.RegisterSimID("A", "ModuleA", 0)

	values := []float64{1.0, 5.0, 3.0, 5.0, 0.5}
	for i, v := range values {
		hd := NewAuxHandle("A", "RAIN", unit.MM, 0, 1000)
		hd.V = v
		dense.SetAux(hd)

		ha := NewAuxHandle("A", "RAIN", unit.MM, 0, 1000)
		ha.V = v
		aggStore.SetAux(ha)

		if i < len(values)-1 {
			dense.UpdateToDate(dense.dateForIndex(dense.curDateIndex + 1))
			aggStore.UpdateToDate(aggStore.dateForIndex(aggStore.curDateIndex + 1))
		}
	}

	for _, kind := range []AggregationY{AggFirst, AggLast, AggMin, AggMax, AggSum, AggAverage, AggCount} {
		denseV := dense.GetValueAgg("A", "RAIN", "test", unit.MM, kind)
		aggV := aggStore.GetValueAgg("A", "RAIN", "test", unit.MM, kind)
		assert.InDelta(t, denseV, aggV, 1e-9, "mismatch for %s", kind)
	}
}

// scenario 5: crossing detection.
func TestSimXChange_GetDatesCrossing_Upward(t *testing.T) {
	sx := New("test-run", 42)
	sx.SetFullTimeSeries("LEVEL") // crossing detection needs dense per-day history
	sx.SetDatePeriod(d(2020, 1, 1), 5)
	sx.Reset()
	sx.RegisterSimID("A", "ModuleA", 0)

	values := []float64{5, 8, 12, 9, 15}
	for i, v := range values {
		h := NewAuxHandle("A", "LEVEL", unit.NODIM, -1e6, 1e6)
		h.V = v
		sx.SetAux(h)
		if i < len(values)-1 {
			sx.UpdateToDate(sx.dateForIndex(sx.curDateIndex + 1))
		}
	}

	dates := sx.GetDatesCrossing("A", "LEVEL", "test", unit.NODIM, 10.0, true)
	assert.Len(t, dates, 2) // day1->2 (8->12) and day3->4 (9->15)
}

func TestSimXChange_SetAux_SkippedDay_Panics(t *testing.T) {
	sx := newRunningStore(t, 5)
	sx.RegisterSimID("A", "ModuleA", 0)

	h := NewAuxHandle("A", "X", unit.NODIM, -1e6, 1e6)
	h.V = 1.0
	sx.SetAux(h)

	sx.UpdateToDate(sx.dateForIndex(1))
	sx.UpdateToDate(sx.dateForIndex(2)) // skip writing on day 1

	h2 := NewAuxHandle("A", "X", unit.NODIM, -1e6, 1e6)
	h2.V = 2.0
	defer func() {
		if recover() == nil {
			t.Error("expected panic writing an aux variable after skipping a day")
		}
	}()
	sx.SetAux(h2)
}

func TestSimXChange_ForceState_OutOfBounds_Panics(t *testing.T) {
	sx := newRunningStore(t, 5)
	sx.RegisterSimID("A", "ModuleA", 0)

	h := NewStateHandle("A", "PH", unit.NODIM, 0, 14)
	h.V = 20.0
	defer func() {
		if recover() == nil {
			t.Error("expected panic forcing a state out of its declared bounds")
		}
	}()
	sx.ForceState(h)
}

func TestSimXChange_GetInterpolatorBySimIDVarName_ExtractsDenseHistory(t *testing.T) {
	sx := New("test-run", 42)
	sx.SetFullTimeSeries("X") // interpolator extraction needs dense per-day history
	sx.SetDatePeriod(d(2020, 1, 1), 5)
	sx.Reset()
	sx.RegisterSimID("A", "ModuleA", 0)

	for i, v := range []float64{1, 2, 3} {
		h := NewAuxHandle("A", "X", unit.NODIM, -1e6, 1e6)
		h.V = v
		sx.SetAux(h)
		if i < 2 {
			sx.UpdateToDate(sx.dateForIndex(sx.curDateIndex + 1))
		}
	}

	ip := sx.GetInterpolatorBySimIDVarName("A", "X", "test", unit.DAYS, unit.NODIM, false)
	assert.Equal(t, 3, ip.Count())
	assert.Equal(t, 2.0, ip.Interpolate(1))
}
