package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilRun_RecordMethodsAreNoOps(t *testing.T) {
	var r *Run
	assert.NotPanics(t, func() {
		r.RecordPhase(PhaseRecord{DayIndex: 0, SimID: "A", Phase: "AUX"})
		r.RecordWrite(WriteRecord{DayIndex: 0, SimID: "A", VarName: "X", Kind: "SET_AUX", Value: 1})
		r.RecordLifecycle(LifecycleRecord{DayIndex: 0, SimID: "A", Event: "REGISTERED"})
	})
}

func TestRun_RecordPhase_Accumulates(t *testing.T) {
	r := New()
	r.RecordPhase(PhaseRecord{DayIndex: 0, SimID: "A", Phase: "INTERVENE"})
	r.RecordPhase(PhaseRecord{DayIndex: 0, SimID: "A", Phase: "AUX"})
	assert.Len(t, r.Phases, 2)
	assert.Equal(t, "INTERVENE", r.Phases[0].Phase)
	assert.Equal(t, "AUX", r.Phases[1].Phase)
}

func TestRun_RecordWrite_Accumulates(t *testing.T) {
	r := New()
	r.RecordWrite(WriteRecord{DayIndex: 3, SimID: "CROP", VarName: "BIOMASS", Kind: "FORCE_STATE", Value: 10})
	assert.Len(t, r.Writes, 1)
	assert.Equal(t, "BIOMASS", r.Writes[0].VarName)
	assert.Equal(t, 10.0, r.Writes[0].Value)
}

func TestRun_RecordLifecycle_Accumulates(t *testing.T) {
	r := New()
	r.RecordLifecycle(LifecycleRecord{DayIndex: 0, SimID: "A", Event: "REGISTERED"})
	r.RecordLifecycle(LifecycleRecord{DayIndex: 9, SimID: "A", Event: "TERMINATED_NORMALLY"})
	assert.Len(t, r.Lifecycle, 2)
	assert.Equal(t, "REGISTERED", r.Lifecycle[0].Event)
	assert.Equal(t, "TERMINATED_NORMALLY", r.Lifecycle[1].Event)
}

func TestNew_ReturnsEmptyRun(t *testing.T) {
	r := New()
	assert.Empty(t, r.Phases)
	assert.Empty(t, r.Writes)
	assert.Empty(t, r.Lifecycle)
}
