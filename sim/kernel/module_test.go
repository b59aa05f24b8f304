package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robknapen/WISS-Framework/sim/parx"
	"github.com/robknapen/WISS-Framework/sim/simx"
)

func newTestModule(t *testing.T, simID string) *Module {
	t.Helper()
	px := parx.New()
	sx := simx.New("test-run", 1)
	sx.SetDatePeriod(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 10)
	sx.Reset()
	return NewModule(simID, "TestModule", px, sx, 1, 0, "test module", "exercises the lifecycle guards", 0)
}

func TestModule_NewModule_StartsInitialising(t *testing.T) {
	m := newTestModule(t, "A")
	assert.True(t, m.IsInitialising())
}

func TestModule_AuxCalculations_FromInitialising_Succeeds(t *testing.T) {
	m := newTestModule(t, "A")
	m.AuxCalculations()
	assert.True(t, m.IsAuxCalculating())
}

func TestModule_Intervene_FromInitialising_Panics(t *testing.T) {
	m := newTestModule(t, "A")
	defer func() {
		if recover() == nil {
			t.Error("expected panic: Intervene requires AUXCALCULATING or RATECALCULATING")
		}
	}()
	m.Intervene()
}

func TestModule_FullDayCycle_Intervene_Aux_Rate(t *testing.T) {
	m := newTestModule(t, "A")
	m.AuxCalculations() // constructor contract: end INITIALISING with one AuxCalculations call

	m.Intervene()
	assert.True(t, m.IsIntervening())

	m.AuxCalculations()
	assert.True(t, m.IsAuxCalculating())

	m.RateCalculations()
	assert.True(t, m.IsRateCalculating())
}

func TestModule_RateCalculations_RequiresAuxCalculating(t *testing.T) {
	m := newTestModule(t, "A")
	m.AuxCalculations()
	m.Intervene()
	defer func() {
		if recover() == nil {
			t.Error("expected panic: RateCalculations requires AUXCALCULATING, not INTERVENING")
		}
	}()
	m.RateCalculations()
}

func TestModule_Terminate_MovesToTerminated(t *testing.T) {
	m := newTestModule(t, "A")
	m.AuxCalculations()
	m.Terminate()
	assert.Equal(t, Terminated, m.State())
}

func TestModule_Terminate_Twice_Panics(t *testing.T) {
	m := newTestModule(t, "A")
	m.AuxCalculations()
	m.Terminate()
	defer func() {
		if recover() == nil {
			t.Error("expected panic terminating an already-terminated module")
		}
	}()
	m.Terminate()
}

func TestModule_IsSameOrNewerVersion(t *testing.T) {
	m := newTestModule(t, "A")
	m.majorVersion, m.minorVersion = 2, 3
	assert.True(t, m.IsSameOrNewerVersion(2, 3))
	assert.True(t, m.IsSameOrNewerVersion(2, 2))
	assert.True(t, m.IsSameOrNewerVersion(1, 9))
	assert.False(t, m.IsSameOrNewerVersion(2, 4))
	assert.False(t, m.IsSameOrNewerVersion(3, 0))
}

func TestModule_CheckMinimalVersion_BelowMinimum_Panics(t *testing.T) {
	m := newTestModule(t, "A")
	m.majorVersion, m.minorVersion = 1, 0
	defer func() {
		if recover() == nil {
			t.Error("expected panic below the minimal required version")
		}
	}()
	m.CheckMinimalVersion(1, 1, "test caller")
}

func TestModule_NewModule_BlankTitle_Panics(t *testing.T) {
	px := parx.New()
	sx := simx.New("test-run", 1)
	sx.SetDatePeriod(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 10)
	sx.Reset()
	defer func() {
		if recover() == nil {
			t.Error("expected panic constructing a module with a blank title")
		}
	}()
	NewModule("A", "TestModule", px, sx, 1, 0, "  ", "description", 0)
}
