package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robknapen/WISS-Framework/sim/parx"
	"github.com/robknapen/WISS-Framework/sim/simx"
	"github.com/robknapen/WISS-Framework/sim/unit"
)

// cropModule is a minimal concrete science module: it owns one integrated
// state (BIOMASS) that grows by a fixed daily rate and terminates itself
// once it crosses a harvest threshold.
type cropModule struct {
	*Module
	biomass   *simx.StateHandle
	threshold float64
}

func newCropModule(px *parx.ParXChange, sx *simx.SimXChange, startDayIndex int) *cropModule {
	m := &cropModule{threshold: 25.0}
	m.Module = NewModule("CROP", "cropModule", px, sx, 1, 0, "crop growth", "grows biomass at a fixed daily rate", startDayIndex)
	m.biomass = simx.NewStateHandle("CROP", "BIOMASS", unit.KG_HA, 0, 1e6)
	m.biomass.V = 10.0
	sx.ForceState(m.biomass)
	m.Module.AuxCalculations()
	return m
}

func (m *cropModule) Intervene() { m.ProtectedIntervene() }

func (m *cropModule) AuxCalculations() {
	m.ProtectedAuxCalculations()
	m.simX.GetSimValueState(m.biomass)
}

func (m *cropModule) RateCalculations() {
	m.ProtectedRateCalculations()
	m.biomass.R = 5.0
	m.simX.SetStateRate(m.biomass)
}

func (m *cropModule) CanContinue() bool {
	return m.biomass.V < m.threshold
}

// harvestController spawns the crop module on the first day of the run and
// never terminates it itself: once the crop's CanContinue says no,
// Model.TestForSimObjectsToTerminate terminates and removes it.
type harvestController struct {
	px   *parx.ParXChange
	sx   *simx.SimXChange
	crop *cropModule
}

func (c *harvestController) TestForSimObjectsToStart(running []ModuleObject) []ModuleObject {
	if c.crop != nil {
		return nil
	}
	c.crop = newCropModule(c.px, c.sx, c.sx.CurDateIndex())
	return []ModuleObject{c.crop}
}

func (c *harvestController) TestForSimObjectsToTerminate(running []ModuleObject) []ModuleObject {
	return nil
}

func buildTestRun(t *testing.T, days int) (*parx.ParXChange, *simx.SimXChange) {
	t.Helper()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days)

	px := parx.New()
	px.Set("STARTDATE", parx.TypeDate, start, unit.DATE, false)
	px.Set("ENDDATE", parx.TypeDate, end, unit.DATE, false)

	sx := simx.New("test-run", 1)
	return px, sx
}

func TestTimeDriver_Run_GrowsBiomassToHarvest(t *testing.T) {
	px, sx := buildTestRun(t, 10)
	model := NewModel("test model", "harvest test", 1, 0)
	ctrl := &harvestController{px: px, sx: sx}
	model.AddController(ctrl)

	td := NewTimeDriver(model, px, sx)

	err := td.Run()
	assert.NoError(t, err)
	crop := ctrl.crop
	assert.Equal(t, Terminated, crop.State())
	assert.GreaterOrEqual(t, crop.biomass.V, crop.threshold)
}

func TestTimeDriver_NewTimeDriver_MissingStartDate_Panics(t *testing.T) {
	px := parx.New()
	sx := simx.New("test-run", 1)
	model := NewModel("test model", "x", 1, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic: STARTDATE is required")
		}
	}()
	NewTimeDriver(model, px, sx)
}

// badModule panics in Intervene to exercise TimeDriver.Run's recover point.
type badModule struct {
	*Module
}

func newBadModule(px *parx.ParXChange, sx *simx.SimXChange, startDayIndex int) *badModule {
	m := &badModule{}
	m.Module = NewModule("BAD", "badModule", px, sx, 1, 0, "bad module", "panics on intervene", startDayIndex)
	m.Module.AuxCalculations()
	return m
}

func (m *badModule) Intervene() {
	panic("kernel test: deliberate failure in Intervene")
}

func TestTimeDriver_Run_RecoversModulePanicIntoError(t *testing.T) {
	px, sx := buildTestRun(t, 5)
	model := NewModel("test model", "panicking test", 1, 0)
	td := NewTimeDriver(model, px, sx)

	bad := newBadModule(px, sx, 0)
	model.modules = append(model.modules, bad)

	err := td.Run()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
}
