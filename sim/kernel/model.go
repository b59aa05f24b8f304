package kernel

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Model holds the running controllers and modules for one simulation and
// fans out each day's phase actions to them in registration order (spec
// §9's ordering guarantee — it decides which publisher wins a name race).
// Grounded on original_source's core/Model.java.
type Model struct {
	title, description         string
	majorVersion, minorVersion int

	state Phase

	controllers []Controller
	modules     []ModuleObject

	startedCount int
}

// NewModel validates metadata and returns a Model with no controllers or
// modules registered yet.
func NewModel(title, description string, majorVersion, minorVersion int) *Model {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		panic("kernel.NewModel : title and description must not be blank")
	}
	if majorVersion < 0 || minorVersion < 0 {
		panic(fmt.Sprintf("kernel.NewModel : version (%d.%d) must be non-negative", majorVersion, minorVersion))
	}
	return &Model{
		title: title, description: description,
		majorVersion: majorVersion, minorVersion: minorVersion,
		state: Initialising,
	}
}

func (m *Model) Title() string       { return m.title }
func (m *Model) Description() string { return m.description }
func (m *Model) State() Phase        { return m.state }

// AddController registers a controller, fanned out to in registration
// order alongside every other controller.
func (m *Model) AddController(c Controller) {
	m.controllers = append(m.controllers, c)
}

// RunningModules returns the current running list. Callers must not retain
// the slice across a call that might mutate it (TestForSimObjectsToStart,
// TestForSimObjectsToTerminate).
func (m *Model) RunningModules() []ModuleObject {
	return m.modules
}

// DoModelAction enforces the model's own phase machine (INIT -> INTERVENE ->
// AUX -> RATE, spec 4.9 — unlike a Module, the model has no constructor-time
// AUX call, so INTERVENE is legal straight out of INITIALISING) then fans
// action out to every running module in order.
func (m *Model) DoModelAction(action Action) {
	switch action {
	case ActionIntervene:
		m.guard("DoModelAction(INTERVENE)", Initialising, AuxCalculating, RateCalculating)
		m.state = Intervening
	case ActionAux:
		m.guard("DoModelAction(AUX)", Initialising, Intervening, AuxCalculating)
		m.state = AuxCalculating
	case ActionRate:
		m.guard("DoModelAction(RATE)", AuxCalculating)
		m.state = RateCalculating
	default:
		panic(fmt.Sprintf("kernel.Model.DoModelAction : unsupported action %d", action))
	}

	for _, mod := range m.modules {
		switch action {
		case ActionIntervene:
			mod.Intervene()
		case ActionAux:
			mod.AuxCalculations()
		case ActionRate:
			mod.RateCalculations()
		}
	}
}

func (m *Model) guard(method string, allowed ...Phase) {
	for _, a := range allowed {
		if m.state == a {
			return
		}
	}
	panic(fmt.Sprintf("kernel.Model.%s : model cannot run from state %s", method, m.state))
}

// TestForSimObjectsToStart asks every controller in order whether it wants
// to start new modules, appends any it returns to the running list, and
// returns the count started this round.
func (m *Model) TestForSimObjectsToStart() int {
	started := 0
	for _, c := range m.controllers {
		before := len(m.modules)
		newMods := c.TestForSimObjectsToStart(m.modules)
		m.modules = append(m.modules, newMods...)
		delta := len(m.modules) - before
		started += delta
	}
	m.startedCount += started
	return started
}

// TestForSimObjectsToTerminate asks every controller for modules to
// terminate (asserting each really reached Terminated), removes them from
// the running list, then asks every remaining module CanContinue and
// removes (terminating) those that answer false.
func (m *Model) TestForSimObjectsToTerminate() {
	for _, c := range m.controllers {
		terminated := c.TestForSimObjectsToTerminate(m.modules)
		for _, t := range terminated {
			if t.State() != Terminated {
				panic(fmt.Sprintf("kernel.Model.TestForSimObjectsToTerminate : controller claimed to terminate %s but it is in state %s", t.SimID(), t.State()))
			}
			m.removeModule(t.SimID())
		}
	}

	var toRemove []string
	for _, mod := range m.modules {
		if !mod.CanContinue() {
			mod.Terminate()
			toRemove = append(toRemove, mod.SimID())
		}
	}
	for _, simID := range toRemove {
		m.removeModule(simID)
	}
}

func (m *Model) removeModule(simID string) {
	out := m.modules[:0]
	for _, mod := range m.modules {
		if mod.SimID() != simID {
			out = append(out, mod)
		}
	}
	m.modules = out
}

// TestForTerminateByModel reports whether the model has ever started a
// module and now has none running — the model, not the timer, decided the
// run is over.
func (m *Model) TestForTerminateByModel() bool {
	return m.startedCount >= 1 && len(m.modules) == 0
}

// SimObjectsTerminate terminates every remaining running module in reverse
// registration order, matching teardown order to the reverse of startup
// order.
func (m *Model) SimObjectsTerminate() {
	for i := len(m.modules) - 1; i >= 0; i-- {
		mod := m.modules[i]
		if mod.State() != Terminated {
			mod.Terminate()
		}
		logrus.WithField("simID", mod.SimID()).Debug("kernel: module terminated at run end")
	}
	m.modules = nil
}
