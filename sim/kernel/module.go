// Package kernel implements the module lifecycle state machine (C7),
// controllers (C8), the Model orchestrator (C9), and the outer TimeDriver
// loop (C10). Grounded on original_source's core/SimObject.java,
// SimController.java, Model.java, and TimeDriver.java.
package kernel

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/robknapen/WISS-Framework/sim/parx"
	"github.com/robknapen/WISS-Framework/sim/simx"
	"github.com/robknapen/WISS-Framework/sim/trace"
)

// Phase is a module's or the model's position in the per-day lifecycle:
// INITIALISING (construction only) -> INTERVENE -> AUX -> RATE, repeating
// per day, ending in TERMINATING -> TERMINATED.
type Phase int

const (
	Initialising Phase = iota
	Intervening
	AuxCalculating
	RateCalculating
	Terminating
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Initialising:
		return "INITIALISING"
	case Intervening:
		return "INTERVENING"
	case AuxCalculating:
		return "AUXCALCULATING"
	case RateCalculating:
		return "RATECALCULATING"
	case Terminating:
		return "TERMINATING"
	case Terminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Action is one of the three per-day phase actions the driver fans out to
// every running module, plus the CanContinue check.
type Action int

const (
	ActionIntervene Action = iota
	ActionAux
	ActionRate
	ActionCanContinue
)

// ModuleObject is the capability set a scientific module collaborator must
// implement (spec §9's "module capability" re-architecture of the Java
// source's SimObject subclassing). Module provides a base implementation;
// concrete modules embed it and add Intervene/AuxCalculations/
// RateCalculations bodies specific to their science.
type ModuleObject interface {
	SimID() string
	Intervene()
	AuxCalculations()
	RateCalculations()
	CanContinue() bool
	Terminate()
	State() Phase
}

// Module is the reusable base every concrete scientific module embeds. It
// owns the phase guard logic, version metadata, and simID registration;
// concrete types override Intervene/AuxCalculations/RateCalculations (and
// optionally CanContinue) with their own science while still satisfying
// ModuleObject through embedding.
type Module struct {
	simID       string
	className   string
	title       string
	description string

	majorVersion int
	minorVersion int

	parX *parx.ParXChange
	simX *simx.SimXChange

	state        Phase
	traceLogging bool

	Trace *trace.Run // optional; nil is a safe no-op
}

// NewModule validates its arguments and registers simID with simX, leaving
// the module in the INITIALISING phase. The caller's constructor must end
// with exactly one call to AuxCalculations (spec §4.7): NewModule does not
// make that call itself, so concrete modules have a chance to compute
// their initial values first.
func NewModule(simID, className string, parX *parx.ParXChange, simX *simx.SimXChange, majorVersion, minorVersion int, title, description string, startDayIndex int) *Module {
	if parX == nil {
		panic("kernel.NewModule : parX must not be nil")
	}
	if simX == nil {
		panic("kernel.NewModule : simX must not be nil")
	}
	if majorVersion < 0 || minorVersion < 0 {
		panic(fmt.Sprintf("kernel.NewModule : version (%d.%d) must be non-negative", majorVersion, minorVersion))
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		panic("kernel.NewModule : title and description must not be blank")
	}

	m := &Module{
		simID: strings.ToUpper(simID), className: className,
		title: title, description: description,
		majorVersion: majorVersion, minorVersion: minorVersion,
		parX: parX, simX: simX,
		state: Initialising,
	}
	if parX.Contains("TRACELOGGING", parx.TypeBool, false) {
		m.traceLogging = parX.GetBool("TRACELOGGING", "kernel.Module")
	}

	simX.RegisterSimID(m.simID, className, startDayIndex)
	if m.traceLogging {
		logrus.WithFields(logrus.Fields{"simID": m.simID, "class": className}).Trace("kernel: module constructed")
	}
	return m
}

func (m *Module) SimID() string       { return m.simID }
func (m *Module) ClassName() string   { return m.className }
func (m *Module) Title() string       { return m.title }
func (m *Module) Description() string { return m.description }
func (m *Module) State() Phase        { return m.state }

func (m *Module) IsInitialising() bool   { return m.state == Initialising }
func (m *Module) IsIntervening() bool    { return m.state == Intervening }
func (m *Module) IsAuxCalculating() bool { return m.state == AuxCalculating }
func (m *Module) IsRateCalculating() bool { return m.state == RateCalculating }

// IsVersion reports an exact major.minor match.
func (m *Module) IsVersion(major, minor int) bool {
	return m.majorVersion == major && m.minorVersion == minor
}

// IsSameOrNewerVersion reports whether this module is at least major.minor.
func (m *Module) IsSameOrNewerVersion(major, minor int) bool {
	if m.majorVersion != major {
		return m.majorVersion > major
	}
	return m.minorVersion >= minor
}

// CheckMinimalVersion panics if this module is older than major.minor,
// naming caller in the message.
func (m *Module) CheckMinimalVersion(major, minor int, caller string) {
	if !m.IsSameOrNewerVersion(major, minor) {
		panic(fmt.Sprintf("kernel.Module.CheckMinimalVersion : %s requires %s at least version %d.%d, has %d.%d", caller, m.simID, major, minor, m.majorVersion, m.minorVersion))
	}
}

// Intervene transitions INITIALISING-complete/AUXCALCULATING/RATECALCULATING
// -> INTERVENING. Embedding types that override this to add behaviour must
// call ProtectedIntervene first to run the guard.
func (m *Module) Intervene() { m.ProtectedIntervene() }

// ProtectedIntervene runs the phase guard and transition only; exported so
// an embedding module's overriding Intervene can call it before its own
// science.
func (m *Module) ProtectedIntervene() {
	m.guard("Intervene", AuxCalculating, RateCalculating)
	m.state = Intervening
	m.trace("intervene")
}

func (m *Module) AuxCalculations() { m.ProtectedAuxCalculations() }

func (m *Module) ProtectedAuxCalculations() {
	m.guard("AuxCalculations", Initialising, Intervening, AuxCalculating)
	m.state = AuxCalculating
	m.trace("auxCalculations")
}

func (m *Module) RateCalculations() { m.ProtectedRateCalculations() }

func (m *Module) ProtectedRateCalculations() {
	m.guard("RateCalculations", AuxCalculating)
	m.state = RateCalculating
	m.trace("rateCalculations")
}

// CanContinue is the default "keep running" answer; concrete modules
// override it to request self-termination.
func (m *Module) CanContinue() bool { return true }

// Terminate moves the module to TERMINATING then TERMINATED and records its
// end in the dynamic store.
func (m *Module) Terminate() {
	if m.state == Terminated {
		panic(fmt.Sprintf("kernel.Module.Terminate : %s is already terminated", m.simID))
	}
	m.state = Terminating
	m.simX.TerminateSimID(m.simID, false, "")
	m.state = Terminated
	m.trace("terminate")
}

func (m *Module) guard(method string, allowed ...Phase) {
	for _, a := range allowed {
		if m.state == a {
			return
		}
	}
	panic(fmt.Sprintf("kernel.Module.%s : %s cannot run from state %s", method, m.simID, m.state))
}

func (m *Module) trace(event string) {
	if m.traceLogging {
		logrus.WithFields(logrus.Fields{"simID": m.simID, "state": m.state}).Trace("kernel: " + event)
	}
	m.Trace.RecordPhase(trace.PhaseRecord{DayIndex: m.simX.CurDateIndex(), SimID: m.simID, Phase: m.state.String()})
}
