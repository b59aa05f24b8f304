package simx

import (
	"math"

	"github.com/robknapen/WISS-Framework/sim/unit"
)

// StateHandle is a module's declarative wrapper around one owned, integrated
// state variable: immutable identity/unit/bounds, plus mutable V (today's
// value to force or last read), R (pending rate to set), and VP (yesterday's
// value, refreshed by GetSimValueState). The token starts invalid and is
// filled in on the first successful ForceState.
type StateHandle struct {
	SimID string
	Name  string
	Unit  unit.ScientificUnit
	Lower float64
	Upper float64

	V  float64
	R  float64
	VP float64

	token Token
}

// NewStateHandle returns a StateHandle with V/R/VP set to the NaN missing
// sentinel and an invalid token.
func NewStateHandle(simID, name string, u unit.ScientificUnit, lower, upper float64) *StateHandle {
	return &StateHandle{
		SimID: simID, Name: name, Unit: u, Lower: lower, Upper: upper,
		V: math.NaN(), R: math.NaN(), VP: math.NaN(),
		token: InvalidToken,
	}
}

// AuxHandle is a module's declarative wrapper around one owned, recomputed
// auxiliary variable: same identity/unit/bounds as StateHandle, but no rate
// or previous-day value — aux variables are overwritten wholesale each day.
type AuxHandle struct {
	SimID string
	Name  string
	Unit  unit.ScientificUnit
	Lower float64
	Upper float64

	V float64

	token Token
}

// NewAuxHandle returns an AuxHandle with V set to the NaN missing sentinel
// and an invalid token.
func NewAuxHandle(simID, name string, u unit.ScientificUnit, lower, upper float64) *AuxHandle {
	return &AuxHandle{
		SimID: simID, Name: name, Unit: u, Lower: lower, Upper: upper,
		V:     math.NaN(),
		token: InvalidToken,
	}
}

// ExternalHandle is a read-only view of whichever simID is currently the
// active publisher of Name. Its token is re-resolved (not just refreshed)
// whenever the cached publisher stops producing values, and Terminated
// tracks whether that publisher's simID has ended.
type ExternalHandle struct {
	Name   string
	Unit   unit.ScientificUnit
	Caller string

	V          float64
	Terminated bool

	token Token
}

// NewExternalHandle returns an ExternalHandle with V set to the NaN missing
// sentinel and an invalid token.
func NewExternalHandle(name string, u unit.ScientificUnit, caller string) *ExternalHandle {
	return &ExternalHandle{
		Name: name, Unit: u, Caller: caller,
		V:     math.NaN(),
		token: InvalidToken,
	}
}
