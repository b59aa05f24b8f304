package kernel

import "fmt"

// Violation is a typed, context-carrying error value for contract and state
// violations (spec §7's two taxonomies). The kernel package and the leaf
// packages (parx, simx, rangecheck, unit, calendar) themselves panic with
// plain panic(fmt.Sprintf(...)) strings and do not construct a Violation.
// TimeDriver.Run is the single point that recovers panics raised during a
// run: a panic value that is an error (such as a *Violation) is returned
// as-is, any other value is formatted into an error.
type Violation struct {
	Component string
	Method    string
	SimID     string
	VarName   string
	Date      string
	Detail    string
}

func (v *Violation) Error() string {
	msg := fmt.Sprintf("%s.%s", v.Component, v.Method)
	if v.SimID != "" {
		msg += fmt.Sprintf(" simID=%s", v.SimID)
	}
	if v.VarName != "" {
		msg += fmt.Sprintf(" var=%s", v.VarName)
	}
	if v.Date != "" {
		msg += fmt.Sprintf(" date=%s", v.Date)
	}
	return fmt.Sprintf("%s : %s", msg, v.Detail)
}
