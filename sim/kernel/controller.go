package kernel

import "fmt"

// Controller is the capability set a spawn/terminate policy implements
// (spec §9's "controller capability"), grounded on
// original_source's core/SimController.java.
type Controller interface {
	// TestForSimObjectsToStart may construct and return new modules to add
	// to the running set (e.g. when a sowing date is reached). Each
	// returned module must already have completed INITIALISING and one
	// AuxCalculations call, as NewModule's contract requires of every
	// constructor.
	TestForSimObjectsToStart(running []ModuleObject) []ModuleObject

	// TestForSimObjectsToTerminate returns modules this controller has
	// decided should end, each already moved to Terminated by a call to
	// its own Terminate method.
	TestForSimObjectsToTerminate(running []ModuleObject) []ModuleObject
}

// FindBySimID returns the running module with the given simID, or panics
// if mustFind is true and none matches.
func FindBySimID(running []ModuleObject, simID string, mustFind bool) ModuleObject {
	for _, m := range running {
		if m.SimID() == simID {
			return m
		}
	}
	if mustFind {
		panic(fmt.Sprintf("kernel.FindBySimID : simID %s is not running", simID))
	}
	return nil
}

// TerminateAndGetBySimID is the common controller idiom: look up simID in
// running, terminate it, and return it so the caller can append it to the
// terminated list it is building. Panics if simID is not running.
func TerminateAndGetBySimID(running []ModuleObject, simID string) ModuleObject {
	m := FindBySimID(running, simID, true)
	m.Terminate()
	return m
}
