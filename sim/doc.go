// Package sim is a reading guide to the WISS deterministic daily-step
// simulation kernel; the kernel itself lives entirely in sub-packages,
// there is no sim-level implementation code.
//
// # Reading Guide
//
// Read the leaves first, then the store, then the lifecycle machinery that
// drives it:
//   - sim/unit: the scientific unit catalog and pairwise conversion table
//   - sim/rangecheck: bound checking against a variable's declared range
//   - sim/calendar: the day-granularity Timer and date arithmetic
//   - sim/parx: ParXChange, the static run configuration store
//   - sim/interpolate: piecewise-linear interpolation with extrapolation
//   - sim/simx: module value handles and SimXChange, the dynamic variable
//     store every module reads and writes through
//   - sim/kernel: the module lifecycle state machine, controllers, the
//     Model orchestrator, and the TimeDriver outer loop
//
// # Architecture
//
// A run wires one ParXChange (static configuration, including the
// well-known STARTDATE/ENDDATE/PAUSEDATE/TRACELOGGING keys) and one
// SimXChange (the dynamic variable store) to a Model holding one or more
// Controllers and the running Modules they spawn. A TimeDriver steps the
// calendar day by day, fanning INTERVENE/AUX/RATE actions out to every
// running module through the Model, re-running AUX whenever a module
// spawns a collaborator mid-day, and recovering any kernel or module panic
// into a returned error at the end of Run.
//
// # Key interfaces
//
//   - kernel.ModuleObject: the capability set a concrete module satisfies
//     by embedding kernel.Module (Intervene, AuxCalculations,
//     RateCalculations, CanContinue, Terminate, State)
//   - kernel.Controller: the spawn/terminate policy the Model consults
//     each day (TestForSimObjectsToStart, TestForSimObjectsToTerminate)
//
// # Ambient stack
//
// sim/config loads and saves the RunConfig YAML a TimeDriver run is
// seeded from; sim/trace records the phase/write/lifecycle trace a run
// accumulates when TRACELOGGING is set; sim/internal/testutil provides
// golden-file round-trip support for the report format. cmd/ wraps
// sim/config in a small Cobra CLI (config init, report inspect); it does
// not run a simulation or write a report, and it is not part of the kernel
// library.
package sim
