package kernel

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/robknapen/WISS-Framework/sim/calendar"
	"github.com/robknapen/WISS-Framework/sim/parx"
	"github.com/robknapen/WISS-Framework/sim/simx"
	"github.com/robknapen/WISS-Framework/sim/trace"
)

// Well-known ParXChange keys the driver reads, per spec §6.
const (
	KeyStartDate    = "STARTDATE"
	KeyEndDate      = "ENDDATE"
	KeyPauseDate    = "PAUSEDATE"
	KeyTraceLogging = "TRACELOGGING"
)

// TimeDriver is the outer loop (C10): reset, integrate, intervene, aux,
// spawn, rate, terminate-checks, step. Grounded on
// original_source's core/TimeDriver.java.
type TimeDriver struct {
	model *Model
	parX  *parx.ParXChange
	simX  *simx.SimXChange
	timer *calendar.Timer
	trace *trace.Run
}

// NewTimeDriver validates its arguments, reads STARTDATE/ENDDATE (required)
// and PAUSEDATE (optional) from parX, and fixes the timer's and the
// store's date period. Panics if model, parX, or simX is nil, or if the
// well-known date keys are missing or malformed.
func NewTimeDriver(model *Model, parX *parx.ParXChange, simX *simx.SimXChange) *TimeDriver {
	if model == nil {
		panic("kernel.NewTimeDriver : model must not be nil")
	}
	if parX == nil {
		panic("kernel.NewTimeDriver : parX must not be nil")
	}
	if simX == nil {
		panic("kernel.NewTimeDriver : simX must not be nil")
	}

	timer := calendar.NewTimer()
	start := parX.GetDate(KeyStartDate, "kernel.NewTimeDriver")
	end := parX.GetDate(KeyEndDate, "kernel.NewTimeDriver")
	timer.SetDatePeriod(start, end)
	simX.SetDatePeriod(start, timer.Duration())

	if parX.Contains(KeyPauseDate, parx.TypeDate, false) {
		timer.SetPauseDate(parX.GetDate(KeyPauseDate, "kernel.NewTimeDriver"))
	}

	return &TimeDriver{model: model, parX: parX, simX: simX, timer: timer}
}

// Timer exposes the driver's calendar, mainly for tests and report headers.
func (td *TimeDriver) Timer() *calendar.Timer { return td.timer }

// Trace returns the run's trace record, or nil if tracing was never
// enabled. Valid only after Run has started.
func (td *TimeDriver) Trace() *trace.Run { return td.trace }

// Run executes the simulation to completion. Any contract or state
// violation panicked by the kernel or a module is recovered here and
// returned as an error; a successful run returns nil.
func (td *TimeDriver) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	td.timer.Reset()
	td.simX.Reset()
	if td.parX.Contains(KeyTraceLogging, parx.TypeBool, false) && td.parX.GetBool(KeyTraceLogging, "kernel.TimeDriver.Run") {
		td.simX.SetTraceLogging(true)
		td.trace = trace.New()
		td.simX.Trace = td.trace
	}

	logrus.WithFields(logrus.Fields{
		"start": td.timer.StartDate().Format("2006-01-02"),
		"end":   td.timer.EndDate().Format("2006-01-02"),
	}).Info("kernel: run starting")

	terminateByModel := false
	for !td.timer.Terminate() && !terminateByModel {
		if !td.timer.IsOnStartDate() {
			td.simX.UpdateToDate(td.timer.Date())
		}

		td.model.DoModelAction(ActionIntervene)
		td.model.DoModelAction(ActionAux)
		for {
			started := td.model.TestForSimObjectsToStart()
			if started <= 0 {
				break
			}
			td.model.DoModelAction(ActionAux)
		}
		td.model.DoModelAction(ActionRate)

		td.model.TestForSimObjectsToTerminate()
		terminateByModel = td.model.TestForTerminateByModel()

		logrus.WithFields(logrus.Fields{
			"date":    td.timer.Date().Format("2006-01-02"),
			"elapsed": td.timer.Elapsed(),
		}).Debug("kernel: day complete")

		if !terminateByModel {
			td.timer.DateStep()
		}
	}

	td.model.SimObjectsTerminate()
	td.simX.Terminate()

	logrus.WithFields(logrus.Fields{
		"elapsed":          td.timer.Elapsed(),
		"terminateByModel": terminateByModel,
		"terminateByTimer": td.timer.Terminate(),
	}).Info("kernel: run complete")

	return nil
}
