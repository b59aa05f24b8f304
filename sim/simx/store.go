// Package simx implements the dynamic variable-exchange store (SimXChange,
// C6) and the module value handles that read and write it (C5). Grounded
// on original_source's core/SimXChange.java.
package simx

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/robknapen/WISS-Framework/sim/interpolate"
	"github.com/robknapen/WISS-Framework/sim/rangecheck"
	"github.com/robknapen/WISS-Framework/sim/trace"
	"github.com/robknapen/WISS-Framework/sim/unit"
)

// SimIDState is a registered module's lifecycle state as recorded by the
// store (distinct from, and driven by, the module's own phase state
// machine in sim/kernel).
type SimIDState int

const (
	SimIDRunning SimIDState = iota
	SimIDTerminatedNormally
	SimIDTerminatedError
)

func (s SimIDState) String() string {
	switch s {
	case SimIDRunning:
		return "RUNNING"
	case SimIDTerminatedNormally:
		return "TERMINATED_NORMALLY"
	case SimIDTerminatedError:
		return "TERMINATED_ERROR"
	default:
		return "UNKNOWN"
	}
}

type simIDInfo struct {
	simID         string
	className     string
	startDayIndex int
	endDayIndex   int // -1 while running
	state         SimIDState
	message       string
}

type forcedRecord struct {
	dayIndex int
	simID    string
	name     string
	oldValue float64
	newValue float64
	unit     unit.ScientificUnit
}

// SimXChange is the day-indexed, variable-oriented dynamic store. One
// instance per simulation run.
type SimXChange struct {
	id          string
	tokenOffset int64

	startDate     time.Time
	duration      int // inclusive day count (spec §3: endIndex = duration)
	datePeriodSet bool
	curDateIndex  int // -1 before Reset has ever run

	vars   []*dynVar
	byName map[string][]*dynVar

	simIDs     map[string]*simIDInfo
	simIDOrder []string

	fullTimeSeriesNames map[string]bool

	forcedRecords []forcedRecord

	traceLogging bool
	terminated   bool

	Trace *trace.Run // optional; nil by default, RecordX calls on it are safe no-ops
}

// New returns an empty store. id identifies the store for token-offset
// derivation (see token.go) and in log messages; seed makes that
// derivation reproducible across runs with the same configuration.
func New(id string, seed int64) *SimXChange {
	return &SimXChange{
		id:                  id,
		tokenOffset:         deriveTokenOffset(seed, id),
		curDateIndex:        -1,
		byName:              make(map[string][]*dynVar),
		simIDs:              make(map[string]*simIDInfo),
		fullTimeSeriesNames: make(map[string]bool),
	}
}

// SetDatePeriod fixes the run's start date and inclusive day count. Must be
// called exactly once, before Reset.
func (sx *SimXChange) SetDatePeriod(start time.Time, duration int) {
	if sx.datePeriodSet {
		panic("simx.SimXChange.SetDatePeriod : cannot set date period twice")
	}
	if duration < 0 {
		panic(fmt.Sprintf("simx.SimXChange.SetDatePeriod : duration %d must be >= 0", duration))
	}
	sx.startDate = start
	sx.duration = duration
	sx.datePeriodSet = true
}

// SetTraceLogging toggles per-call trace logging, mirroring the
// TRACELOGGING well-known ParXChange key.
func (sx *SimXChange) SetTraceLogging(on bool) { sx.traceLogging = on }

// SetFullTimeSeries opts varName into dense, full-day-resolution storage.
// Unregistered names default to aggregated (memory-lean, summary-only)
// storage. Must be called before the run starts (i.e. before the first
// Reset), matching the Java source's curDateIndex == -1 guard.
func (sx *SimXChange) SetFullTimeSeries(name string) {
	if sx.curDateIndex != -1 {
		panic(fmt.Sprintf("simx.SimXChange.SetFullTimeSeries : %s must be called before the run starts", name))
	}
	sx.fullTimeSeriesNames[upper(name)] = true
}

// Reset clears all dynamic variables, simID registrations, and forced-state
// records, and positions the store at day 0 (the start date). Date period
// configuration and the SetFullTimeSeries declarations survive a reset.
func (sx *SimXChange) Reset() {
	if !sx.datePeriodSet {
		panic("simx.SimXChange.Reset : date period has not been set yet")
	}
	sx.vars = nil
	sx.byName = make(map[string][]*dynVar)
	sx.simIDs = make(map[string]*simIDInfo)
	sx.simIDOrder = nil
	sx.forcedRecords = nil
	sx.curDateIndex = 0
	sx.terminated = false
}

// Terminate marks the store as finished; no further mutation is expected
// (the TimeDriver calls this once, after tearing down all modules).
func (sx *SimXChange) Terminate() { sx.terminated = true }

// CurDateIndex returns the day index the store currently considers "today".
func (sx *SimXChange) CurDateIndex() int { return sx.curDateIndex }

// CurDate returns the calendar date for CurDateIndex.
func (sx *SimXChange) CurDate() time.Time { return sx.dateForIndex(sx.curDateIndex) }

func (sx *SimXChange) dateForIndex(dayIndex int) time.Time {
	return sx.startDate.AddDate(0, 0, dayIndex)
}

func upper(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// --- simID registration -----------------------------------------------

// RegisterSimID records a new module instance. Panics if simID is already
// registered.
func (sx *SimXChange) RegisterSimID(simID, className string, startDayIndex int) {
	simID = upper(simID)
	if _, ok := sx.simIDs[simID]; ok {
		panic(fmt.Sprintf("simx.SimXChange.RegisterSimID : simID %s is already registered", simID))
	}
	sx.simIDs[simID] = &simIDInfo{
		simID: simID, className: className, startDayIndex: startDayIndex,
		endDayIndex: -1, state: SimIDRunning,
	}
	sx.simIDOrder = append(sx.simIDOrder, simID)
	if sx.traceLogging {
		logrus.WithFields(logrus.Fields{"simID": simID, "class": className, "day": startDayIndex}).Trace("simx: registered simID")
	}
	sx.Trace.RecordLifecycle(trace.LifecycleRecord{DayIndex: startDayIndex, SimID: simID, Event: "REGISTERED", Detail: className})
}

// TerminateSimID marks simID as ended on the current day. errored selects
// TERMINATED_ERROR over TERMINATED_NORMALLY; message is free-form context.
func (sx *SimXChange) TerminateSimID(simID string, errored bool, message string) {
	simID = upper(simID)
	info, ok := sx.simIDs[simID]
	if !ok {
		panic(fmt.Sprintf("simx.SimXChange.TerminateSimID : unknown simID %s", simID))
	}
	if info.state != SimIDRunning {
		panic(fmt.Sprintf("simx.SimXChange.TerminateSimID : simID %s is already terminated", simID))
	}
	info.endDayIndex = sx.curDateIndex
	info.message = message
	if errored {
		info.state = SimIDTerminatedError
	} else {
		info.state = SimIDTerminatedNormally
	}
	if sx.traceLogging {
		logrus.WithFields(logrus.Fields{"simID": simID, "day": sx.curDateIndex, "state": info.state}).Trace("simx: terminated simID")
	}
	sx.Trace.RecordLifecycle(trace.LifecycleRecord{DayIndex: sx.curDateIndex, SimID: simID, Event: info.state.String(), Detail: message})
}

func (sx *SimXChange) simIDActive(simID string) bool {
	info, ok := sx.simIDs[simID]
	return ok && info.state == SimIDRunning
}

// --- ownership / write path ---------------------------------------------

func (sx *SimXChange) findOrCreateVar(simID, name string, isState bool, u unit.ScientificUnit, bounds rangecheck.Bounds, method string) *dynVar {
	simID = upper(simID)
	name = upper(name)

	existing := sx.byName[name]
	for i, v := range existing {
		if v.simID == simID {
			// A variable created later under the same name has taken over
			// publishing it; this one stays locked against writes.
			if i != len(existing)-1 {
				panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s is locked, %s has since taken over publishing %s", method, simID, name, existing[len(existing)-1].simID, name))
			}
			return v
		}
	}
	for _, v := range existing {
		if sx.simIDActive(v.simID) {
			panic(fmt.Sprintf("simx.SimXChange.%s : %s is locked, %s is already the active publisher of %s", method, simID, v.simID, name))
		}
	}

	dv := newDynVar(simID, name, isState, u, bounds, len(sx.vars), sx.duration, !sx.fullTimeSeriesNames[name])
	sx.vars = append(sx.vars, dv)
	sx.byName[name] = append(sx.byName[name], dv)
	return dv
}

func (sx *SimXChange) requireRunning(method string) {
	if sx.curDateIndex < 0 {
		panic(fmt.Sprintf("simx.SimXChange.%s : the store has not been reset yet", method))
	}
}

// ForceState writes h.V as the state's value for today, converting to the
// variable's native unit and bounds-checking the result. Registers the
// variable (and locks other publishers of the same name) on first call.
func (sx *SimXChange) ForceState(h *StateHandle) {
	const method = "ForceState"
	sx.requireRunning(method)
	if math.IsNaN(h.V) {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s was given a missing value", method, h.SimID, h.Name))
	}

	dv := sx.findOrCreateVar(h.SimID, h.Name, true, h.Unit, rangecheck.Bounds{Lower: h.Lower, Upper: h.Upper, LowerInclusive: true, UpperInclusive: true}, method)
	if dv.dead {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s is dead (went missing on an earlier day) and cannot be resurrected", method, h.SimID, h.Name))
	}

	nv := unit.Convert(h.Name, h.V, h.Unit, dv.nativeUnit)
	if !rangecheck.InRangeFloat(nv, dv.bounds) {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s = %g is out of bounds [%g,%g]", method, h.SimID, h.Name, nv, dv.bounds.Lower, dv.bounds.Upper))
	}

	old := dv.valueAt(sx.curDateIndex)
	dv.setValueAt(sx.curDateIndex, nv)
	sx.forcedRecords = append(sx.forcedRecords, forcedRecord{
		dayIndex: sx.curDateIndex, simID: dv.simID, name: dv.name,
		oldValue: old, newValue: nv, unit: dv.nativeUnit,
	})

	if h.token == InvalidToken {
		h.token = encodeToken(dv.varIndex, true, sx.tokenOffset)
	}
	if sx.traceLogging {
		logrus.WithFields(logrus.Fields{"simID": dv.simID, "var": dv.name, "day": sx.curDateIndex, "value": nv}).Trace("simx: forceState")
	}
	sx.Trace.RecordWrite(trace.WriteRecord{DayIndex: sx.curDateIndex, SimID: dv.simID, VarName: dv.name, Kind: "FORCE_STATE", Value: nv})
}

// SetStateRate stores h.R as the pending rate-of-change for the state's
// current value. Applied on the next UpdateToDate call.
func (sx *SimXChange) SetStateRate(h *StateHandle) {
	const method = "SetStateRate"
	sx.requireRunning(method)
	dv := sx.lookupOwn(h.SimID, h.Name, method)
	if dv.dead {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s is dead", method, h.SimID, h.Name))
	}
	if !dv.hasValueAt(sx.curDateIndex) {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s has no active value today, cannot set a rate", method, h.SimID, h.Name))
	}
	if dv.pendingRateValid {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s already has a pending rate set today", method, h.SimID, h.Name))
	}
	if math.IsNaN(h.R) {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s was given a missing rate", method, h.SimID, h.Name))
	}

	rateNative := unit.Convert(h.Name, h.R, h.Unit, dv.nativeUnit)
	candidate := dv.valueAt(sx.curDateIndex) + rateNative
	if !rangecheck.InRangeFloat(candidate, dv.bounds) {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s + rate = %g would be out of bounds [%g,%g]", method, h.SimID, h.Name, candidate, dv.bounds.Lower, dv.bounds.Upper))
	}

	dv.pendingRate = rateNative
	dv.pendingRateValid = true
	if sx.traceLogging {
		logrus.WithFields(logrus.Fields{"simID": dv.simID, "var": dv.name, "day": sx.curDateIndex, "rate": rateNative}).Trace("simx: setStateRate")
	}
	sx.Trace.RecordWrite(trace.WriteRecord{DayIndex: sx.curDateIndex, SimID: dv.simID, VarName: dv.name, Kind: "SET_RATE", Value: rateNative})
}

// SetAux writes h.V as the auxiliary variable's value for today. Aux
// variables are overwritten wholesale each day: there is no rate and no
// integration, but the same continuity rule applies (a value may only
// exist on a day if the previous day's value existed or this is the
// variable's first-ever write).
func (sx *SimXChange) SetAux(h *AuxHandle) {
	const method = "SetAux"
	sx.requireRunning(method)
	if math.IsNaN(h.V) {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s was given a missing value", method, h.SimID, h.Name))
	}

	dv := sx.findOrCreateVar(h.SimID, h.Name, false, h.Unit, rangecheck.Bounds{Lower: h.Lower, Upper: h.Upper, LowerInclusive: true, UpperInclusive: true}, method)
	last := dv.lastWrittenIndex()
	if last >= 0 && last != sx.curDateIndex-1 && last != sx.curDateIndex {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s skipped a day (last written day %d, today %d)", method, h.SimID, h.Name, last, sx.curDateIndex))
	}

	nv := unit.Convert(h.Name, h.V, h.Unit, dv.nativeUnit)
	if !rangecheck.InRangeFloat(nv, dv.bounds) {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s = %g is out of bounds [%g,%g]", method, h.SimID, h.Name, nv, dv.bounds.Lower, dv.bounds.Upper))
	}
	dv.setValueAt(sx.curDateIndex, nv)

	if h.token == InvalidToken {
		h.token = encodeToken(dv.varIndex, true, sx.tokenOffset)
	}
	if sx.traceLogging {
		logrus.WithFields(logrus.Fields{"simID": dv.simID, "var": dv.name, "day": sx.curDateIndex, "value": nv}).Trace("simx: setAux")
	}
	sx.Trace.RecordWrite(trace.WriteRecord{DayIndex: sx.curDateIndex, SimID: dv.simID, VarName: dv.name, Kind: "SET_AUX", Value: nv})
}

func (sx *SimXChange) lookupOwn(simID, name, method string) *dynVar {
	simID, name = upper(simID), upper(name)
	for _, v := range sx.byName[name] {
		if v.simID == simID {
			return v
		}
	}
	panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s has not been registered yet", method, simID, name))
}

// UpdateToDate advances the store's notion of "today" by exactly one day,
// integrating every state with a valid pending rate and an active
// previous-day value. States with no pending rate go missing permanently.
// Returns the number of integrations performed.
func (sx *SimXChange) UpdateToDate(date time.Time) int {
	const method = "UpdateToDate"
	sx.requireRunning(method)
	expected := sx.dateForIndex(sx.curDateIndex + 1)
	if !date.Equal(expected) {
		panic(fmt.Sprintf("simx.SimXChange.%s : expected date %s (curDateIndex+1), got %s", method, expected.Format("2006-01-02"), date.Format("2006-01-02")))
	}

	next := sx.curDateIndex + 1
	integrated := 0
	for _, dv := range sx.vars {
		if !dv.isState || dv.dead {
			continue
		}
		activeYesterday := dv.hasValueAt(sx.curDateIndex)
		if dv.pendingRateValid && activeYesterday {
			newVal := dv.valueAt(sx.curDateIndex) + dv.pendingRate
			dv.setValueAt(next, newVal)
			integrated++
		} else if activeYesterday {
			dv.dead = true
		}
		dv.pendingRate = 0
		dv.pendingRateValid = false
	}
	sx.curDateIndex = next
	if sx.traceLogging {
		logrus.WithFields(logrus.Fields{"day": sx.curDateIndex, "integrated": integrated}).Trace("simx: updateToDate")
	}
	return integrated
}

// --- reads ---------------------------------------------------------------

// GetSimValueState refreshes h.V (today) and h.VP (yesterday) from the
// store, converted into h.Unit.
func (sx *SimXChange) GetSimValueState(h *StateHandle) {
	const method = "GetSimValueState"
	sx.requireRunning(method)
	dv := sx.lookupOwn(h.SimID, h.Name, method)
	h.V = sx.convertedOrNaN(dv, sx.curDateIndex, h.Unit)
	h.VP = sx.convertedOrNaN(dv, sx.curDateIndex-1, h.Unit)
	if h.token == InvalidToken && dv.hasValueAt(sx.curDateIndex) {
		h.token = encodeToken(dv.varIndex, true, sx.tokenOffset)
	}
}

func (sx *SimXChange) convertedOrNaN(dv *dynVar, dayIndex int, targetUnit unit.ScientificUnit) float64 {
	if !dv.hasValueAt(dayIndex) {
		return math.NaN()
	}
	return unit.Convert(dv.name, dv.valueAt(dayIndex), dv.nativeUnit, targetUnit)
}

func (sx *SimXChange) byNameVar(name, method string) []*dynVar {
	vars, ok := sx.byName[upper(name)]
	if !ok || len(vars) == 0 {
		panic(fmt.Sprintf("simx.SimXChange.%s : no variable named %s has ever been published", method, name))
	}
	return vars
}

func (sx *SimXChange) lookupSimIDVar(simID, name, method string) *dynVar {
	return sx.lookupOwn(simID, name, method)
}

// GetValueByDate returns the value published by simID under name on date,
// converted to targetUnit.
func (sx *SimXChange) GetValueByDate(simID, name, caller string, targetUnit unit.ScientificUnit, date time.Time) float64 {
	return sx.GetValueByDateIndex(simID, name, caller, targetUnit, sx.dayIndexFor(date))
}

func (sx *SimXChange) dayIndexFor(date time.Time) int {
	days := 0
	d := sx.startDate
	sign := 1
	if date.Before(d) {
		sign = -1
	}
	for !d.Equal(date) {
		d = d.AddDate(0, 0, sign)
		days += sign
	}
	return days
}

// GetValueByDateIndex returns the value published by simID under name on
// dayIndex, converted to targetUnit.
func (sx *SimXChange) GetValueByDateIndex(simID, name, caller string, targetUnit unit.ScientificUnit, dayIndex int) float64 {
	const method = "GetValueByDateIndex"
	dv := sx.lookupSimIDVar(simID, name, method)
	if dv.aggregated && dayIndex != dv.agg.lastIndex && dayIndex != dv.agg.lastIndex-1 {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s is aggregated, only the previous day is queryable by index (caller=%s)", method, simID, name, caller))
	}
	return sx.convertedOrNaN(dv, dayIndex, targetUnit)
}

// GetValueByDelta returns the value published by simID under name delta
// days before today (delta must be <= 0), converted to targetUnit.
func (sx *SimXChange) GetValueByDelta(simID, name, caller string, targetUnit unit.ScientificUnit, delta int) float64 {
	const method = "GetValueByDelta"
	if delta > 0 {
		panic(fmt.Sprintf("simx.SimXChange.%s : delta %d must be <= 0 (caller=%s)", method, delta, caller))
	}
	return sx.GetValueByDateIndex(simID, name, caller, targetUnit, sx.curDateIndex+delta)
}

// GetSimValueExternalByVarName resolves and refreshes h.V to the unique
// active publisher's value for today, re-resolving the cached token if the
// previous publisher stopped producing values, and updates h.Terminated.
func (sx *SimXChange) GetSimValueExternalByVarName(h *ExternalHandle) {
	const method = "GetSimValueExternalByVarName"
	sx.requireRunning(method)
	dv := sx.resolveActivePublisher(h, method)
	h.V = sx.convertedOrNaN(dv, sx.curDateIndex, h.Unit)
}

// GetSimValueExternalByVarNameDelta is the delta-day variant (delta <= 0).
func (sx *SimXChange) GetSimValueExternalByVarNameDelta(h *ExternalHandle, delta int) float64 {
	const method = "GetSimValueExternalByVarNameDelta"
	if delta > 0 {
		panic(fmt.Sprintf("simx.SimXChange.%s : delta %d must be <= 0 (caller=%s)", method, delta, h.Caller))
	}
	sx.requireRunning(method)
	dv := sx.resolveActivePublisher(h, method)
	return sx.convertedOrNaN(dv, sx.curDateIndex+delta, h.Unit)
}

// GetSimValueExternalByVarNameDate is the absolute-date variant.
func (sx *SimXChange) GetSimValueExternalByVarNameDate(h *ExternalHandle, date time.Time) float64 {
	const method = "GetSimValueExternalByVarNameDate"
	sx.requireRunning(method)
	dv := sx.resolveActivePublisher(h, method)
	return sx.convertedOrNaN(dv, sx.dayIndexFor(date), h.Unit)
}

func (sx *SimXChange) resolveActivePublisher(h *ExternalHandle, method string) *dynVar {
	if h.token != InvalidToken {
		if idx, _, ok := decodeToken(h.token, sx.tokenOffset, len(sx.vars)); ok {
			dv := sx.vars[idx]
			if dv.hasValueAt(sx.curDateIndex) {
				h.Terminated = !sx.simIDActive(dv.simID)
				return dv
			}
		}
	}

	vars := sx.byNameVar(h.Name, method)
	var active *dynVar
	for _, v := range vars {
		if v.hasValueAt(sx.curDateIndex) {
			if active != nil {
				panic(fmt.Sprintf("simx.SimXChange.%s : more than one active publisher of %s on day %d", method, h.Name, sx.curDateIndex))
			}
			active = v
		}
	}
	if active == nil {
		panic(fmt.Sprintf("simx.SimXChange.%s : no active publisher of %s today (caller=%s)", method, h.Name, h.Caller))
	}
	h.token = encodeToken(active.varIndex, false, sx.tokenOffset)
	h.Terminated = !sx.simIDActive(active.simID)
	return active
}

// --- aggregation queries --------------------------------------------------

// GetValueAgg answers a full-period aggregation query for (simID, name).
// Works for both aggregated (from the running summary) and dense (scanning
// the array) storage.
func (sx *SimXChange) GetValueAgg(simID, name, caller string, targetUnit unit.ScientificUnit, kind AggregationY) float64 {
	const method = "GetValueAgg"
	dv := sx.lookupSimIDVar(simID, name, method)
	if dv.aggregated {
		return unit.Convert(name, dv.agg.valueFor(kind, caller), dv.nativeUnit, targetUnit)
	}
	agg := sx.scanAggregation(dv, 0, sx.curDateIndex, caller)
	return unit.Convert(name, agg.valueFor(kind, caller), dv.nativeUnit, targetUnit)
}

// scanAggregation builds a transient aggregation over dv's dense values in
// [from, to], used to answer aggregation queries and moving windows over
// non-aggregated storage, and to check invariant I6 against the aggregated
// path in tests.
func (sx *SimXChange) scanAggregation(dv *dynVar, from, to int, caller string) *aggregation {
	if dv.aggregated {
		panic(fmt.Sprintf("simx.SimXChange.scanAggregation : %s.%s is aggregated, per-day history is not available (caller=%s)", dv.simID, dv.name, caller))
	}
	agg := newAggregation()
	if from < 0 {
		from = 0
	}
	for i := from; i <= to && i < len(dv.hasValues); i++ {
		if dv.hasValues[i] {
			agg.record(dv.values[i], i)
		}
	}
	return agg
}

// GetValueAggMoving answers a trailing-window aggregation over the last
// dayCount days (inclusive of today), rejected for aggregated-mode
// variables since only dense storage retains per-day history.
func (sx *SimXChange) GetValueAggMoving(simID, name, caller string, targetUnit unit.ScientificUnit, kind AggregationY, dayCount int) float64 {
	const method = "GetValueAggMoving"
	if dayCount <= 0 {
		panic(fmt.Sprintf("simx.SimXChange.%s : dayCount %d must be > 0 (caller=%s)", method, dayCount, caller))
	}
	dv := sx.lookupSimIDVar(simID, name, method)
	if dv.aggregated {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s is aggregated, a moving window needs per-day history (caller=%s)", method, simID, name, caller))
	}
	from := sx.curDateIndex - dayCount + 1
	if from < 0 {
		from = 0
	}
	agg := sx.scanAggregation(dv, from, sx.curDateIndex, caller)
	return unit.Convert(name, agg.valueFor(kind, caller), dv.nativeUnit, targetUnit)
}

// GetDateAgg returns the calendar date of the requested aggregation-date
// extremum or endpoint for (simID, name) over the full period.
func (sx *SimXChange) GetDateAgg(simID, name, caller string, kind AggregationDate) time.Time {
	const method = "GetDateAgg"
	dv := sx.lookupSimIDVar(simID, name, method)
	var agg *aggregation
	if dv.aggregated {
		agg = dv.agg
	} else {
		agg = sx.scanAggregation(dv, 0, sx.curDateIndex, caller)
	}
	return sx.dateForIndex(agg.dateIndexFor(kind, caller))
}

// GetValuesByVarNameAgg returns the full-period aggregation for every simID
// that has ever published name, keyed by simID, visited in registration
// order (the map itself has no order; callers needing order should consult
// SimIDOrder).
func (sx *SimXChange) GetValuesByVarNameAgg(name, caller string, targetUnit unit.ScientificUnit, kind AggregationY) map[string]float64 {
	const method = "GetValuesByVarNameAgg"
	vars := sx.byNameVar(name, method)
	out := make(map[string]float64, len(vars))
	for _, simID := range sx.simIDOrder {
		for _, dv := range vars {
			if dv.simID != simID {
				continue
			}
			if dv.aggregated {
				out[simID] = unit.Convert(name, dv.agg.valueFor(kind, caller), dv.nativeUnit, targetUnit)
			} else {
				agg := sx.scanAggregation(dv, 0, sx.curDateIndex, caller)
				out[simID] = unit.Convert(name, agg.valueFor(kind, caller), dv.nativeUnit, targetUnit)
			}
		}
	}
	return out
}

// --- crossings & interpolation -------------------------------------------

// GetDatesCrossing returns the dates on which (simID, name)'s series, read
// in targetUnit, crosses value in the requested direction: upward when
// v > value && vp <= value, downward when v < value && vp >= value.
// Rejected on aggregated variables.
func (sx *SimXChange) GetDatesCrossing(simID, name, caller string, targetUnit unit.ScientificUnit, value float64, upward bool) []time.Time {
	const method = "GetDatesCrossing"
	dv := sx.lookupSimIDVar(simID, name, method)
	if dv.aggregated {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s is aggregated, crossings need per-day history (caller=%s)", method, simID, name, caller))
	}

	var dates []time.Time
	for i := 1; i < len(dv.hasValues); i++ {
		if !dv.hasValues[i] || !dv.hasValues[i-1] {
			continue
		}
		v := unit.Convert(name, dv.values[i], dv.nativeUnit, targetUnit)
		vp := unit.Convert(name, dv.values[i-1], dv.nativeUnit, targetUnit)
		if upward && v > value && vp <= value {
			dates = append(dates, sx.dateForIndex(i))
		}
		if !upward && v < value && vp >= value {
			dates = append(dates, sx.dateForIndex(i))
		}
	}
	return dates
}

// GetInterpolatorBySimIDVarName extracts (dayIndex, value) pairs from
// (simID, name)'s dense history into an Interpolator, converting values
// into yUnit. In swap mode the interpolator stores (value, dayIndex)
// instead, collapsing duplicate values, for cases like development-stage
// crossings where the value must become the independent variable.
func (sx *SimXChange) GetInterpolatorBySimIDVarName(simID, name, caller string, xUnit, yUnit unit.ScientificUnit, swap bool) *interpolate.Interpolator {
	const method = "GetInterpolatorBySimIDVarName"
	dv := sx.lookupSimIDVar(simID, name, method)
	if dv.aggregated {
		panic(fmt.Sprintf("simx.SimXChange.%s : %s.%s is aggregated, interpolator extraction needs per-day history (caller=%s)", method, simID, name, caller))
	}

	var ip *interpolate.Interpolator
	if swap {
		ip = interpolate.NewSwapped(fmt.Sprintf("%s.%s", simID, name), xUnit, yUnit)
	} else {
		ip = interpolate.New(fmt.Sprintf("%s.%s", simID, name), xUnit, yUnit)
	}
	for i, has := range dv.hasValues {
		if !has {
			continue
		}
		v := unit.Convert(name, dv.values[i], dv.nativeUnit, yUnit)
		ip.Add(float64(i), v)
	}
	return ip
}

// SimIDOrder returns the registration order of every simID ever registered
// with this store.
func (sx *SimXChange) SimIDOrder() []string {
	out := make([]string, len(sx.simIDOrder))
	copy(out, sx.simIDOrder)
	return out
}

// SimIDState reports the current lifecycle state of simID.
func (sx *SimXChange) SimIDState(simID string) SimIDState {
	info, ok := sx.simIDs[upper(simID)]
	if !ok {
		panic(fmt.Sprintf("simx.SimXChange.SimIDState : unknown simID %s", simID))
	}
	return info.state
}

// sortedVarNames returns every distinct uppercase variable name ever
// published, sorted, for deterministic report column ordering.
func (sx *SimXChange) sortedVarNames() []string {
	names := make([]string, 0, len(sx.byName))
	for n := range sx.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
