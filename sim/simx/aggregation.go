package simx

import (
	"fmt"
	"math"
)

// AggregationY selects which summary statistic a query over a dynamic
// variable's history should return.
type AggregationY int

const (
	AggFirst AggregationY = iota
	AggLast
	AggMin
	AggMax
	AggCount
	AggSum
	AggAverage
	AggDelta // last - first
	AggRange // max - min
)

func (a AggregationY) String() string {
	switch a {
	case AggFirst:
		return "FIRST"
	case AggLast:
		return "LAST"
	case AggMin:
		return "MIN"
	case AggMax:
		return "MAX"
	case AggCount:
		return "COUNT"
	case AggSum:
		return "SUM"
	case AggAverage:
		return "AVERAGE"
	case AggDelta:
		return "DELTA"
	case AggRange:
		return "RANGE"
	default:
		return "UNKNOWN"
	}
}

// AggregationDate selects which day index of an extremum or endpoint a
// query should return.
type AggregationDate int

const (
	AggDateFirst AggregationDate = iota
	AggDateLast
	AggDateMin
	AggDateMax
)

func (a AggregationDate) String() string {
	switch a {
	case AggDateFirst:
		return "FIRST"
	case AggDateLast:
		return "LAST"
	case AggDateMin:
		return "MIN"
	case AggDateMax:
		return "MAX"
	default:
		return "UNKNOWN"
	}
}

// aggregation is the rolling summary kept for an aggregated dynamic
// variable: count, first, previous, last, and the min/max with the day
// index of their first occurrence, plus a running sum. Grounded on
// SimXChange.java's inner Aggregation class, with the min/max update
// direction corrected per the kernel's design notes (first-occurrence-wins
// on ties, update only on strict improvement) rather than the source's
// self-contradictory `item.min < item.last` / `item.max > item.last` reading.
type aggregation struct {
	count int

	first      float64
	firstIndex int

	previous float64
	last     float64
	lastIndex int

	min      float64
	minIndex int
	max      float64
	maxIndex int

	sum float64
}

func newAggregation() *aggregation {
	return &aggregation{
		first: math.NaN(), previous: math.NaN(), last: math.NaN(),
		min: math.NaN(), max: math.NaN(),
		firstIndex: -1, lastIndex: -1, minIndex: -1, maxIndex: -1,
	}
}

// record folds value observed at dayIndex into the running summary.
func (a *aggregation) record(value float64, dayIndex int) {
	if a.count == 0 {
		a.first = value
		a.firstIndex = dayIndex
		a.min = value
		a.minIndex = dayIndex
		a.max = value
		a.maxIndex = dayIndex
	} else {
		if value < a.min {
			a.min = value
			a.minIndex = dayIndex
		}
		if value > a.max {
			a.max = value
			a.maxIndex = dayIndex
		}
	}
	a.previous = a.last
	a.last = value
	a.lastIndex = dayIndex
	a.sum += value
	a.count++
}

func (a *aggregation) valueFor(kind AggregationY, caller string) float64 {
	if a.count == 0 {
		panic(fmt.Sprintf("simx.aggregation.valueFor : %s queried %s on an aggregated variable with no recorded values", caller, kind))
	}
	switch kind {
	case AggFirst:
		return a.first
	case AggLast:
		return a.last
	case AggMin:
		return a.min
	case AggMax:
		return a.max
	case AggCount:
		return float64(a.count)
	case AggSum:
		return a.sum
	case AggAverage:
		return a.sum / float64(a.count)
	case AggDelta:
		return a.last - a.first
	case AggRange:
		return a.max - a.min
	default:
		panic(fmt.Sprintf("simx.aggregation.valueFor : %s used an unrecognized AggregationY %d", caller, kind))
	}
}

func (a *aggregation) dateIndexFor(kind AggregationDate, caller string) int {
	if a.count == 0 {
		panic(fmt.Sprintf("simx.aggregation.dateIndexFor : %s queried %s on an aggregated variable with no recorded values", caller, kind))
	}
	switch kind {
	case AggDateFirst:
		return a.firstIndex
	case AggDateLast:
		return a.lastIndex
	case AggDateMin:
		return a.minIndex
	case AggDateMax:
		return a.maxIndex
	default:
		panic(fmt.Sprintf("simx.aggregation.dateIndexFor : %s used an unrecognized AggregationDate %d", caller, kind))
	}
}
