// Package rangecheck implements the inclusive/exclusive numeric and calendar
// bound tests used to validate writes into ParXChange and SimXChange.
package rangecheck

import (
	"fmt"
	"math"
	"time"
)

// RangeType is one of the predefined bound presets a dynamic or parameter
// variable can declare.
type RangeType int

const (
	ALL RangeType = iota
	ZeroPositive
	Positive
	ZeroNegative
	Negative
	ZeroOne
	TempCelsius
)

// minPositiveNormal stands in for Java's Double.MIN_VALUE, used as a sentinel
// bound marking an exclusive zero boundary for the strict Positive/Negative
// presets.
const minPositiveNormal = math.SmallestNonzeroFloat64

// Bounds is a lower/upper pair together with whether each end is inclusive.
type Bounds struct {
	Lower          float64
	Upper          float64
	LowerInclusive bool
	UpperInclusive bool
}

// BoundsFor returns the Bounds for a RangeType preset.
func BoundsFor(rt RangeType) Bounds {
	switch rt {
	case ALL:
		return Bounds{math.Inf(-1), math.Inf(1), true, true}
	case ZeroPositive:
		return Bounds{0.0, math.Inf(1), true, true}
	case Positive:
		return Bounds{minPositiveNormal, math.Inf(1), false, true}
	case ZeroNegative:
		return Bounds{math.Inf(-1), 0.0, true, true}
	case Negative:
		return Bounds{math.Inf(-1), -minPositiveNormal, true, false}
	case ZeroOne:
		return Bounds{0.0, 1.0, true, true}
	case TempCelsius:
		return Bounds{-273.15, math.Inf(1), true, true}
	default:
		panic(fmt.Sprintf("rangecheck.BoundsFor : range type %d is not recognized", rt))
	}
}

// InRangeFloat reports whether value lies between b.Lower and b.Upper, each
// end inclusive or exclusive according to b's LowerInclusive/UpperInclusive
// flags. This covers the exclusive-zero sentinel convention used by
// BoundsFor: a +/-minPositiveNormal bound with inclusive=false is an open
// end, so the sentinel value itself is out of range.
func InRangeFloat(value float64, b Bounds) bool {
	if math.IsNaN(value) {
		panic("rangecheck.InRangeFloat : the value to test is missing")
	}
	if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) {
		panic("rangecheck.InRangeFloat : a range bound is missing")
	}
	if b.Lower > b.Upper {
		panic(fmt.Sprintf("rangecheck.InRangeFloat : the lower bound (%g) is larger than the upper bound (%g)", b.Lower, b.Upper))
	}

	if value < b.Lower || (value == b.Lower && !b.LowerInclusive) {
		return false
	}
	if value > b.Upper || (value == b.Upper && !b.UpperInclusive) {
		return false
	}
	return true
}

// InRange is the plain inclusive-both-ends float64 check used outside of the
// RangeType preset machinery (e.g. validating an explicit lower/upper pair
// passed by a module).
func InRange(value, lower, upper float64) bool {
	return InRangeFloat(value, Bounds{lower, upper, true, true})
}

// InRangeInt is the int version of InRange, inclusive on both ends.
func InRangeInt(value, lower, upper int) bool {
	if lower > upper {
		panic(fmt.Sprintf("rangecheck.InRangeInt : the lower bound (%d) is larger than the upper bound (%d)", lower, upper))
	}
	return value >= lower && value <= upper
}

// InRangeDate reports whether value lies within [earlier, later], inclusive.
func InRangeDate(value, earlier, later time.Time) bool {
	if earlier.After(later) {
		panic(fmt.Sprintf("rangecheck.InRangeDate : the earlier date argument (%s) is later than the later date argument (%s)", earlier, later))
	}
	return !value.Before(earlier) && !value.After(later)
}

// EnsureRange clamps value into [lower, upper].
func EnsureRange(value, lower, upper float64) float64 {
	if lower > upper {
		panic(fmt.Sprintf("rangecheck.EnsureRange : the lower bound (%g) is larger than the upper bound (%g)", lower, upper))
	}
	v := SafeExpr(value)
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

// EnsureRangeInt is the int version of EnsureRange.
func EnsureRangeInt(value, lower, upper int) int {
	if lower > upper {
		panic(fmt.Sprintf("rangecheck.EnsureRangeInt : the lower bound (%d) is larger than the upper bound (%d)", lower, upper))
	}
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}

// SafeExpr guarantees a finite, non-NaN result, panicking with a message
// naming which failure mode occurred (positive infinity, negative infinity,
// or NaN) rather than letting a divide-by-zero silently propagate.
func SafeExpr(value float64) float64 {
	switch {
	case math.IsInf(value, 1):
		panic("rangecheck.SafeExpr : the expression gives a positive infinite result")
	case math.IsInf(value, -1):
		panic("rangecheck.SafeExpr : the expression gives a negative infinite result")
	case math.IsNaN(value):
		panic("rangecheck.SafeExpr : the expression gives a NaN result")
	default:
		return value
	}
}
