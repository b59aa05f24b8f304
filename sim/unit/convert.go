package unit

import (
	"fmt"
	"math"
)

// Convert returns value expressed in 'from' re-expressed in 'to'. name is an
// identifier (variable name, simID.varName, interpolator id, ...) included in
// panic messages for context; it has no effect on the result.
//
// Identity applies when from == to or value is NaN (missing values carry no
// unit obligation). NA on either side is always a failure: NA means "no
// unit", which is never interchangeable with an actual unit. A pairwise
// table entry missing for an otherwise-legal (from, to) pair is a programming
// error (an unregistered unit pair), not a runtime possibility, and panics.
func Convert(name string, value float64, from, to ScientificUnit) float64 {
	if from == to {
		return value
	}
	if math.IsNaN(value) {
		return value
	}
	if from == NA || to == NA {
		panic(fmt.Sprintf("unit.Convert : cannot convert %s from/to NA (from=%s, to=%s)", name, Caption(from), Caption(to)))
	}

	result, ok := convertPair(value, from, to)
	if !ok {
		panic(fmt.Sprintf("unit.Convert : no conversion registered for %s from %s to %s", name, Caption(from), Caption(to)))
	}
	return result
}

// convertPair holds the pairwise conversion table. Each case covers one
// direction, and every supported pair is listed in both directions; no
// inverse is derived automatically, so a pair listed one way only cannot be
// converted the other way.
func convertPair(value float64, from, to ScientificUnit) (float64, bool) {
	switch {
	case from == HPA && to == MBAR:
		return value, true
	case from == MBAR && to == HPA:
		return value, true

	case from == CNT_M2 && to == CNT_HA:
		return value * 10000.0, true
	case from == CNT_HA && to == CNT_M2:
		return value * 0.0001, true

	case from == KG_M2 && to == KG_HA:
		return value * 10000.0, true
	case from == KG_HA && to == KG_M2:
		return value * 0.0001, true

	case from == MJ_M2D1 && to == KJ_M2D1:
		return value * 1000.0, true
	case from == KJ_M2D1 && to == MJ_M2D1:
		return value * 0.001, true
	case from == KJ_M2D1 && to == J_M2D1:
		return value * 1000.0, true
	case from == J_M2D1 && to == KJ_M2D1:
		return value * 0.001, true
	case from == MJ_M2D1 && to == J_M2D1:
		return value * 1000000.0, true
	case from == J_M2D1 && to == MJ_M2D1:
		return value * 0.000001, true

	case from == MM && to == CM:
		return value * 0.1, true
	case from == CM && to == MM:
		return value * 10.0, true
	case from == CM && to == M:
		return value * 0.01, true
	case from == M && to == CM:
		return value * 100.0, true
	case from == MM && to == M:
		return value * 0.001, true
	case from == M && to == MM:
		return value * 1000.0, true

	case from == MM_D1 && to == CM_D1:
		return value * 0.1, true
	case from == CM_D1 && to == MM_D1:
		return value * 10.0, true
	case from == CM_D1 && to == M_D1:
		return value * 0.01, true
	case from == M_D1 && to == CM_D1:
		return value * 100.0, true
	case from == MM_D1 && to == M_D1:
		return value * 0.001, true
	case from == M_D1 && to == MM_D1:
		return value * 1000.0, true

	case from == CELSIUS && to == FAHRENHEIT:
		return value*9.0/5.0 + 32.0, true
	case from == FAHRENHEIT && to == CELSIUS:
		return (value - 32.0) * 5.0 / 9.0, true
	case from == CELSIUS && to == KELVIN:
		return value + 273.15, true
	case from == KELVIN && to == CELSIUS:
		return value - 273.15, true
	case from == FAHRENHEIT && to == KELVIN:
		return (value-32.0)*5.0/9.0 + 273.15, true
	case from == KELVIN && to == FAHRENHEIT:
		return (value-273.15)*9.0/5.0 + 32.0, true

	case from == PRC && to == NODIM:
		return value * 0.01, true
	case from == NODIM && to == PRC:
		return value * 100.0, true

	case from == DAYS && to == YEAR:
		return value / 365.0, true
	case from == YEAR && to == DAYS:
		return value * 365.0, true

	default:
		return 0, false
	}
}
