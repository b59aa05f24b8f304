// Package unit defines the closed catalog of scientific unit tags used
// throughout the WISS kernel and the pairwise conversion function between
// them. It has no dependency on the rest of the kernel: callers pass plain
// float64 values and ScientificUnit tags.
package unit

import "fmt"

// ScientificUnit is a closed enumeration of the unit tags the kernel knows
// how to convert between. NA marks "no unit" / not-applicable, used for
// non-numeric ParXChange payloads and as a poison value that always fails
// conversion.
type ScientificUnit int

const (
	NA ScientificUnit = iota
	NODIM
	NODIM_VOLUME
	PRC
	HPA
	MBAR
	CNT_M2
	CNT_HA
	KG_M2
	KG_HA
	CELSIUS
	FAHRENHEIT
	KELVIN
	MJ_M2D1
	KJ_M2D1
	J_M2D1
	MM
	CM
	M
	MM_D1
	CM_D1
	M_D1
	M_S
	ANGULARDD
	HOUR
	DATE
	DATEREL
	DAYS
	PER_DAY
	DAYOFYEAR
	YEAR
)

var captions = map[ScientificUnit]string{
	NA:           "not applicable",
	NODIM:        "dimensionless",
	NODIM_VOLUME: "dimensionless (volume fraction)",
	PRC:          "percent",
	HPA:          "hectopascal",
	MBAR:         "millibar",
	CNT_M2:       "count per square meter",
	CNT_HA:       "count per hectare",
	KG_M2:        "kilogram per square meter",
	KG_HA:        "kilogram per hectare",
	CELSIUS:      "degree Celsius",
	FAHRENHEIT:   "degree Fahrenheit",
	KELVIN:       "Kelvin",
	MJ_M2D1:      "megajoule per square meter per day",
	KJ_M2D1:      "kilojoule per square meter per day",
	J_M2D1:       "joule per square meter per day",
	MM:           "millimeter",
	CM:           "centimeter",
	M:            "meter",
	MM_D1:        "millimeter per day",
	CM_D1:        "centimeter per day",
	M_D1:         "meter per day",
	M_S:          "meter per second",
	ANGULARDD:    "decimal degrees",
	HOUR:         "hour",
	DATE:         "calendar date",
	DATEREL:      "date relative to start",
	DAYS:         "days",
	PER_DAY:      "per day",
	DAYOFYEAR:    "day of year",
	YEAR:         "year",
}

// Caption returns the human-readable caption for u. Panics on an unrecognized
// tag: the catalog is closed, so an unknown value means a programming error,
// not a runtime possibility.
func Caption(u ScientificUnit) string {
	c, ok := captions[u]
	if !ok {
		panic(fmt.Sprintf("unit.Caption : unrecognized ScientificUnit value %d", u))
	}
	return c
}

// FromCaption looks up a ScientificUnit by its caption, case-sensitive exact
// match. Returns ok=false when no unit has that caption.
func FromCaption(txt string) (ScientificUnit, bool) {
	for u, c := range captions {
		if c == txt {
			return u, true
		}
	}
	return NA, false
}

func (u ScientificUnit) String() string {
	return Caption(u)
}
