// Package interpolate implements ascending-X linear interpolation with
// configurable extrapolation, grounded on original_source's
// mathutils/Interpolator.java and InterpolatorExtrapolationType.java.
//
// Interpolators feed the kernel's interpolator-extraction operation
// (sim/simx's GetInterpolatorBySimIDVarName): a dense day-indexed series
// extracted from a dynamic variable becomes an Interpolator's (x, y) pairs.
package interpolate

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/robknapen/WISS-Framework/sim/unit"
)

// ExtrapolationType selects what Interpolate does for an x outside
// [XMin(), XMax()].
type ExtrapolationType int

const (
	// NoExtrapolation panics if the query falls outside the known range.
	NoExtrapolation ExtrapolationType = iota
	// ConstantExtrapolation clamps to the Y value at the nearest boundary.
	ConstantExtrapolation
	// SlopeExtrapolation extends the boundary segment's slope.
	SlopeExtrapolation
)

func (t ExtrapolationType) String() string {
	switch t {
	case NoExtrapolation:
		return "NoExtrapolation"
	case ConstantExtrapolation:
		return "ConstantExtrapolation"
	case SlopeExtrapolation:
		return "SlopeExtrapolation"
	default:
		return "Unknown"
	}
}

// Interpolator holds an ascending-X point set and interpolates/extrapolates
// linearly between them. Not safe for concurrent use; the kernel is
// single-threaded (spec §5).
type Interpolator struct {
	id                string
	extrapolationType ExtrapolationType
	xUnit, yUnit      unit.ScientificUnit

	x, y, s []float64 // parallel arrays; s is the per-segment slope cache
	slopesValid        bool
	previousSegmentIndex int

	swapXY bool // when true, Add(dayIndex, value) stores (value, dayIndex)
}

// New returns an empty Interpolator identified by id, with points expressed
// natively in xUnit/yUnit and NoExtrapolation as the default policy.
func New(id string, xUnit, yUnit unit.ScientificUnit) *Interpolator {
	return &Interpolator{
		id:                id,
		extrapolationType: NoExtrapolation,
		xUnit:             xUnit,
		yUnit:             yUnit,
	}
}

// NewSwapped returns an Interpolator in XY-swap mode: Add(dayIndex, value)
// stores the point as (value, dayIndex), skipping a point whose swapped X
// repeats the previous point's X. Used for cases like development-stage crossings,
// where the value (not the day index) must become the independent variable.
func NewSwapped(id string, xUnit, yUnit unit.ScientificUnit) *Interpolator {
	i := New(id, xUnit, yUnit)
	i.swapXY = true
	return i
}

// FromMatrix builds an Interpolator from an n x 2 matrix of (x, y) pairs,
// mirroring Interpolator.create(RealMatrix, units) in the Java source.
func FromMatrix(id string, m mat.Matrix, xUnit, yUnit unit.ScientificUnit) *Interpolator {
	r, c := m.Dims()
	if c != 2 {
		panic(fmt.Sprintf("interpolate.FromMatrix : %s expects a matrix with 2 columns (x, y), got %d", id, c))
	}
	ip := New(id, xUnit, yUnit)
	for row := 0; row < r; row++ {
		ip.Add(m.At(row, 0), m.At(row, 1))
	}
	return ip
}

// ID returns the interpolator's identifier, used in panic messages.
func (ip *Interpolator) ID() string { return ip.id }

// GetExtrapolationType returns the current extrapolation policy.
func (ip *Interpolator) GetExtrapolationType() ExtrapolationType { return ip.extrapolationType }

// SetExtrapolationType installs a new extrapolation policy.
func (ip *Interpolator) SetExtrapolationType(t ExtrapolationType) { ip.extrapolationType = t }

// XUnit and YUnit report the native units points are stored in.
func (ip *Interpolator) XUnit() unit.ScientificUnit { return ip.xUnit }
func (ip *Interpolator) YUnit() unit.ScientificUnit { return ip.yUnit }

// Count returns the number of points currently held.
func (ip *Interpolator) Count() int { return len(ip.x) }

// Add appends a point. In swap mode, x is the day index and y is the value;
// the stored pair is (y, x), and the point is silently dropped when y
// repeats the most recently stored X (duplicate swapped-X values collapse
// to the first occurrence). Outside swap mode x must be strictly greater
// than every x already present.
func (ip *Interpolator) Add(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		panic(fmt.Sprintf("interpolate.Interpolator.Add : %s got a NaN coordinate (x=%g, y=%g)", ip.id, x, y))
	}

	storeX, storeY := x, y
	if ip.swapXY {
		storeX, storeY = y, x
	}

	if len(ip.x) > 0 {
		last := ip.x[len(ip.x)-1]
		if ip.swapXY {
			if storeX == last {
				return
			}
			if storeX < last {
				panic(fmt.Sprintf("interpolate.Interpolator.Add : %s swapped X must be ascending (got %g after %g)", ip.id, storeX, last))
			}
		} else if storeX <= last {
			panic(fmt.Sprintf("interpolate.Interpolator.Add : %s requires strictly ascending X (got %g after %g)", ip.id, storeX, last))
		}
	} else {
		ip.previousSegmentIndex = 0
	}

	ip.x = append(ip.x, storeX)
	ip.y = append(ip.y, storeY)
	ip.slopesValid = false
}

// X and Y return the stored coordinate at index, range-checked.
func (ip *Interpolator) X(index int) float64 {
	ip.checkIndex("X", index)
	return ip.x[index]
}

func (ip *Interpolator) Y(index int) float64 {
	ip.checkIndex("Y", index)
	return ip.y[index]
}

func (ip *Interpolator) checkIndex(method string, index int) {
	if index < 0 || index >= len(ip.x) {
		panic(fmt.Sprintf("interpolate.Interpolator.%s : %s index %d out of range [0,%d)", method, ip.id, index, len(ip.x)))
	}
}

// XMin and XMax return the first and last stored X, requiring at least one
// point.
func (ip *Interpolator) XMin() float64 {
	ip.requirePoints("XMin", 1)
	return ip.x[0]
}

func (ip *Interpolator) XMax() float64 {
	ip.requirePoints("XMax", 1)
	return ip.x[len(ip.x)-1]
}

// InXRange reports whether x falls within [XMin(), XMax()]; requires at
// least two points (a single point has no interpolation range).
func (ip *Interpolator) InXRange(x float64) bool {
	ip.requirePoints("InXRange", 2)
	return x >= ip.x[0] && x <= ip.x[len(ip.x)-1]
}

func (ip *Interpolator) requirePoints(method string, n int) {
	if len(ip.x) < n {
		panic(fmt.Sprintf("interpolate.Interpolator.%s : %s has %d point(s), needs at least %d", method, ip.id, len(ip.x), n))
	}
}

func (ip *Interpolator) ensureSlopesValid() {
	if ip.slopesValid {
		return
	}
	ip.s = make([]float64, max(0, len(ip.x)-1))
	for i := 0; i < len(ip.s); i++ {
		dx := ip.x[i+1] - ip.x[i]
		ip.s[i] = (ip.y[i+1] - ip.y[i]) / dx
	}
	ip.slopesValid = true
}

// Interpolate returns the linearly interpolated (or extrapolated) Y for x,
// both expressed in the interpolator's native units.
func (ip *Interpolator) Interpolate(x float64) float64 {
	ip.requirePoints("Interpolate", 2)
	ip.ensureSlopesValid()

	if x < ip.x[0] {
		return ip.extrapolate(x, 0)
	}
	if x > ip.x[len(ip.x)-1] {
		return ip.extrapolate(x, len(ip.s)-1)
	}

	idx := ip.findSegment(x)
	ip.previousSegmentIndex = idx
	return ip.y[idx] + ip.s[idx]*(x-ip.x[idx])
}

// InterpolateUnit converts x from xUnit into the interpolator's native X
// unit, interpolates, and converts the result from the native Y unit into
// yUnit.
func (ip *Interpolator) InterpolateUnit(x float64, xUnit, yUnit unit.ScientificUnit) float64 {
	nativeX := unit.Convert(ip.id, x, xUnit, ip.xUnit)
	nativeY := ip.Interpolate(nativeX)
	return unit.Convert(ip.id, nativeY, ip.yUnit, yUnit)
}

func (ip *Interpolator) extrapolate(x float64, boundarySegment int) float64 {
	switch ip.extrapolationType {
	case NoExtrapolation:
		panic(fmt.Sprintf("interpolate.Interpolator.Interpolate : %s has no extrapolation policy and x=%g falls outside [%g,%g]", ip.id, x, ip.x[0], ip.x[len(ip.x)-1]))
	case ConstantExtrapolation:
		if x < ip.x[0] {
			return ip.y[0]
		}
		return ip.y[len(ip.y)-1]
	case SlopeExtrapolation:
		anchor := 0
		if x > ip.x[len(ip.x)-1] {
			anchor = len(ip.x) - 1
		}
		return ip.y[anchor] + ip.s[boundarySegment]*(x-ip.x[anchor])
	default:
		panic(fmt.Sprintf("interpolate.Interpolator.Interpolate : %s has an unrecognized extrapolation type %d", ip.id, ip.extrapolationType))
	}
}

// findSegment locates the segment index i such that x[i] <= x <= x[i+1],
// trying the cached segment and its neighbour before falling back to binary
// search — the access pattern of repeated nearby queries (a module walking
// forward day by day) is the common case.
func (ip *Interpolator) findSegment(x float64) int {
	n := len(ip.s)

	if i := ip.previousSegmentIndex; i >= 0 && i < n && x >= ip.x[i] && x <= ip.x[i+1] {
		return i
	}
	if i := ip.previousSegmentIndex + 1; i >= 0 && i < n && x >= ip.x[i] && x <= ip.x[i+1] {
		return i
	}
	for i, xi := range ip.x {
		if xi == x {
			if i == len(ip.x)-1 {
				return i - 1
			}
			return i
		}
	}

	i := sort.Search(len(ip.x), func(i int) bool { return ip.x[i] > x })
	return i - 1
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
