package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/robknapen/WISS-Framework/sim/unit"
)

func TestInterpolator_Interpolate_MidSegment_IsLinear(t *testing.T) {
	ip := New("temp-curve", unit.DAYS, unit.CELSIUS)
	ip.Add(0, 0)
	ip.Add(10, 20)
	assert.InDelta(t, 10.0, ip.Interpolate(5), 1e-9)
}

func TestInterpolator_Interpolate_ExactPoint_ReturnsStoredY(t *testing.T) {
	ip := New("t", unit.DAYS, unit.CELSIUS)
	ip.Add(0, 1)
	ip.Add(1, 2)
	ip.Add(2, 4)
	assert.Equal(t, 2.0, ip.Interpolate(1))
}

func TestInterpolator_Add_NonAscendingX_Panics(t *testing.T) {
	ip := New("t", unit.DAYS, unit.CELSIUS)
	ip.Add(0, 0)
	ip.Add(5, 5)
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a non-ascending x")
		}
	}()
	ip.Add(5, 6)
}

func TestInterpolator_Add_NaN_Panics(t *testing.T) {
	ip := New("t", unit.DAYS, unit.CELSIUS)
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a NaN coordinate")
		}
	}()
	ip.Add(0, nanFloat())
}

func nanFloat() float64 {
	var f float64
	return f / f
}

func TestInterpolator_Interpolate_OutsideRange_NoExtrapolation_Panics(t *testing.T) {
	ip := New("t", unit.DAYS, unit.CELSIUS)
	ip.Add(0, 0)
	ip.Add(10, 10)
	defer func() {
		if recover() == nil {
			t.Error("expected panic interpolating outside range with NoExtrapolation")
		}
	}()
	ip.Interpolate(20)
}

func TestInterpolator_Interpolate_ConstantExtrapolation_Clamps(t *testing.T) {
	ip := New("t", unit.DAYS, unit.CELSIUS)
	ip.Add(0, 5)
	ip.Add(10, 15)
	ip.SetExtrapolationType(ConstantExtrapolation)
	assert.Equal(t, 5.0, ip.Interpolate(-5))
	assert.Equal(t, 15.0, ip.Interpolate(20))
}

func TestInterpolator_Interpolate_SlopeExtrapolation_ExtendsSlope(t *testing.T) {
	ip := New("t", unit.DAYS, unit.CELSIUS)
	ip.Add(0, 0)
	ip.Add(10, 10)
	ip.SetExtrapolationType(SlopeExtrapolation)
	assert.InDelta(t, 20.0, ip.Interpolate(20), 1e-9)
	assert.InDelta(t, -5.0, ip.Interpolate(-5), 1e-9)
}

func TestInterpolator_NewSwapped_CollapsesDuplicateSwappedX(t *testing.T) {
	ip := NewSwapped("stage", unit.NODIM, unit.DAYS)
	ip.Add(0, 1.0)  // stored as (1.0, 0)
	ip.Add(1, 1.0)  // duplicate swapped X (1.0); dropped
	ip.Add(2, 2.0)  // stored as (2.0, 2)
	assert.Equal(t, 2, ip.Count())
	assert.Equal(t, 1.0, ip.X(0))
	assert.Equal(t, 2.0, ip.X(1))
}

func TestInterpolator_InterpolateUnit_ConvertsBothEnds(t *testing.T) {
	ip := New("t", unit.M, unit.CM)
	ip.Add(0, 0)
	ip.Add(1, 100)
	// x given in CM (native is M): 50cm = 0.5m -> interpolate -> native Y (cm) -> requested unit M
	got := ip.InterpolateUnit(50, unit.CM, unit.M)
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestFromMatrix_BuildsFromRows(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		0, 0,
		5, 50,
		10, 100,
	})
	ip := FromMatrix("m", m, unit.DAYS, unit.NODIM)
	assert.Equal(t, 3, ip.Count())
	assert.InDelta(t, 75.0, ip.Interpolate(7.5), 1e-9)
}

func TestFromMatrix_WrongColumnCount_Panics(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{0, 0, 0, 1, 1, 1})
	defer func() {
		if recover() == nil {
			t.Error("expected panic on a non-2-column matrix")
		}
	}()
	FromMatrix("m", m, unit.DAYS, unit.NODIM)
}

func TestInterpolator_InXRange(t *testing.T) {
	ip := New("t", unit.DAYS, unit.NODIM)
	ip.Add(0, 0)
	ip.Add(10, 1)
	assert.True(t, ip.InXRange(5))
	assert.False(t, ip.InXRange(11))
}

func TestInterpolator_X_OutOfRange_Panics(t *testing.T) {
	ip := New("t", unit.DAYS, unit.NODIM)
	ip.Add(0, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic indexing out of range")
		}
	}()
	ip.X(5)
}
