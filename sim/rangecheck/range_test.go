package rangecheck

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInRangeFloat_InclusiveBounds(t *testing.T) {
	b := Bounds{0, 10, true, true}
	assert.True(t, InRangeFloat(0, b))
	assert.True(t, InRangeFloat(10, b))
	assert.False(t, InRangeFloat(-0.01, b))
	assert.False(t, InRangeFloat(10.01, b))
}

func TestInRangeFloat_Positive_ExcludesZero(t *testing.T) {
	b := BoundsFor(Positive)
	assert.False(t, InRangeFloat(0, b))
	assert.False(t, InRangeFloat(minPositiveNormal, b)) // the sentinel bound itself is exclusive
	assert.True(t, InRangeFloat(1e6, b))
}

func TestInRangeFloat_Negative_ExcludesZero(t *testing.T) {
	b := BoundsFor(Negative)
	assert.False(t, InRangeFloat(0, b))
	assert.True(t, InRangeFloat(-1.0, b))
}

func TestInRangeFloat_TempCelsius_LowerBound(t *testing.T) {
	b := BoundsFor(TempCelsius)
	assert.True(t, InRangeFloat(-273.15, b))
	assert.False(t, InRangeFloat(-273.16, b))
}

func TestInRangeFloat_NaNValue_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for NaN value")
		}
	}()
	InRangeFloat(math.NaN(), Bounds{0, 1, true, true})
}

func TestBoundsFor_UnknownPreset_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unrecognized range type")
		}
	}()
	BoundsFor(RangeType(999))
}

func TestEnsureRange_ClampsToBounds(t *testing.T) {
	assert.Equal(t, 0.0, EnsureRange(-5, 0, 10))
	assert.Equal(t, 10.0, EnsureRange(15, 0, 10))
	assert.Equal(t, 5.0, EnsureRange(5, 0, 10))
}

func TestSafeExpr_Finite_ReturnsValue(t *testing.T) {
	assert.Equal(t, 4.2, SafeExpr(4.2))
}

func TestSafeExpr_PositiveInfinity_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for +Inf")
		}
	}()
	SafeExpr(math.Inf(1))
}

func TestInRangeDate_InclusiveBounds(t *testing.T) {
	d := func(y, m, day int) time.Time { return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC) }
	assert.True(t, InRangeDate(d(2020, 1, 1), d(2020, 1, 1), d(2020, 1, 3)))
	assert.True(t, InRangeDate(d(2020, 1, 3), d(2020, 1, 1), d(2020, 1, 3)))
	assert.False(t, InRangeDate(d(2019, 12, 31), d(2020, 1, 1), d(2020, 1, 3)))
}
