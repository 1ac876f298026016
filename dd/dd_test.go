package dd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 0.1, 123456789.123456, math.Pi, 1e300, -1e-300}
	for _, v := range values {
		got := FromFloat64(v).Float64()
		require.Equal(t, v, got, "round trip for %v", v)
	}
}

func TestAddSubMulDiv(t *testing.T) {
	a := FromFloat64(1.0)
	b := FromFloat64(3.0)

	sum := Add(a, b)
	require.InDelta(t, 4.0, sum.Float64(), 1e-15)

	diff := Sub(a, b)
	require.InDelta(t, -2.0, diff.Float64(), 1e-15)

	prod := Mul(a, b)
	require.InDelta(t, 3.0, prod.Float64(), 1e-15)

	quot := Div(a, b)
	require.InDelta(t, 1.0/3.0, quot.Float64(), 1e-15)
}

func TestCmp(t *testing.T) {
	require.Equal(t, 0, Cmp(FromFloat64(1), FromFloat64(1)))
	require.Equal(t, -1, Cmp(FromFloat64(1), FromFloat64(2)))
	require.Equal(t, 1, Cmp(FromFloat64(2), FromFloat64(1)))
}

func TestPredicates(t *testing.T) {
	require.True(t, Pair{}.IsZero())
	require.False(t, FromFloat64(1).IsZero())
	require.True(t, Pair{Hi: math.NaN()}.IsNaN())
	require.True(t, Pair{Hi: math.Inf(1)}.IsInf())
	require.True(t, FromFloat64(5).IsFinite())
}

func TestExtendedPrecisionBeatsFloat64(t *testing.T) {
	// Plain float64 addition of 1e16 and 1 rounds away the 1 entirely
	// (1e16+1 == 1e16 in float64). The double-double Add keeps the
	// remainder in Lo, so subtracting 1e16 back out recovers it.
	big := FromFloat64(1e16)
	one := FromFloat64(1)

	naive := 1e16 + 1.0
	require.Equal(t, 1e16, naive, "float64 addition should have lost the 1")

	sum := Add(big, one)
	recovered := Sub(sum, big)
	require.InDelta(t, 1.0, recovered.Float64(), 1e-9)
}

func TestTwoDiffOfProducts(t *testing.T) {
	got := TwoDiffOfProducts(3, 4, 1, 2)
	require.Equal(t, 10.0, got.Float64())
}
