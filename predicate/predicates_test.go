package predicate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustThresholds(t *testing.T, spacing float64) *Thresholds {
	t.Helper()
	th, err := NewThresholds(spacing)
	require.NoError(t, err)
	return th
}

func TestNewThresholdsRejectsInvalid(t *testing.T) {
	_, err := NewThresholds(0)
	require.Error(t, err)
	_, err = NewThresholds(-1)
	require.Error(t, err)
	_, err = NewThresholds(math.NaN())
	require.Error(t, err)
}

func TestOrientationSign(t *testing.T) {
	th := mustThresholds(t, 1)
	a := Point{0, 0}
	b := Point{1, 0}
	c := Point{0, 1}

	require.Equal(t, 1, OrientationTest(a, b, c, th, nil))
	require.Equal(t, -1, OrientationTest(c, b, a, th, nil))

	// orientation(a,b,c) == -orientation(b,a,c) — testable property #5.
	require.Equal(t, -OrientationTest(a, b, c, th, nil), OrientationTest(b, a, c, th, nil))
}

func TestOrientationCollinear(t *testing.T) {
	th := mustThresholds(t, 1)
	a := Point{0, 0}
	b := Point{1, 1}
	c := Point{2, 2}
	require.Equal(t, 0, OrientationTest(a, b, c, th, nil))
}

func TestOrientationPromotesNearCollinear(t *testing.T) {
	th := mustThresholds(t, 1)
	diag := &Diagnostics{}

	// Points nearly collinear at a scale far finer than the threshold.
	a := Point{0, 0}
	b := Point{1, 0}
	c := Point{0.5, 1e-20}

	OrientationTest(a, b, c, th, diag)
	require.Equal(t, int64(1), diag.OrientationDD, "near-collinear case should promote to double-double")
}

func TestInCircleRightTriangle(t *testing.T) {
	th := mustThresholds(t, 1)
	a := Point{0, 0}
	b := Point{3, 0}
	c := Point{0, 4}

	circ, ok := ComputeCircumcircle(a, b, c, th, nil)
	require.True(t, ok)
	require.InDelta(t, 1.5, circ.Center.X, 1e-9)
	require.InDelta(t, 2.0, circ.Center.Y, 1e-9)
	require.InDelta(t, 2.5*2.5, circ.RSq, 1e-9)

	inside := Point{1.5, 2}
	require.Equal(t, 1, InCircleTest(a, b, c, inside, th, nil))

	outside := Point{100, 100}
	require.Equal(t, -1, InCircleTest(a, b, c, outside, th, nil))
}

func TestCircumcircleCollinearIsInfinite(t *testing.T) {
	th := mustThresholds(t, 1)
	a := Point{0, 0}
	b := Point{1, 0}
	c := Point{2, 0}

	circ, ok := ComputeCircumcircle(a, b, c, th, nil)
	require.False(t, ok)
	require.True(t, math.IsInf(circ.RSq, 1))
}
