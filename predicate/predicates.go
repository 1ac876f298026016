package predicate

import (
	"math"

	"github.com/iceisfun/gocdt/dd"
)

// Area returns the signed double area of triangle (a,b,c):
// (bx-ax)(cy-ay) - (by-ay)(cx-ax). Positive when a,b,c wind CCW.
func Area(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Orientation returns a value with the same sign as the signed area of
// (a,b,c), computed in float64 first and promoted to double-double when
// the fast result falls inside t.HalfPlaneThreshold. Diagnostics (if
// non-nil) are updated with the call and any promotion.
func Orientation(a, b, c Point, t *Thresholds, diag *Diagnostics) float64 {
	if diag != nil {
		diag.OrientationCalls++
	}

	area := Area(a, b, c)
	if math.Abs(area) > t.HalfPlaneThreshold {
		return area
	}

	if diag != nil {
		diag.OrientationDD++
	}
	return orientationExact(a, b, c).Float64()
}

func orientationExact(a, b, c Point) dd.Pair {
	// (bx-ax)(cy-ay) - (by-ay)(cx-ax) as a single error-free product
	// difference, so cancellation near collinearity does not erase sign.
	return dd.TwoDiffOfProducts(b.X-a.X, c.Y-a.Y, b.Y-a.Y, c.X-a.X)
}

// OrientationTest collapses Orientation to {-1, 0, +1}.
func OrientationTest(a, b, c Point, t *Thresholds, diag *Diagnostics) int {
	v := Orientation(a, b, c, t, diag)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// HalfPlane returns the signed position of c relative to the directed line
// a->b: positive when c is to the left. It is the same computation as
// Orientation; the distinct name follows spec.md §4.B's vocabulary for
// call sites that are testing a half-plane membership rather than a
// triangle winding.
func HalfPlane(a, b, c Point, t *Thresholds, diag *Diagnostics) float64 {
	return Orientation(a, b, c, t, diag)
}

// InCircle returns a value positive when d lies strictly inside the
// circumcircle of (a,b,c) (assumed CCW), negative when outside, and near
// zero on the circle. Promotes to double-double under InCircleThreshold.
func InCircle(a, b, c, d Point, t *Thresholds, diag *Diagnostics) float64 {
	if diag != nil {
		diag.InCircleCalls++
	}

	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	ad2 := adx*adx + ady*ady
	bd2 := bdx*bdx + bdy*bdy
	cd2 := cdx*cdx + cdy*cdy

	det := ad2*(bdx*cdy-bdy*cdx) -
		bd2*(adx*cdy-ady*cdx) +
		cd2*(adx*bdy-ady*bdx)

	if math.Abs(det) > t.InCircleThreshold {
		return det
	}

	if diag != nil {
		diag.InCircleDD++
	}
	return inCircleExact(a, b, c, d).Float64()
}

func inCircleExact(a, b, c, d Point) dd.Pair {
	ax, ay := dd.FromFloat64(a.X-d.X), dd.FromFloat64(a.Y-d.Y)
	bx, by := dd.FromFloat64(b.X-d.X), dd.FromFloat64(b.Y-d.Y)
	cx, cy := dd.FromFloat64(c.X-d.X), dd.FromFloat64(c.Y-d.Y)

	ad2 := dd.Add(dd.Mul(ax, ax), dd.Mul(ay, ay))
	bd2 := dd.Add(dd.Mul(bx, bx), dd.Mul(by, by))
	cd2 := dd.Add(dd.Mul(cx, cx), dd.Mul(cy, cy))

	bcDet := dd.Sub(dd.Mul(bx, cy), dd.Mul(by, cx))
	acDet := dd.Sub(dd.Mul(ax, cy), dd.Mul(ay, cx))
	abDet := dd.Sub(dd.Mul(ax, by), dd.Mul(ay, bx))

	term1 := dd.Mul(ad2, bcDet)
	term2 := dd.Mul(bd2, acDet)
	term3 := dd.Mul(cd2, abDet)

	return dd.Sub(dd.Add(term1, term3), term2)
}

// InCircleTest collapses InCircle to {-1, 0, +1}.
func InCircleTest(a, b, c, d Point, t *Thresholds, diag *Diagnostics) int {
	v := InCircle(a, b, c, d, t, diag)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Circumcircle is the center and squared radius of a triangle's
// circumscribed circle. RSq == +Inf signals collinear/degenerate input.
type Circumcircle struct {
	Center Point
	RSq    float64
}

// ComputeCircumcircle fills circ with the circumcenter and r² of (a,b,c).
// It returns false (and sets circ.RSq to +Inf) when the three points are
// collinear within threshold.
func ComputeCircumcircle(a, b, c Point, t *Thresholds, diag *Diagnostics) (Circumcircle, bool) {
	if diag != nil {
		diag.CircumcircleCalls++
	}

	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) <= t.DelaunayThreshold {
		return Circumcircle{RSq: math.Inf(1)}, false
	}

	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y

	ux := (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d
	uy := (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d

	center := Point{X: ux, Y: uy}
	dx, dy := a.X-ux, a.Y-uy
	return Circumcircle{Center: center, RSq: dx*dx + dy*dy}, true
}
