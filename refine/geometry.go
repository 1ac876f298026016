package refine

import (
	"math"

	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/triangle"
	"github.com/iceisfun/gocdt/vertex"
)

// candidateTriangle wraps a SimpleTriangle with its shortest edge
// already located, since both the off-center construction and the
// seditious-triangle check need it.
type candidateTriangle struct {
	tri         triangle.SimpleTriangle
	shortestIdx int
	shortestLen float64
}

func analyzeTriangle(tri triangle.SimpleTriangle) candidateTriangle {
	vs := tri.Vertices()
	lens := [3]float64{vs[0].Distance(vs[1]), vs[1].Distance(vs[2]), vs[2].Distance(vs[0])}
	best := 0
	for i := 1; i < 3; i++ {
		if lens[i] < lens[best] {
			best = i
		}
	}
	return candidateTriangle{tri: tri, shortestIdx: best, shortestLen: lens[best]}
}

func (c candidateTriangle) shortestEdgeEndpoints() (vertex.Vertex, vertex.Vertex) {
	vs := c.tri.Vertices()
	return vs[c.shortestIdx], vs[(c.shortestIdx+1)%3]
}

func (c candidateTriangle) shortestEdgeEndpointIDs() (vertex.ID, vertex.ID) {
	a, b := c.shortestEdgeEndpoints()
	return a.Index(), b.Index()
}

// offCenterPoint computes Shewchuk's off-center: starting from the
// shortest edge's midpoint, march toward the circumcenter by the
// smaller of the distance to it and beta times the shortest edge's
// length (spec.md §4.J). Returns false if the triangle is collinear
// (no circumcenter) or the circumcenter coincides with the midpoint.
func offCenterPoint(c candidateTriangle, beta float64) (predicate.Point, bool) {
	circ, ok := c.tri.Circumcircle()
	if !ok {
		return predicate.Point{}, false
	}

	a, b := c.shortestEdgeEndpoints()
	m := predicate.Point{X: (a.X() + b.X()) / 2, Y: (a.Y() + b.Y()) / 2}

	toCenterX, toCenterY := circ.Center.X-m.X, circ.Center.Y-m.Y
	distToCenter := math.Hypot(toCenterX, toCenterY)
	if distToCenter == 0 || math.IsNaN(distToCenter) || math.IsInf(distToCenter, 0) {
		return predicate.Point{}, false
	}

	d := math.Min(distToCenter, beta*c.shortestLen)
	ux, uy := toCenterX/distToCenter, toCenterY/distToCenter
	return predicate.Point{X: m.X + d*ux, Y: m.Y + d*uy}, true
}

// isEncroached reports whether witness lies strictly inside segment
// (a,b)'s diametral disk (spec.md §4.J phase 1).
func isEncroached(a, b, witness predicate.Point) bool {
	mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
	radius := math.Hypot(b.X-a.X, b.Y-a.Y) / 2
	dx, dy := witness.X-mx, witness.Y-my
	return dx*dx+dy*dy < radius*radius
}

// shellIndexAt returns the concentric shell index of a point at
// distance dist from a critical corner (spec.md §4.J: "0 if |p-z| <=
// epsilon; else floor(log2(|p-z|) + 1/2)").
func shellIndexAt(dist float64) int {
	if dist <= shellEpsilon {
		return 0
	}
	return int(math.Floor(math.Log2(dist) + 0.5))
}
