// Package triangle provides SimpleTriangle, a read-only view over three
// consecutive quad-edge edges around one face, with lazily computed
// circumcircle, centroid, and shortest-edge queries. Grounded on the
// teacher's types.Triangle (plain [3]VertexID) and predicates/triangle.go
// (Area2/PointInTriangle), generalized from an index-array triangle to a
// quad-edge face view per spec.md §4.I.
package triangle

import (
	"math"

	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
)

// Mesh is the minimal read-only surface SimpleTriangle needs from its
// owning TIN: topology navigation and vertex coordinate lookup.
type Mesh interface {
	LNext(e quadedge.DirEdge) quadedge.DirEdge
	Org(e quadedge.DirEdge) vertex.ID
	Dest(e quadedge.DirEdge) vertex.ID
	VertexAt(id vertex.ID) vertex.Vertex
	Thresholds() *predicate.Thresholds
}

// SimpleTriangle is a view of one face, anchored at a single directed
// edge. The other two edges are discovered via LNext, so a
// SimpleTriangle never owns storage of its own; it is cheap to build and
// safe to discard once the underlying mesh mutates.
type SimpleTriangle struct {
	mesh Mesh
	edge quadedge.DirEdge
}

// New builds a SimpleTriangle anchored at edge. edge's left face is
// assumed to be a real (non-ghost) triangle unless the caller checks
// IsGhost afterward.
func New(mesh Mesh, edge quadedge.DirEdge) SimpleTriangle {
	return SimpleTriangle{mesh: mesh, edge: edge}
}

// Edges returns the triangle's three directed edges, in CCW order
// starting from the anchor edge.
func (s SimpleTriangle) Edges() [3]quadedge.DirEdge {
	e0 := s.edge
	e1 := s.mesh.LNext(e0)
	e2 := s.mesh.LNext(e1)
	return [3]quadedge.DirEdge{e0, e1, e2}
}

// Vertices returns the triangle's three vertex handles in CCW order.
func (s SimpleTriangle) Vertices() [3]vertex.Vertex {
	edges := s.Edges()
	return [3]vertex.Vertex{
		s.mesh.VertexAt(s.mesh.Org(edges[0])),
		s.mesh.VertexAt(s.mesh.Org(edges[1])),
		s.mesh.VertexAt(s.mesh.Org(edges[2])),
	}
}

// IsGhost reports whether any vertex of this triangle is the null ghost
// sentinel closing the convex hull's unbounded face.
func (s SimpleTriangle) IsGhost() bool {
	for _, v := range s.Vertices() {
		if v.IsNullVertex() {
			return true
		}
	}
	return false
}

// points returns the three vertices as predicate.Point for geometric
// computation (ghost vertices must never reach here; callers check
// IsGhost first).
func (s SimpleTriangle) points() (a, b, c predicate.Point) {
	vs := s.Vertices()
	toPoint := func(v vertex.Vertex) predicate.Point {
		return predicate.Point{X: v.X(), Y: v.Y()}
	}
	return toPoint(vs[0]), toPoint(vs[1]), toPoint(vs[2])
}

// SignedArea returns twice the signed area of the triangle (positive for
// CCW winding).
func (s SimpleTriangle) SignedArea() float64 {
	a, b, c := s.points()
	return predicate.Area(a, b, c)
}

// Centroid returns the triangle's centroid.
func (s SimpleTriangle) Centroid() predicate.Point {
	a, b, c := s.points()
	return predicate.Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
}

// Circumcircle computes (not caches across mutations) this triangle's
// circumscribed circle. Recomputing on demand rather than memoizing
// keyed by edge index avoids returning a stale circle after the mesh
// around this edge has been flipped or refined.
func (s SimpleTriangle) Circumcircle() (predicate.Circumcircle, bool) {
	a, b, c := s.points()
	return predicate.ComputeCircumcircle(a, b, c, s.mesh.Thresholds(), nil)
}

// ShortestEdgeLength returns the length of the triangle's shortest side.
func (s SimpleTriangle) ShortestEdgeLength() float64 {
	vs := s.Vertices()
	d0 := vs[0].Distance(vs[1])
	d1 := vs[1].Distance(vs[2])
	d2 := vs[2].Distance(vs[0])
	return math.Min(d0, math.Min(d1, d2))
}

// LongestEdgeLength returns the length of the triangle's longest side.
func (s SimpleTriangle) LongestEdgeLength() float64 {
	vs := s.Vertices()
	d0 := vs[0].Distance(vs[1])
	d1 := vs[1].Distance(vs[2])
	d2 := vs[2].Distance(vs[0])
	return math.Max(d0, math.Max(d1, d2))
}

// RadiusEdgeRatio returns circumradius / shortest-edge-length, the
// standard mesh-quality measure Ruppert refinement drives below a
// threshold (spec.md §4.J).
func (s SimpleTriangle) RadiusEdgeRatio() (float64, bool) {
	circ, ok := s.Circumcircle()
	if !ok {
		return math.Inf(1), false
	}
	shortest := s.ShortestEdgeLength()
	if shortest == 0 {
		return math.Inf(1), false
	}
	return math.Sqrt(circ.RSq) / shortest, true
}

// MinAngle returns the smallest interior angle of the triangle, in
// radians, used to detect "seditious" triangles with a critically small
// corner (spec.md §4.J).
func (s SimpleTriangle) MinAngle() float64 {
	vs := s.Vertices()
	angle := func(p, q, r vertex.Vertex) float64 {
		ux, uy := q.X()-p.X(), q.Y()-p.Y()
		vx, vy := r.X()-p.X(), r.Y()-p.Y()
		dot := ux*vx + uy*vy
		cross := ux*vy - uy*vx
		return math.Abs(math.Atan2(cross, dot))
	}
	a0 := angle(vs[0], vs[1], vs[2])
	a1 := angle(vs[1], vs[2], vs[0])
	a2 := angle(vs[2], vs[0], vs[1])
	return math.Min(a0, math.Min(a1, a2))
}

// Anchor returns the directed edge this view was built from.
func (s SimpleTriangle) Anchor() quadedge.DirEdge {
	return s.edge
}

// Index is a stable identifier for iteration/deduplication: the base
// quartet index of the anchor edge. Two SimpleTriangle values built
// from different edges of the same face can still compare unequal by
// Index; callers that need face identity should canonicalize by
// choosing, e.g., the smallest-index edge among the face's three.
func (s SimpleTriangle) Index() int {
	return int(s.edge) / 4
}
