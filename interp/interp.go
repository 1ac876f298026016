// Package interp provides the interpolator contract the constraint
// processor and Ruppert refiner use for Z pre-interpolation, plus a
// transient triangular-facet implementation over a frozen copy of a
// mesh's triangles (spec.md §6's external interpolator collaborator).
// Grounded on the teacher's mesh.Mesh read-only accessor style
// (accessors only, no mutation surface) and re-purposed here as an
// immutable point-in-time snapshot rather than a live view, since the
// refiner must interpolate from the pre-refinement surface even after
// it has gone on to insert its own Steiner points (spec.md §5).
package interp

import (
	"iter"
	"math"

	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
)

// barycentricTolerance absorbs floating point noise at a facet's edge
// so a query point exactly on the boundary between two facets still
// resolves to one of them.
const barycentricTolerance = 1e-9

// Mesh is the read-only surface a snapshot is built from.
type Mesh interface {
	LNext(e quadedge.DirEdge) quadedge.DirEdge
	Org(e quadedge.DirEdge) vertex.ID
	Dest(e quadedge.DirEdge) vertex.ID
	VertexAt(id vertex.ID) vertex.Vertex
	GetTriangles() iter.Seq[quadedge.DirEdge]
}

// Valuator substitutes an alternate scalar for a vertex's stored Z, for
// callers interpolating something other than elevation (spec.md §6:
// "interpolate(x, y, valuator?)"). A nil Valuator uses Vertex.Z().
type Valuator func(v vertex.Vertex) float64

// Interpolator is the external collaborator contract the refiner and
// constraint processor consume. Interpolate returns NaN on failure
// (query outside the covered region); InterpolateWithExteriorSupport
// additionally extrapolates for queries outside it.
type Interpolator interface {
	Interpolate(x, y float64, valuator Valuator) float64
	InterpolateWithExteriorSupport(x, y float64, valuator Valuator) float64
}

type facet struct {
	v [3]vertex.Vertex
}

// TriangularFacetInterpolator interpolates by locating the facet
// containing (x, y) via a linear scan and returning its barycentric
// blend. It is built once over a frozen triangle list, so it keeps
// working correctly even after the mesh it was built from is mutated
// or disposed.
type TriangularFacetInterpolator struct {
	facets []facet
}

// NewSnapshot copies every real (non-ghost) triangle currently in mesh
// into a frozen facet list.
func NewSnapshot(mesh Mesh) *TriangularFacetInterpolator {
	tfi := &TriangularFacetInterpolator{}
	for anchor := range mesh.GetTriangles() {
		e0 := anchor
		e1 := mesh.LNext(e0)
		e2 := mesh.LNext(e1)
		v0 := mesh.VertexAt(mesh.Org(e0))
		v1 := mesh.VertexAt(mesh.Org(e1))
		v2 := mesh.VertexAt(mesh.Org(e2))
		if v0.IsNullVertex() || v1.IsNullVertex() || v2.IsNullVertex() {
			continue
		}
		tfi.facets = append(tfi.facets, facet{v: [3]vertex.Vertex{v0, v1, v2}})
	}
	return tfi
}

func pointOf(v vertex.Vertex) predicate.Point {
	return predicate.Point{X: v.X(), Y: v.Y()}
}

func valueOf(v vertex.Vertex, valuator Valuator) float64 {
	if valuator != nil {
		return valuator(v)
	}
	return v.Z()
}

// Interpolate returns the barycentric blend of the facet containing
// (x, y), or NaN if no facet in the snapshot covers it.
func (tfi *TriangularFacetInterpolator) Interpolate(x, y float64, valuator Valuator) float64 {
	target := predicate.Point{X: x, Y: y}
	for _, f := range tfi.facets {
		pa, pb, pc := pointOf(f.v[0]), pointOf(f.v[1]), pointOf(f.v[2])
		area := predicate.Area(pa, pb, pc)
		if area == 0 {
			continue
		}
		w0 := predicate.Area(pb, pc, target) / area
		w1 := predicate.Area(pc, pa, target) / area
		w2 := 1 - w0 - w1
		if w0 >= -barycentricTolerance && w1 >= -barycentricTolerance && w2 >= -barycentricTolerance {
			return w0*valueOf(f.v[0], valuator) + w1*valueOf(f.v[1], valuator) + w2*valueOf(f.v[2], valuator)
		}
	}
	return math.NaN()
}

// InterpolateWithExteriorSupport behaves like Interpolate, falling
// back to the value of the single nearest snapshot vertex when (x, y)
// falls outside every facet. This is a deliberately simple
// extrapolation (nearest-neighbor rather than a plane extension of the
// nearest facet); see DESIGN.md.
func (tfi *TriangularFacetInterpolator) InterpolateWithExteriorSupport(x, y float64, valuator Valuator) float64 {
	if v := tfi.Interpolate(x, y, valuator); !math.IsNaN(v) {
		return v
	}
	if len(tfi.facets) == 0 {
		return math.NaN()
	}

	best := tfi.facets[0].v[0]
	bestDistSq := math.Inf(1)
	for _, f := range tfi.facets {
		for _, v := range f.v {
			dx, dy := v.X()-x, v.Y()-y
			d := dx*dx + dy*dy
			if d < bestDistSq {
				bestDistSq = d
				best = v
			}
		}
	}
	return valueOf(best, valuator)
}
