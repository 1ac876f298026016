// Package walk implements stochastic point location: starting from a
// directed edge, it walks face to face toward a target point, at each
// step crossing whichever bounding edge the target lies outside of.
// Randomizing the tie-break between two candidate exit edges (per
// spec.md §4.F) avoids the worst-case cycling that a fixed
// left-to-right scan can fall into on degenerate inputs. Grounded on
// the teacher's cdt/locate.go Locator (triangle-array walk with a
// deleted/visited guard), re-expressed over quad-edge topology.
package walk

import (
	"fmt"
	"math/rand"

	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
)

// Mesh is the topology and geometry surface the walk needs.
type Mesh interface {
	LNext(e quadedge.DirEdge) quadedge.DirEdge
	Org(e quadedge.DirEdge) vertex.ID
	Dest(e quadedge.DirEdge) vertex.ID
	VertexAt(id vertex.ID) vertex.Vertex
}

// Diagnostics counts steps and random tie-breaks taken by one Walk
// call, plus how many walks ran and how many of those exited the real
// mesh into a ghost-apex face (spec.md §4.F).
type Diagnostics struct {
	Steps         int
	TieBreaks     int
	Walks         int
	ExteriorWalks int
}

// Result describes where the walk ended.
type Result struct {
	Edge   quadedge.DirEdge // an edge of the containing face; Org(Edge) or an edge itself may equal the target
	OnEdge bool             // target lies on Edge (within the line-sign threshold)
}

// maxStepsPerVertex bounds the walk length as a multiple of a caller
// supplied vertex count estimate, guarding against an inconsistent mesh
// producing an infinite walk.
const maxStepsPerVertex = 8

// Walk locates target by face-to-face traversal starting from seed.
// rng must be non-nil; the caller controls its seed so repeated runs
// over the same mesh and target are reproducible (spec.md §4.F).
// predDiag, if non-nil, accumulates the orientation tests this walk
// performs into the caller's shared predicate.Diagnostics, so adaptive
// precision promotions get counted "per operation" across the whole
// TIN rather than only within a single call's own Diagnostics.
func Walk(mesh Mesh, th *predicate.Thresholds, seed quadedge.DirEdge, target predicate.Point, rng *rand.Rand, vertexCountHint int, predDiag *predicate.Diagnostics) (Result, Diagnostics, error) {
	if rng == nil {
		return Result{}, Diagnostics{}, fmt.Errorf("walk: rng must not be nil")
	}

	diag := Diagnostics{Walks: 1}
	e := seed
	maxSteps := maxStepsPerVertex * (vertexCountHint + 1)

	point := func(id vertex.ID) predicate.Point {
		v := mesh.VertexAt(id)
		return predicate.Point{X: v.X(), Y: v.Y()}
	}

	for step := 0; step < maxSteps; step++ {
		diag.Steps++

		e1 := mesh.LNext(e)
		e2 := mesh.LNext(e1)

		orgE, orgE1, orgE2 := mesh.Org(e), mesh.Org(e1), mesh.Org(e2)
		if mesh.VertexAt(orgE).IsNullVertex() || mesh.VertexAt(orgE1).IsNullVertex() || mesh.VertexAt(orgE2).IsNullVertex() {
			// A ghost-apex face has no meaningful coordinates to test
			// orientation against; arriving here only happens by
			// crossing a real hull edge the target was outside of, so
			// that is already enough to call the walk done (spec.md
			// §4.G: hull growth is handled by insertion, not by walk).
			diag.ExteriorWalks++
			return Result{Edge: e, OnEdge: false}, diag, nil
		}

		a := point(orgE)
		b := point(orgE1)
		c := point(orgE2)

		o0 := predicate.Orientation(a, b, target, th, predDiag) // edge e: a->b
		o1 := predicate.Orientation(b, c, target, th, predDiag) // edge e1: b->c
		o2 := predicate.Orientation(c, a, target, th, predDiag) // edge e2: c->a

		type candidate struct {
			edge quadedge.DirEdge
			o    float64
		}
		var outside []candidate
		var onLine []quadedge.DirEdge

		if o0 < 0 {
			outside = append(outside, candidate{e, o0})
		} else if o0 == 0 {
			onLine = append(onLine, e)
		}
		if o1 < 0 {
			outside = append(outside, candidate{e1, o1})
		} else if o1 == 0 {
			onLine = append(onLine, e1)
		}
		if o2 < 0 {
			outside = append(outside, candidate{e2, o2})
		} else if o2 == 0 {
			onLine = append(onLine, e2)
		}

		if len(outside) == 0 {
			if len(onLine) > 0 {
				return Result{Edge: onLine[0], OnEdge: true}, diag, nil
			}
			return Result{Edge: e, OnEdge: false}, diag, nil
		}

		var exit quadedge.DirEdge
		if len(outside) == 1 {
			exit = outside[0].edge
		} else {
			diag.TieBreaks++
			exit = outside[rng.Intn(len(outside))].edge
		}

		e = quadedge.Sym(exit)
	}

	return Result{}, diag, fmt.Errorf("walk: exceeded maximum steps (%d), mesh may be inconsistent", maxSteps)
}
