package tin

import (
	"fmt"

	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
	"github.com/iceisfun/gocdt/walk"
)

// Add locates (x, y) in the current triangulation and inserts it,
// legalizing the surrounding edges back to the Delaunay property.
// Points outside the current convex hull are handled the same way as
// interior points: they land in a ghost face, which is split exactly
// like a real one, and Lawson flips against the ghost-aware InCircle
// test below grow the hull out to include the new point (spec.md §4.G,
// "insertion must not special-case hull growth").
func (t *TIN) Add(x, y, z float64, opts ...AddOption) (vertex.ID, error) {
	if t.disposed {
		return vertex.NilID, ErrDisposed
	}

	var cfg addConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	v, err := t.newVertex(x, y, z, cfg.status)
	if err != nil {
		return vertex.NilID, err
	}
	p := t.pt(v)

	res, _, err := walk.Walk(t, t.th, t.anchor, p, t.rng, len(t.verts), t.diag)
	if err != nil {
		return vertex.NilID, fmt.Errorf("tin: locating point: %w", err)
	}

	var toLegalize []quadedge.DirEdge
	if res.OnEdge {
		if t.vertexCoincides(res.Edge, p) {
			t.verts = t.verts[:len(t.verts)-1]
			return vertex.NilID, ErrDuplicateVertex
		}
		toLegalize = t.splitEdgeAt(res.Edge, v)
	} else {
		e0 := res.Edge
		e1 := t.store.LNext(e0)
		e2 := t.store.LNext(e1)
		toLegalize = t.insertStar([]quadedge.DirEdge{e0, e1, e2}, v)
	}

	t.anchor = toLegalize[0]
	t.legalize(toLegalize)

	if t.debugAddVertex != nil {
		t.debugAddVertex(v, vertex.CoordinatePair{X: x, Y: y})
	}
	return v, nil
}

// AddSorted inserts pts in order, promising monotone x-then-y sorted
// input (spec.md §4.G): each insertion reseeds the point-location walk
// from the previous point's own triangle via Add's anchor chaining,
// which a sorted sequence's spatial locality keeps short.
func (t *TIN) AddSorted(pts []vertex.CoordinatePair, zs []float64, opts ...AddOption) ([]vertex.ID, error) {
	ids := make([]vertex.ID, len(pts))
	for i, p := range pts {
		z := 0.0
		if zs != nil {
			z = zs[i]
		}
		id, err := t.Add(p.X, p.Y, z, opts...)
		if err != nil {
			return nil, fmt.Errorf("tin: AddSorted point %d: %w", i, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// AddAndReturnEdge inserts (x, y, z) like Add, additionally returning a
// directed edge whose origin is the new vertex, or quadedge.NilEdge if
// the insertion failed (spec.md §4.G).
func (t *TIN) AddAndReturnEdge(x, y, z float64, opts ...AddOption) (vertex.ID, quadedge.DirEdge, error) {
	v, err := t.Add(x, y, z, opts...)
	if err != nil {
		return vertex.NilID, quadedge.NilEdge, err
	}
	return v, t.edgeAt(v), nil
}

// vertexCoincides reports whether p lies within vertex tolerance of
// either endpoint of e (spec.md §4.D: vertex tolerance = spacing/1e5).
func (t *TIN) vertexCoincides(e quadedge.DirEdge, p predicate.Point) bool {
	for _, id := range [2]vertex.ID{t.Org(e), t.Dest(e)} {
		if id == ghostIndex {
			continue
		}
		ov := t.verts[id]
		dx, dy := ov.X()-p.X, ov.Y()-p.Y
		if dx*dx+dy*dy <= t.th.VertexToleranceSq {
			return true
		}
	}
	return false
}

// insertStar subdivides the face bounded by the CCW chain boundary[0],
// boundary[1], ... by connecting v to every corner, fanning it into
// len(boundary) triangles. Returns boundary unchanged (each of those
// edges is now opposite v in its new triangle, and needs legalizing).
func (t *TIN) insertStar(boundary []quadedge.DirEdge, v vertex.ID) []quadedge.DirEdge {
	e0 := boundary[0]
	a := t.store.MakeEdge()
	t.store.SetOrg(a, t.store.Org(e0))
	t.store.SetDest(a, v)
	quadedge.Splice(t.store, a, e0)

	t.setVertEdge(v, quadedge.Sym(a))

	spoke := a
	for _, e := range boundary[:len(boundary)-1] {
		spoke = quadedge.Connect(t.store, e, quadedge.Sym(spoke))
	}
	return boundary
}

// splitEdgeAt removes edge e (merging its two adjacent faces into one
// quadrilateral face) and fans v from that quad's four corners,
// producing four new triangles in place of the two that shared e.
func (t *TIN) splitEdgeAt(e quadedge.DirEdge, v vertex.ID) []quadedge.DirEdge {
	b0 := t.store.LNext(e)
	b1 := t.store.LNext(b0)
	sym := quadedge.Sym(e)
	b2 := t.store.LNext(sym)
	b3 := t.store.LNext(b2)

	t.store.DeleteEdge(e)

	return t.insertStar([]quadedge.DirEdge{b0, b1, b2, b3}, v)
}

// legalize runs the Lawson flip stack over the given seed edges,
// restoring local Delaunay-ness. Constrained edges are never flipped
// (spec.md §4.H).
func (t *TIN) legalize(seed []quadedge.DirEdge) {
	stack := append([]quadedge.DirEdge(nil), seed...)
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !t.store.IsLive(e) {
			continue
		}
		if t.store.AnyConstraint(e) {
			continue
		}

		a, b := t.store.Org(e), t.store.Dest(e)
		apexLeft := t.store.Dest(t.store.LNext(e))
		sym := quadedge.Sym(e)
		apexRight := t.store.Dest(t.store.LNext(sym))

		if !t.inCircleGhostAware(a, b, apexLeft, apexRight) {
			continue
		}

		before := [4]quadedge.DirEdge{
			t.store.LPrev(e), t.store.LNext(e),
			t.store.LPrev(sym), t.store.LNext(sym),
		}
		quadedge.Swap(t.store, e)
		stack = append(stack, before[:]...)
	}
}

// inCircleGhostAware reports whether d lies inside the circumcircle of
// (a, b, c), treating the shared ghost vertex as a point at infinity:
// an InCircle test involving the ghost degenerates to an orientation
// test against the triangle's one real edge (standard substitution for
// quad-edge Delaunay triangulations with an infinite/ghost vertex).
func (t *TIN) inCircleGhostAware(a, b, c, d vertex.ID) bool {
	switch {
	case d == ghostIndex:
		return false
	case c == ghostIndex:
		return predicate.OrientationTest(t.pt(a), t.pt(b), t.pt(d), t.th, t.diag) > 0
	case a == ghostIndex:
		return predicate.OrientationTest(t.pt(b), t.pt(c), t.pt(d), t.th, t.diag) > 0
	case b == ghostIndex:
		return predicate.OrientationTest(t.pt(c), t.pt(a), t.pt(d), t.th, t.diag) > 0
	default:
		return predicate.InCircleTest(t.pt(a), t.pt(b), t.pt(c), t.pt(d), t.th, t.diag) > 0
	}
}
