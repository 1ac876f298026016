package tin

import (
	"fmt"
	"math"

	"github.com/iceisfun/gocdt/interp"
	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
)

// Constraint is a polyline (open) or polygon (closed) of points to be
// forced into the triangulation as edges, with Z values carried along
// for pre-interpolation at any new vertex the tunnelling step creates
// (spec.md §4.H). A closed constraint with IsHole set cuts an opening
// out of whatever region encloses it rather than defining a filled
// region of its own (spec.md §3/§9: "hole polarity respected").
// ApplicationData is opaque to the core; it comes back unchanged from
// the inserted record's GetApplicationData.
type Constraint struct {
	Points          []vertex.CoordinatePair
	Z               []float64 // optional; nil means "interpolate from the surrounding mesh"
	Closed          bool
	IsHole          bool
	ApplicationData any
}

// ConstraintRecord is the TIN's durable record of one inserted
// constraint: its point loop in post-normalization order (spec.md
// §4.H.2), plus the query and bookkeeping methods spec.md §3/§6
// promise for polygon constraints.
type ConstraintRecord struct {
	points          []vertex.CoordinatePair
	closed          bool
	isHole          bool
	constraintIndex int
	applicationData any
}

// GetConstraintIndex returns the index the TIN assigned this
// constraint on insertion.
func (c *ConstraintRecord) GetConstraintIndex() int { return c.constraintIndex }

// SetConstraintIndex overrides the constraint's assigned index.
func (c *ConstraintRecord) SetConstraintIndex(idx int) { c.constraintIndex = idx }

// GetApplicationData returns the opaque caller data attached at
// insertion time.
func (c *ConstraintRecord) GetApplicationData() any { return c.applicationData }

// SetApplicationData replaces the opaque caller data attached to this
// constraint.
func (c *ConstraintRecord) SetApplicationData(v any) { c.applicationData = v }

// IsHole reports whether this is a hole (exclusion) region rather than
// a fill region.
func (c *ConstraintRecord) IsHole() bool { return c.isHole }

// Closed reports whether this constraint is a polygon, as opposed to
// an open polyline.
func (c *ConstraintRecord) Closed() bool { return c.closed }

// PointCount returns the number of points in the constraint's loop.
func (c *ConstraintRecord) PointCount() int { return len(c.points) }

// GetSignedArea returns the shoelace signed area of the constraint's
// stored (post-normalization) point loop: positive for a
// counterclockwise loop, negative for clockwise, zero for an open
// constraint or one with fewer than 3 points.
func (c *ConstraintRecord) GetSignedArea() float64 {
	return signedArea(c.points)
}

// GetArea returns the unsigned area enclosed by the constraint's loop.
func (c *ConstraintRecord) GetArea() float64 {
	return math.Abs(c.GetSignedArea())
}

// IsCounterclockwise reports whether the constraint's stored point
// order winds counterclockwise.
func (c *ConstraintRecord) IsCounterclockwise() bool {
	return c.GetSignedArea() > 0
}

// GetPerimeter returns the total length of the constraint's segments,
// including the closing segment when the constraint is closed.
func (c *ConstraintRecord) GetPerimeter() float64 {
	n := len(c.points)
	if n < 2 {
		return 0
	}
	segments := n - 1
	if c.closed {
		segments = n
	}
	total := 0.0
	for i := 0; i < segments; i++ {
		a, b := c.points[i], c.points[(i+1)%n]
		total += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return total
}

// IsPointInsideConstraint reports whether p lies inside the
// constraint's closed loop, via the standard ray-casting parity test.
// Always false for an open constraint.
func (c *ConstraintRecord) IsPointInsideConstraint(p vertex.CoordinatePair) bool {
	if !c.closed || len(c.points) < 3 {
		return false
	}
	inside := false
	n := len(c.points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := c.points[i], c.points[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xCross := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// signedArea computes the shoelace signed area of a point loop,
// treating pts as implicitly closed (last point connects back to the
// first). Zero for fewer than 3 points.
func signedArea(pts []vertex.CoordinatePair) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

const maxConstraints = quadedge.NoConstraint

// AddConstraints forces each constraint's segments into the
// triangulation, assigns each a distinct constraint index, and — for
// closed, non-hole constraints — flood-fills the interior side with
// that index (spec.md §4.H). Closed constraints are normalized to a
// canonical winding before insertion (spec.md §4.H.2's "determine
// orientation... if CW, reverse", generalized to holes per spec.md §3:
// "the builder orients CCW on completion; holes are CW"). Returns the
// assigned indices in the same order as constraints.
func (t *TIN) AddConstraints(constraints []Constraint) ([]int, error) {
	if t.disposed {
		return nil, ErrDisposed
	}
	if len(t.constraints)+len(constraints) > maxConstraints {
		return nil, fmt.Errorf("tin: constraint capacity exhausted (max %d)", maxConstraints)
	}

	indices := make([]int, len(constraints))
	for i, c := range constraints {
		if len(c.Points) < 2 {
			return nil, fmt.Errorf("tin: constraint %d needs at least 2 points", i)
		}
		if c.Closed && len(c.Points) < 3 {
			return nil, fmt.Errorf("tin: constraint %d is closed but has fewer than 3 points", i)
		}
		idx := len(t.constraints)
		rec, err := t.addOneConstraint(c, idx)
		if err != nil {
			return nil, fmt.Errorf("tin: constraint %d: %w", i, err)
		}
		t.constraints = append(t.constraints, rec)
		indices[i] = idx
	}
	return indices, nil
}

// Constraint returns the record the TIN assigned to constraint idx, or
// false if no such constraint has been inserted.
func (t *TIN) Constraint(idx int) (*ConstraintRecord, bool) {
	if idx < 0 || idx >= len(t.constraints) {
		return nil, false
	}
	return t.constraints[idx], true
}

// ConstraintCount returns the number of constraints inserted so far.
func (t *TIN) ConstraintCount() int {
	return len(t.constraints)
}

func (t *TIN) addOneConstraint(c Constraint, idx int) (*ConstraintRecord, error) {
	points, z := orientClosedLoop(c.Points, c.Z, c.Closed, c.IsHole)

	ids := make([]vertex.ID, len(points))
	for i, p := range points {
		zi := 0.0
		if z != nil {
			zi = z[i]
		} else {
			zi = t.interpolateZ(p)
		}
		id, err := t.findOrInsertVertex(p, zi)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	n := len(ids)
	segments := n - 1
	if c.Closed {
		segments = n
	}

	for i := 0; i < segments; i++ {
		a := ids[i]
		b := ids[(i+1)%n]
		e, err := t.tunnelSegment(a, b)
		if err != nil {
			return nil, err
		}
		if c.Closed {
			t.store.SetBorderIndex(e, idx)
		} else {
			t.store.SetLineIndex(e, idx)
		}
	}

	// A hole's polarity is inverted: it contributes border edges (to
	// stop an enclosing region's flood fill) but claims no interior of
	// its own, since it marks excluded space rather than member space.
	if c.Closed && !c.IsHole {
		t.markRegionInterior(ids, idx)
	}

	return &ConstraintRecord{
		points:          points,
		closed:          c.Closed,
		isHole:          c.IsHole,
		constraintIndex: idx,
		applicationData: c.ApplicationData,
	}, nil
}

// orientClosedLoop returns points (and z, if supplied) reordered so a
// closed constraint winds counterclockwise, or clockwise if isHole is
// set. Open constraints, and closed ones already in the wanted
// winding, are returned unchanged (z may be the same slice).
func orientClosedLoop(points []vertex.CoordinatePair, z []float64, closed, isHole bool) ([]vertex.CoordinatePair, []float64) {
	if !closed || len(points) < 3 {
		return points, z
	}

	area := signedArea(points)
	wantCCW := !isHole
	reverse := (wantCCW && area < 0) || (!wantCCW && area > 0)
	if !reverse {
		return points, z
	}

	rp := make([]vertex.CoordinatePair, len(points))
	for i, p := range points {
		rp[len(points)-1-i] = p
	}
	if z == nil {
		return rp, nil
	}
	rz := make([]float64, len(z))
	for i, v := range z {
		rz[len(z)-1-i] = v
	}
	return rp, rz
}

// findOrInsertVertex returns the existing vertex within tolerance of p,
// or inserts a new one at (p, z).
func (t *TIN) findOrInsertVertex(p vertex.CoordinatePair, z float64) (vertex.ID, error) {
	for id := vertex.ID(1); int(id) < len(t.verts); id++ {
		v := t.verts[id]
		dx, dy := v.X()-p.X, v.Y()-p.Y
		if dx*dx+dy*dy <= t.th.VertexToleranceSq {
			return id, nil
		}
	}
	return t.Add(p.X, p.Y, z, WithVertexStatus(vertex.ConstraintMember))
}

// interpolateZ delegates to a fresh interp.TriangularFacetInterpolator
// snapshot of the current mesh (spec.md §4.H's Z pre-interpolation),
// falling back to 0 if p falls outside every real triangle (e.g. a
// constraint point added before any surrounding geometry exists).
func (t *TIN) interpolateZ(p vertex.CoordinatePair) float64 {
	z := interp.NewSnapshot(t).Interpolate(p.X, p.Y, nil)
	if math.IsNaN(z) {
		return 0
	}
	return z
}

// findDirEdge returns a directed edge from a to b if one currently
// exists, by pinwheeling around a.
func (t *TIN) findDirEdge(a, b vertex.ID) (quadedge.DirEdge, bool) {
	start := t.edgeAt(a)
	if start == quadedge.NilEdge {
		return quadedge.NilEdge, false
	}
	found := quadedge.NilEdge
	t.store.Pinwheel(start, func(e quadedge.DirEdge) bool {
		if t.store.Dest(e) == b {
			found = e
			return false
		}
		return true
	})
	return found, found != quadedge.NilEdge
}

// tunnelSegment ensures an edge from a to b exists, repeatedly flipping
// edges the segment properly crosses (the classic Lawson tunnelling
// algorithm for constrained Delaunay insertion), grounded on the
// teacher's cdt/constraint.go pass-by-flipping strategy and
// re-expressed over quad-edge Swap.
func (t *TIN) tunnelSegment(a, b vertex.ID) (quadedge.DirEdge, error) {
	if e, ok := t.findDirEdge(a, b); ok {
		return e, nil
	}

	pa, pb := t.pt(a), t.pt(b)
	maxIter := 4*len(t.verts) + 32

	for i := 0; i < maxIter; i++ {
		if e, ok := t.findDirEdge(a, b); ok {
			return e, nil
		}

		flipped := false
		for base := 0; base < t.store.QuartetCount(); base++ {
			e := quadedge.DirEdge(4 * base)
			if !t.store.IsLive(e) {
				continue
			}
			if t.store.AnyConstraint(e) {
				continue
			}
			oa, ob := t.store.Org(e), t.store.Dest(e)
			if oa == ghostIndex || ob == ghostIndex {
				continue
			}
			if t.segmentsProperlyCross(pa, pb, t.pt(oa), t.pt(ob)) {
				quadedge.Swap(t.store, e)
				flipped = true
				break
			}
		}
		if !flipped {
			return quadedge.NilEdge, fmt.Errorf("tin: could not tunnel constraint segment (likely self-intersecting input)")
		}
	}
	return quadedge.NilEdge, fmt.Errorf("tin: constraint tunnelling exceeded iteration budget")
}

func (t *TIN) segmentsProperlyCross(pa, pb, pc, pd predicate.Point) bool {
	d1 := predicate.OrientationTest(pc, pd, pa, t.th, t.diag)
	d2 := predicate.OrientationTest(pc, pd, pb, t.th, t.diag)
	d3 := predicate.OrientationTest(pa, pb, pc, t.th, t.diag)
	d4 := predicate.OrientationTest(pa, pb, pd, t.th, t.diag)
	return d1*d2 < 0 && d3*d4 < 0
}

// markRegionInterior flood-fills interior index idx across every real
// face reachable from the polygon's first edge without crossing a
// region border (of any index — a neighboring hole or region's border
// stops the flood the same way this one's own does). Grounded on the
// teacher's cdt/classify.go BFS-with-barrier pattern. Relies on
// loopIDs winding counterclockwise (orientClosedLoop's job), so the
// left face of the seed edge is guaranteed to be the polygon's
// interior rather than the unbounded exterior.
func (t *TIN) markRegionInterior(loopIDs []vertex.ID, idx int) {
	if len(loopIDs) < 3 {
		return
	}
	seed, ok := t.findDirEdge(loopIDs[0], loopIDs[1])
	if !ok {
		return
	}

	visited := make(map[quadedge.DirEdge]bool)
	queue := []quadedge.DirEdge{seed}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if visited[e] {
			continue
		}

		e1 := t.store.LNext(e)
		e2 := t.store.LNext(e1)
		face := [3]quadedge.DirEdge{e, e1, e2}
		for _, r := range face {
			visited[r] = true
		}

		if t.faceIsGhost(e) {
			continue
		}
		for _, r := range face {
			t.store.SetInteriorIndex(r, idx)
		}
		for _, r := range face {
			if t.store.BorderIndex(r) >= 0 {
				continue
			}
			next := quadedge.Sym(r)
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
}
