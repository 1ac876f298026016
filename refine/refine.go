// Package refine implements Ruppert's algorithm with Shewchuk
// off-centers: a rescan for encroached segments and a bad-triangle
// priority queue drive Steiner-point insertion until the mesh meets a minimum
// angle criterion or an iteration cap is hit (spec.md §4.J). The
// teacher carries no refiner; this is new code grounded on
// cdt/classify.go's flood-fill-over-faces shape (reused here as a
// full-mesh rescan between insertions rather than an incrementally
// maintained queue — see DESIGN.md) and on algorithm/geometry/geometry.go's
// Centroid and DistancePointSegment (the same point-to-segment
// projection this package uses for its near-edge rejection check).
package refine

import (
	"errors"
	"fmt"
	"math"

	"github.com/iceisfun/gocdt/interp"
	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/tin"
	"github.com/iceisfun/gocdt/triangle"
	"github.com/iceisfun/gocdt/vertex"
)

// vertexKind classifies a vertex by how the refiner created it
// (spec.md §4.J's per-vertex metadata).
type vertexKind int

const (
	Input vertexKind = iota
	Midpoint
	Offcenter
	Circumcenter
)

type vertexMeta struct {
	kind           vertexKind
	criticalCorner vertex.ID // vertex.NilID if this vertex is not tied to one
	shellIndex     int
}

const sixtyDegreesRad = math.Pi / 3
const shellEpsilon = 1e-9
const nearTolerance = 1e-9

// ErrMeshTooSmall is returned when the TIN has no real triangle to
// refine at all.
var ErrMeshTooSmall = errors.New("refine: mesh has no real triangles")

// Refiner runs Ruppert refinement over a *tin.TIN.
type Refiner struct {
	t    *tin.TIN
	opts Options

	beta   float64
	rhoMin float64

	meta         map[vertex.ID]vertexMeta
	cornerAngles map[vertex.ID]float64

	snapshot interp.Interpolator // nil unless opts.InterpolateZ

	origMinX, origMinY, origMaxX, origMaxY float64
}

// New constructs a Refiner over t. If opts.InterpolateZ is set, a
// pre-refinement snapshot is taken immediately, so later Steiner Z
// queries always read the original surface rather than previously
// inserted Steiner points (spec.md §5).
func New(t *tin.TIN, options ...Option) (*Refiner, error) {
	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	if opts.MinAngleDegrees <= 0 || opts.MinAngleDegrees >= 60 {
		return nil, ErrInvalidMinAngle
	}

	sinTheta := math.Sin(opts.MinAngleDegrees * math.Pi / 180)
	beta := 1 / (2 * sinTheta)
	rhoMin := beta
	if opts.EnforceSqrt2Guard {
		rhoMin = math.Max(math.Sqrt2, beta)
	}

	r := &Refiner{
		t:      t,
		opts:   opts,
		beta:   beta,
		rhoMin: rhoMin,
		meta:   make(map[vertex.ID]vertexMeta),
	}

	if minX, minY, maxX, maxY, ok := t.GetBounds(); ok {
		r.origMinX, r.origMinY, r.origMaxX, r.origMaxY = minX, minY, maxX, maxY
	}

	if opts.InterpolateZ {
		r.snapshot = interp.NewSnapshot(t)
	}

	r.cornerAngles = buildCornerAngles(t)

	if opts.AddBoundingBoxConstraint {
		if err := r.addBoundingBoxConstraint(); err != nil {
			return nil, fmt.Errorf("refine: bounding box constraint: %w", err)
		}
	}

	return r, nil
}

// buildCornerAngles computes, for every vertex with two or more
// incident constrained edges, the minimum angle between any pair of
// them (spec.md §4.J's "minimum incident-constraint angle").
func buildCornerAngles(t *tin.TIN) map[vertex.ID]float64 {
	type vec struct{ x, y float64 }
	dirs := make(map[vertex.ID][]vec)

	for e := range t.GetEdges() {
		if !t.IsConstrained(e) {
			continue
		}
		a, b := t.Org(e), t.Dest(e)
		va, vb := t.VertexAt(a), t.VertexAt(b)
		dirs[a] = append(dirs[a], vec{vb.X() - va.X(), vb.Y() - va.Y()})
		dirs[b] = append(dirs[b], vec{va.X() - vb.X(), va.Y() - vb.Y()})
	}

	angles := make(map[vertex.ID]float64)
	for v, vs := range dirs {
		if len(vs) < 2 {
			continue
		}
		min := math.Inf(1)
		for i := 0; i < len(vs); i++ {
			for j := i + 1; j < len(vs); j++ {
				dot := vs[i].x*vs[j].x + vs[i].y*vs[j].y
				cross := vs[i].x*vs[j].y - vs[i].y*vs[j].x
				angle := math.Abs(math.Atan2(cross, dot))
				if angle < min {
					min = angle
				}
			}
		}
		angles[v] = min
	}
	return angles
}

// RefineOnce inserts at most one Steiner vertex, returning it and true
// if it inserted one, or (NilID, false, nil) if the mesh already meets
// the encroachment and bad-triangle criteria. Safe to call repeatedly.
func (r *Refiner) RefineOnce() (vertex.ID, bool, error) {
	if r.t.CountTriangles().Valid == 0 {
		return vertex.NilID, false, ErrMeshTooSmall
	}

	if v, ok, err := r.processEncroachments(); err != nil || ok {
		return v, ok, err
	}
	return r.processBadTriangles()
}

// Refine loops RefineOnce up to MaxIterations, returning true if it
// converged naturally and false if the cap was hit first.
func (r *Refiner) Refine() (bool, error) {
	for i := 0; i < r.opts.MaxIterations; i++ {
		_, inserted, err := r.RefineOnce()
		if err != nil {
			return false, err
		}
		if !inserted {
			return true, nil
		}
	}
	return false, nil
}

func (r *Refiner) pt(id vertex.ID) predicate.Point {
	v := r.t.VertexAt(id)
	return predicate.Point{X: v.X(), Y: v.Y()}
}

func (r *Refiner) cornerOf(v vertex.ID) (vertex.ID, bool) {
	if m, ok := r.meta[v]; ok && m.criticalCorner != vertex.NilID {
		return m.criticalCorner, true
	}
	if angle, ok := r.cornerAngles[v]; ok && angle < sixtyDegreesRad {
		return v, true
	}
	return vertex.NilID, false
}

func (r *Refiner) inheritCorner(a, b vertex.ID) (vertex.ID, bool) {
	if corner, ok := r.cornerOf(a); ok {
		return corner, true
	}
	if corner, ok := r.cornerOf(b); ok {
		return corner, true
	}
	return vertex.NilID, false
}

func (r *Refiner) segmentShell(a, b vertex.ID) (int, bool) {
	if m, ok := r.meta[a]; ok && m.kind == Midpoint {
		return m.shellIndex, true
	}
	if m, ok := r.meta[b]; ok && m.kind == Midpoint {
		return m.shellIndex, true
	}
	return 0, false
}

// processEncroachments scans every constrained edge for a witness
// vertex inside its diametral disk and splits the first one found.
func (r *Refiner) processEncroachments() (vertex.ID, bool, error) {
	for e := range r.t.GetEdges() {
		if !r.t.IsConstrained(e) {
			continue
		}
		a, b := r.t.Org(e), r.t.Dest(e)
		pa, pb := r.pt(a), r.pt(b)

		for w := range r.t.GetVertices() {
			if w.Index() == a || w.Index() == b {
				continue
			}
			witness := predicate.Point{X: w.X(), Y: w.Y()}
			if !isEncroached(pa, pb, witness) {
				continue
			}
			if r.opts.IgnoreSeditiousEncroachments && r.isSeditiousWitness(a, b, w.Index()) {
				continue
			}
			return r.splitSegment(e)
		}
	}
	return vertex.NilID, false, nil
}

func (r *Refiner) isSeditiousWitness(a, b, w vertex.ID) bool {
	corner, ok := r.inheritCorner(a, b)
	if !ok {
		return false
	}
	mw, ok := r.meta[w]
	if !ok || mw.kind != Midpoint || mw.criticalCorner != corner {
		return false
	}
	segShell, ok := r.segmentShell(a, b)
	if !ok {
		return false
	}
	return mw.shellIndex == segShell
}

// splitSegment inserts the midpoint of e, inheriting e's critical
// corner (if any) and computing the new vertex's shell index.
func (r *Refiner) splitSegment(e quadedge.DirEdge) (vertex.ID, bool, error) {
	a, b := r.t.Org(e), r.t.Dest(e)
	corner, hasCorner := r.inheritCorner(a, b)

	va, vb := r.t.VertexAt(a), r.t.VertexAt(b)
	z := (va.Z() + vb.Z()) / 2

	v, err := r.t.SplitEdge(e, 0.5, z, tin.WithVertexStatus(vertex.Synthetic|vertex.ConstraintMember))
	if err != nil {
		return vertex.NilID, false, fmt.Errorf("refine: splitting encroached segment: %w", err)
	}

	m := vertexMeta{kind: Midpoint, criticalCorner: vertex.NilID}
	if hasCorner {
		cv := r.t.VertexAt(corner)
		nv := r.t.VertexAt(v)
		dist := math.Hypot(nv.X()-cv.X(), nv.Y()-cv.Y())
		m.criticalCorner = corner
		m.shellIndex = shellIndexAt(dist)
	}
	r.meta[v] = m
	return v, true, nil
}

// processBadTriangles rescans every real triangle, queues the bad
// ones by area² (largest first, per spec.md §4.J), and inserts a
// Steiner point for the first one that isn't skipped as seditious or
// rejected by the near-vertex/near-edge/out-of-bounds guards.
func (r *Refiner) processBadTriangles() (vertex.ID, bool, error) {
	onlyRegions := r.opts.RefineOnlyInsideConstraints && r.t.HasRegionConstraints()

	queue := newBadTriangleQueue()
	byBase := make(map[int]quadedge.DirEdge)

	for anchor := range r.t.GetTriangles() {
		tri := triangle.New(r.t, anchor)
		bad, area2 := r.isBadTriangle(tri, onlyRegions)
		if !bad {
			continue
		}
		base := int(anchor) / 4
		byBase[base] = anchor
		queue.Add(base, area2)
	}

	for {
		base, ok := queue.PopWorst()
		if !ok {
			return vertex.NilID, false, nil
		}
		anchor := byBase[base]
		if !r.t.IsLive(anchor) {
			continue
		}

		tri := triangle.New(r.t, anchor)
		if r.opts.SkipSeditiousTriangles && r.isSeditiousTriangle(tri) {
			continue
		}

		v, inserted, err := r.insertForBadTriangle(tri)
		if err != nil {
			return vertex.NilID, false, err
		}
		if inserted {
			return v, true, nil
		}
		// Rejected or resolved by a segment split: this triangle is
		// done for this round, move to the next worst candidate.
	}
}

func (r *Refiner) isBadTriangle(tri triangle.SimpleTriangle, onlyRegions bool) (bool, float64) {
	if tri.IsGhost() {
		return false, 0
	}
	if onlyRegions {
		inRegion := false
		for _, e := range tri.Edges() {
			if r.t.IsInteriorEdge(e) {
				inRegion = true
				break
			}
		}
		if !inRegion {
			return false, 0
		}
	}

	doubleArea := math.Abs(tri.SignedArea())
	if doubleArea <= 2*r.opts.MinTriangleArea {
		return false, 0
	}

	ratio, ok := tri.RadiusEdgeRatio()
	if !ok || ratio < r.rhoMin {
		return false, 0
	}

	return true, doubleArea * doubleArea / 4
}

func (r *Refiner) isSeditiousTriangle(tri triangle.SimpleTriangle) bool {
	ca := analyzeTriangle(tri)
	a, b := ca.shortestEdgeEndpointIDs()

	ma, oka := r.meta[a]
	mb, okb := r.meta[b]
	if !oka || !okb || ma.kind != Midpoint || mb.kind != Midpoint {
		return false
	}
	if ma.criticalCorner == vertex.NilID || ma.criticalCorner != mb.criticalCorner {
		return false
	}
	return ma.shellIndex == mb.shellIndex
}

func (r *Refiner) insertForBadTriangle(tri triangle.SimpleTriangle) (vertex.ID, bool, error) {
	ca := analyzeTriangle(tri)

	candidate, kind, ok := r.steinerCandidate(ca)
	if !ok {
		return vertex.NilID, false, nil
	}

	if e, ok := r.findEncroachedBy(candidate); ok {
		return r.splitSegment(e)
	}

	scale := ca.shortestLen
	if r.tooCloseToVertex(candidate, scale) {
		return vertex.NilID, false, nil
	}
	if e, u, ok := r.tooCloseToConstrainedEdge(candidate, scale); ok {
		v, err := r.t.SplitEdge(e, u, 0, tin.WithVertexStatus(vertex.Synthetic|vertex.ConstraintMember))
		if err != nil {
			return vertex.NilID, false, nil
		}
		r.meta[v] = vertexMeta{kind: Midpoint, criticalCorner: vertex.NilID}
		return v, true, nil
	}

	if !r.withinPadding(candidate) {
		return vertex.NilID, false, nil
	}

	z := r.zFor(candidate, tri)
	v, err := r.t.Add(candidate.X, candidate.Y, z, tin.WithVertexStatus(vertex.Synthetic))
	if err != nil {
		if errors.Is(err, tin.ErrDuplicateVertex) {
			return vertex.NilID, false, nil
		}
		return vertex.NilID, false, fmt.Errorf("refine: inserting Steiner point: %w", err)
	}

	r.meta[v] = vertexMeta{kind: kind, criticalCorner: vertex.NilID}
	return v, true, nil
}

func (r *Refiner) steinerCandidate(ca candidateTriangle) (predicate.Point, vertexKind, bool) {
	if off, ok := offCenterPoint(ca, r.beta); ok {
		return off, Offcenter, true
	}
	if circ, ok := ca.tri.Circumcircle(); ok {
		return circ.Center, Circumcenter, true
	}
	return predicate.Point{}, Input, false
}

func (r *Refiner) findEncroachedBy(p predicate.Point) (quadedge.DirEdge, bool) {
	for e := range r.t.GetEdges() {
		if !r.t.IsConstrained(e) {
			continue
		}
		a, b := r.t.Org(e), r.t.Dest(e)
		if isEncroached(r.pt(a), r.pt(b), p) {
			return e, true
		}
	}
	return quadedge.NilEdge, false
}

func (r *Refiner) tooCloseToVertex(p predicate.Point, scale float64) bool {
	tolSq := (nearTolerance * scale) * (nearTolerance * scale)
	for v := range r.t.GetVertices() {
		dx, dy := v.X()-p.X, v.Y()-p.Y
		if dx*dx+dy*dy < tolSq {
			return true
		}
	}
	return false
}

func (r *Refiner) tooCloseToConstrainedEdge(p predicate.Point, scale float64) (quadedge.DirEdge, float64, bool) {
	tol := nearTolerance * scale
	for e := range r.t.GetEdges() {
		if !r.t.IsConstrained(e) {
			continue
		}
		a, b := r.t.Org(e), r.t.Dest(e)
		pa, pb := r.pt(a), r.pt(b)
		ex, ey := pb.X-pa.X, pb.Y-pa.Y
		length2 := ex*ex + ey*ey
		if length2 == 0 {
			continue
		}
		u := ((p.X-pa.X)*ex + (p.Y-pa.Y)*ey) / length2
		if u <= 0 || u >= 1 {
			continue
		}
		projX, projY := pa.X+u*ex, pa.Y+u*ey
		dx, dy := p.X-projX, p.Y-projY
		if dx*dx+dy*dy < tol*tol {
			return e, u, true
		}
	}
	return quadedge.NilEdge, 0, false
}

func (r *Refiner) withinPadding(p predicate.Point) bool {
	w, h := r.origMaxX-r.origMinX, r.origMaxY-r.origMinY
	if w == 0 && h == 0 {
		return true
	}
	padX, padY := w*10, h*10
	return p.X >= r.origMinX-padX && p.X <= r.origMaxX+padX &&
		p.Y >= r.origMinY-padY && p.Y <= r.origMaxY+padY
}

// zFor interpolates Z for a Steiner candidate from the preserved
// pre-refinement snapshot, falling back to the triangle's centroid
// average when the interpolator returns NaN (spec.md §4.J step 6).
func (r *Refiner) zFor(p predicate.Point, tri triangle.SimpleTriangle) float64 {
	if !r.opts.InterpolateZ || r.snapshot == nil {
		return 0
	}
	if z := r.snapshot.Interpolate(p.X, p.Y, nil); !math.IsNaN(z) {
		return z
	}
	vs := tri.Vertices()
	return (vs[0].Z() + vs[1].Z() + vs[2].Z()) / 3
}
