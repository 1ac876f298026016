package refine

import (
	"math"

	"github.com/iceisfun/gocdt/tin"
	"github.com/iceisfun/gocdt/vertex"
)

// minBoundingBoxPoints is the smallest per-side discretization used
// regardless of vertex count, so a tiny input mesh still gets a usable
// bounding constraint.
const minBoundingBoxPoints = 4

// addBoundingBoxConstraint inserts a rectangular polygon constraint
// just outside the mesh's current bounds, each side discretized into
// points that scale with vertex count, and a four-corner outer ring
// further out so the rectangle's own edges end up as interior
// (constrained) edges rather than hull-perimeter edges (spec.md §4.J
// "Bounding box option").
func (r *Refiner) addBoundingBoxConstraint() error {
	minX, minY, maxX, maxY, ok := r.t.GetBounds()
	if !ok {
		return nil
	}

	w, h := maxX-minX, maxY-minY
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	bufX := w * r.opts.BoundingBoxBufferPercent / 100
	bufY := h * r.opts.BoundingBoxBufferPercent / 100
	lo := vertex.CoordinatePair{X: minX - bufX, Y: minY - bufY}
	hi := vertex.CoordinatePair{X: maxX + bufX, Y: maxY + bufY}

	vertexCount := 0
	for range r.t.GetVertices() {
		vertexCount++
	}
	n := vertexCount / 20
	if n < minBoundingBoxPoints {
		n = minBoundingBoxPoints
	}

	outerBufX, outerBufY := bufX*2, bufY*2
	outerCorners := []vertex.CoordinatePair{
		{X: lo.X - outerBufX, Y: lo.Y - outerBufY},
		{X: hi.X + outerBufX, Y: lo.Y - outerBufY},
		{X: hi.X + outerBufX, Y: hi.Y + outerBufY},
		{X: lo.X - outerBufX, Y: hi.Y + outerBufY},
	}
	for _, c := range outerCorners {
		if _, err := r.t.Add(c.X, c.Y, 0); err != nil {
			return err
		}
	}

	ring := discretizeRectangle(lo, hi, n)
	z := make([]float64, len(ring))
	for i, p := range ring {
		z[i] = r.zFor2D(p)
	}

	_, err := r.t.AddConstraints([]tin.Constraint{{Points: ring, Z: z, Closed: true}})
	return err
}

// discretizeRectangle returns a CCW ring of points along the rectangle
// [lo, hi], n points per side (corners included, not duplicated).
func discretizeRectangle(lo, hi vertex.CoordinatePair, n int) []vertex.CoordinatePair {
	var ring []vertex.CoordinatePair
	side := func(a, b vertex.CoordinatePair) {
		for i := 0; i < n; i++ {
			u := float64(i) / float64(n)
			ring = append(ring, vertex.CoordinatePair{
				X: a.X + u*(b.X-a.X),
				Y: a.Y + u*(b.Y-a.Y),
			})
		}
	}
	bl := lo
	br := vertex.CoordinatePair{X: hi.X, Y: lo.Y}
	tr := hi
	tl := vertex.CoordinatePair{X: lo.X, Y: hi.Y}
	side(bl, br)
	side(br, tr)
	side(tr, tl)
	side(tl, bl)
	return ring
}

// zFor2D interpolates Z for a bounding-box ring point from the
// pre-refinement snapshot when one was requested, else 0.
func (r *Refiner) zFor2D(p vertex.CoordinatePair) float64 {
	if r.snapshot == nil {
		return 0
	}
	z := r.snapshot.Interpolate(p.X, p.Y, nil)
	if math.IsNaN(z) {
		return 0
	}
	return z
}
