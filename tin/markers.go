package tin

import "github.com/iceisfun/gocdt/quadedge"

// These thin pass-throughs expose the quad-edge marker indices to
// callers outside the package (the Ruppert refiner, chiefly) without
// handing out the underlying *quadedge.Store itself. Line, border and
// interior are three independent 13-bit-indexed fields (spec.md §3):
// a single edge can carry a line index and a border index at once
// (invariant 5), and distinct region constraints are told apart by
// index rather than a shared boolean.

// IsConstrained reports whether e carries a line index, a border
// index, or both.
func (t *TIN) IsConstrained(e quadedge.DirEdge) bool {
	return t.store.AnyConstraint(e)
}

// LineIndex returns e's open (polyline) constraint index, or -1.
func (t *TIN) LineIndex(e quadedge.DirEdge) int {
	return t.store.LineIndex(e)
}

// BorderIndex returns the region constraint index e's border belongs
// to, or -1 if e is not a region border.
func (t *TIN) BorderIndex(e quadedge.DirEdge) int {
	return t.store.BorderIndex(e)
}

// IsBorder reports whether e is marked as some region's border.
func (t *TIN) IsBorder(e quadedge.DirEdge) bool {
	return t.store.BorderIndex(e) >= 0
}

// InteriorIndex returns the region constraint index whose interior
// e's left face belongs to, or -1.
func (t *TIN) InteriorIndex(e quadedge.DirEdge) int {
	return t.store.InteriorIndex(e)
}

// IsInteriorEdge reports whether e's left face has been flood-fill
// marked as inside some constrained region.
func (t *TIN) IsInteriorEdge(e quadedge.DirEdge) bool {
	return t.store.InteriorIndex(e) >= 0
}

// IsLive reports whether e's quartet is still allocated.
func (t *TIN) IsLive(e quadedge.DirEdge) bool {
	return t.store.IsLive(e)
}

// QuartetCount returns the number of quartet slots ever allocated.
func (t *TIN) QuartetCount() int {
	return t.store.QuartetCount()
}

// HasRegionConstraints reports whether any edge in the mesh currently
// carries an interior-region marker on either side, i.e. whether at
// least one closed (polygon) constraint has been flood-filled.
func (t *TIN) HasRegionConstraints() bool {
	for e := range t.GetEdges() {
		if t.store.InteriorIndex(e) >= 0 || t.store.InteriorIndex(quadedge.Sym(e)) >= 0 {
			return true
		}
	}
	return false
}
