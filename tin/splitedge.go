package tin

import (
	"errors"

	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
)

// ErrSplitTooCloseToEndpoint is returned when the requested split
// parameter would place the new vertex within tolerance of one of the
// edge's existing endpoints (spec.md §4.G: "null if t is too close to
// an endpoint").
var ErrSplitTooCloseToEndpoint = errors.New("tin: split parameter too close to an edge endpoint")

// splitTolerance bounds u away from 0 and 1.
const splitTolerance = 1e-6

// SplitEdge inserts a new vertex at parameter u (0 < u < 1) along edge
// e, re-triangulating the two faces bordering e into four. The two
// collinear sub-edges that replace e inherit its constraint index,
// border flag, and per-side interior flags, so splitting a constrained
// segment keeps both halves constrained (used by the constraint
// processor's tunnelling recursion and by the Ruppert refiner's
// encroachment and near-edge-rejection phases).
func (t *TIN) SplitEdge(e quadedge.DirEdge, u, z float64, opts ...AddOption) (vertex.ID, error) {
	if t.disposed {
		return vertex.NilID, ErrDisposed
	}
	if u <= splitTolerance || u >= 1-splitTolerance {
		return vertex.NilID, ErrSplitTooCloseToEndpoint
	}

	var cfg addConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	a, b := t.Org(e), t.Dest(e)
	pa, pb := t.pt(a), t.pt(b)
	x := pa.X + u*(pb.X-pa.X)
	y := pa.Y + u*(pb.Y-pa.Y)

	lineIdx := t.store.LineIndex(e)
	borderIdx := t.store.BorderIndex(e)
	leftInterior := t.store.InteriorIndex(e)
	rightInterior := t.store.InteriorIndex(quadedge.Sym(e))

	v, err := t.newVertex(x, y, z, cfg.status)
	if err != nil {
		return vertex.NilID, err
	}

	toLegalize := t.splitEdgeAt(e, v)

	if lineIdx >= 0 || borderIdx >= 0 || leftInterior >= 0 || rightInterior >= 0 {
		for _, pair := range [2][2]vertex.ID{{a, v}, {v, b}} {
			se, ok := t.findDirEdge(pair[0], pair[1])
			if !ok {
				continue
			}
			if lineIdx >= 0 {
				t.store.SetLineIndex(se, lineIdx)
			}
			if borderIdx >= 0 {
				t.store.SetBorderIndex(se, borderIdx)
			}
			if leftInterior >= 0 {
				t.store.SetInteriorIndex(se, leftInterior)
			}
			if rightInterior >= 0 {
				t.store.SetInteriorIndex(quadedge.Sym(se), rightInterior)
			}
		}
	}

	t.anchor = toLegalize[0]
	t.legalize(toLegalize)
	return v, nil
}
