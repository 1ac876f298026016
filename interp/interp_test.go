package interp

import (
	"iter"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
)

// fakeMesh is a single fixed triangle, built directly over a
// quadedge.Store so NewSnapshot can be exercised without pulling in
// the tin package.
type fakeMesh struct {
	store *quadedge.Store
	verts []vertex.Vertex
	face  quadedge.DirEdge
}

func newFakeMesh(t *testing.T) *fakeMesh {
	t.Helper()
	store := quadedge.NewStore(8)
	va, _ := vertex.New(0, 0, 0, 0, 0, 0)
	vb, _ := vertex.New(4, 0, 4, 1, 0, 0)
	vc, _ := vertex.New(0, 4, 8, 2, 0, 0)

	ea := store.MakeEdge()
	store.SetOrg(ea, 0)
	store.SetDest(ea, 1)
	eb := store.MakeEdge()
	quadedge.Splice(store, quadedge.Sym(ea), eb)
	store.SetOrg(eb, 1)
	store.SetDest(eb, 2)
	quadedge.Connect(store, eb, ea)

	return &fakeMesh{store: store, verts: []vertex.Vertex{va, vb, vc}, face: ea}
}

func (m *fakeMesh) LNext(e quadedge.DirEdge) quadedge.DirEdge  { return m.store.LNext(e) }
func (m *fakeMesh) Org(e quadedge.DirEdge) vertex.ID           { return m.store.Org(e) }
func (m *fakeMesh) Dest(e quadedge.DirEdge) vertex.ID          { return m.store.Dest(e) }
func (m *fakeMesh) VertexAt(id vertex.ID) vertex.Vertex        { return m.verts[id] }
func (m *fakeMesh) GetTriangles() iter.Seq[quadedge.DirEdge] {
	return func(yield func(quadedge.DirEdge) bool) {
		yield(m.face)
	}
}

func TestInterpolateInsideFacet(t *testing.T) {
	mesh := newFakeMesh(t)
	tfi := NewSnapshot(mesh)

	z := tfi.Interpolate(1, 1, nil)
	require.False(t, math.IsNaN(z))
	require.InDelta(t, 3.0, z, 1e-9)
}

func TestInterpolateOutsideFacetIsNaN(t *testing.T) {
	mesh := newFakeMesh(t)
	tfi := NewSnapshot(mesh)

	z := tfi.Interpolate(100, 100, nil)
	require.True(t, math.IsNaN(z))
}

func TestInterpolateWithExteriorSupportFallsBackToNearest(t *testing.T) {
	mesh := newFakeMesh(t)
	tfi := NewSnapshot(mesh)

	z := tfi.InterpolateWithExteriorSupport(100, 0, nil)
	require.Equal(t, 4.0, z) // nearest vertex is (4,0,4)
}

func TestInterpolateValuatorOverridesZ(t *testing.T) {
	mesh := newFakeMesh(t)
	tfi := NewSnapshot(mesh)

	doubled := func(v vertex.Vertex) float64 { return v.Z() * 2 }
	z := tfi.Interpolate(1, 1, doubled)
	require.InDelta(t, 2*3.0, z, 1e-9)
}
