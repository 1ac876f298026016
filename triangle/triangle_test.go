package triangle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
)

// fakeMesh is a minimal Mesh backed directly by a quadedge.Store and a
// flat vertex slice, enough to exercise SimpleTriangle in isolation
// without pulling in the full tin package.
type fakeMesh struct {
	store *quadedge.Store
	verts []vertex.Vertex
	th    *predicate.Thresholds
}

func (m *fakeMesh) LNext(e quadedge.DirEdge) quadedge.DirEdge { return m.store.LNext(e) }
func (m *fakeMesh) Org(e quadedge.DirEdge) vertex.ID          { return m.store.Org(e) }
func (m *fakeMesh) Dest(e quadedge.DirEdge) vertex.ID         { return m.store.Dest(e) }
func (m *fakeMesh) VertexAt(id vertex.ID) vertex.Vertex       { return m.verts[id] }
func (m *fakeMesh) Thresholds() *predicate.Thresholds         { return m.th }

func buildRightTriangle(t *testing.T) (*fakeMesh, quadedge.DirEdge) {
	t.Helper()
	store := quadedge.NewStore(8)

	v0, err := vertex.New(0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	v1, err := vertex.New(3, 0, 0, 1, 0, 0)
	require.NoError(t, err)
	v2, err := vertex.New(0, 4, 0, 2, 0, 0)
	require.NoError(t, err)

	th, err := predicate.NewThresholds(1)
	require.NoError(t, err)

	ea := store.MakeEdge()
	store.SetOrg(ea, 0)
	store.SetDest(ea, 1)

	eb := store.MakeEdge()
	quadedge.Splice(store, quadedge.Sym(ea), eb)
	store.SetOrg(eb, 1)
	store.SetDest(eb, 2)

	quadedge.Connect(store, eb, ea)

	return &fakeMesh{store: store, verts: []vertex.Vertex{v0, v1, v2}, th: th}, ea
}

func TestSimpleTriangleVerticesAndArea(t *testing.T) {
	mesh, ea := buildRightTriangle(t)
	tri := New(mesh, ea)

	require.False(t, tri.IsGhost())
	require.InDelta(t, 12.0, tri.SignedArea(), 1e-9)
}

func TestSimpleTriangleCircumcircle(t *testing.T) {
	mesh, ea := buildRightTriangle(t)
	tri := New(mesh, ea)

	circ, ok := tri.Circumcircle()
	require.True(t, ok)
	require.InDelta(t, 1.5, circ.Center.X, 1e-9)
	require.InDelta(t, 2.0, circ.Center.Y, 1e-9)
}

func TestSimpleTriangleEdgeLengths(t *testing.T) {
	mesh, ea := buildRightTriangle(t)
	tri := New(mesh, ea)

	require.InDelta(t, 3.0, tri.ShortestEdgeLength(), 1e-9)
	require.InDelta(t, 5.0, tri.LongestEdgeLength(), 1e-9)
}

func TestSimpleTriangleCentroid(t *testing.T) {
	mesh, ea := buildRightTriangle(t)
	tri := New(mesh, ea)
	c := tri.Centroid()
	require.InDelta(t, 1.0, c.X, 1e-9)
	require.InDelta(t, 4.0/3.0, c.Y, 1e-9)
}

func TestGhostVertexDetected(t *testing.T) {
	store := quadedge.NewStore(8)
	th, err := predicate.NewThresholds(1)
	require.NoError(t, err)

	v0, err := vertex.New(0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	v1, err := vertex.New(1, 0, 0, 1, 0, 0)
	require.NoError(t, err)
	ghost := vertex.Ghost()

	ea := store.MakeEdge()
	store.SetOrg(ea, 0)
	store.SetDest(ea, 1)
	eb := store.MakeEdge()
	quadedge.Splice(store, quadedge.Sym(ea), eb)
	store.SetOrg(eb, 1)
	store.SetDest(eb, 2)
	quadedge.Connect(store, eb, ea)

	mesh := &fakeMesh{store: store, verts: []vertex.Vertex{v0, v1, ghost}, th: th}
	tri := New(mesh, ea)

	require.True(t, tri.IsGhost())
}
