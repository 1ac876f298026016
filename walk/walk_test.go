package walk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
)

type fakeMesh struct {
	store *quadedge.Store
	verts []vertex.Vertex
}

func (m *fakeMesh) LNext(e quadedge.DirEdge) quadedge.DirEdge { return m.store.LNext(e) }
func (m *fakeMesh) Org(e quadedge.DirEdge) vertex.ID          { return m.store.Org(e) }
func (m *fakeMesh) Dest(e quadedge.DirEdge) vertex.ID         { return m.store.Dest(e) }
func (m *fakeMesh) VertexAt(id vertex.ID) vertex.Vertex       { return m.verts[id] }

// buildSquare builds a single CCW triangle (0,0)-(1,0)-(0,1) inside a
// unit square's vertex set, enough to exercise within-face location and
// on-edge detection without needing a second linked face.
func buildSquare(t *testing.T) (*fakeMesh, quadedge.DirEdge) {
	t.Helper()
	store := quadedge.NewStore(16)

	coords := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	verts := make([]vertex.Vertex, len(coords))
	for i, xy := range coords {
		v, err := vertex.New(xy[0], xy[1], 0, vertex.ID(i), 0, 0)
		require.NoError(t, err)
		verts[i] = v
	}

	ea0 := store.MakeEdge()
	store.SetOrg(ea0, 0)
	store.SetDest(ea0, 1)
	ea1 := store.MakeEdge()
	quadedge.Splice(store, quadedge.Sym(ea0), ea1)
	store.SetOrg(ea1, 1)
	store.SetDest(ea1, 3)
	quadedge.Connect(store, ea1, ea0)

	mesh := &fakeMesh{store: store, verts: verts}
	return mesh, ea0
}

func TestWalkFindsPointInStartingTriangle(t *testing.T) {
	mesh, seed := buildSquare(t)
	th, err := predicate.NewThresholds(1)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	res, diag, err := Walk(mesh, th, seed, predicate.Point{X: 0.2, Y: 0.2}, rng, 4, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, diag.Steps, 1)
	require.Equal(t, 1, diag.Walks)
	require.False(t, res.OnEdge)
}

func TestWalkRejectsNilRNG(t *testing.T) {
	mesh, seed := buildSquare(t)
	th, err := predicate.NewThresholds(1)
	require.NoError(t, err)

	_, _, err = Walk(mesh, th, seed, predicate.Point{X: 0.2, Y: 0.2}, nil, 4, nil)
	require.Error(t, err)
}

func TestWalkDetectsOnEdgePoint(t *testing.T) {
	mesh, seed := buildSquare(t)
	th, err := predicate.NewThresholds(1)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(2))
	// (0.5, 0) lies on the bottom edge of triangle A.
	res, _, err := Walk(mesh, th, seed, predicate.Point{X: 0.5, Y: 0}, rng, 4, nil)
	require.NoError(t, err)
	require.True(t, res.OnEdge)
}
