package tin

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iceisfun/gocdt/vertex"
)

func mustTIN(t *testing.T, pts []vertex.CoordinatePair) *TIN {
	t.Helper()
	tn, err := NewTIN(pts, nil, 1.0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return tn
}

func TestNewTINRejectsTooFewPoints(t *testing.T) {
	_, err := NewTIN([]vertex.CoordinatePair{{X: 0, Y: 0}, {X: 1, Y: 0}}, nil, 1, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestNewTINRejectsCollinearBootstrap(t *testing.T) {
	pts := []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	_, err := NewTIN(pts, nil, 1, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrCollinearBootstrap)
}

func TestBootstrapTriangleHasOneTriangle(t *testing.T) {
	pts := []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	tn := mustTIN(t, pts)
	require.Equal(t, 1, tn.CountTriangles().Valid)
}

func TestAddGrowsHullAndTriangleCount(t *testing.T) {
	pts := []vertex.CoordinatePair{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4},
	}
	tn := mustTIN(t, pts)

	// Square off the triangle by adding the fourth corner, clearly
	// outside the bootstrap triangle's hull.
	_, err := tn.Add(4, 4, 0)
	require.NoError(t, err)

	require.GreaterOrEqual(t, tn.CountTriangles().Valid, 2)
}

func TestAddRejectsDuplicateWithinTolerance(t *testing.T) {
	pts := []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	tn := mustTIN(t, pts)

	_, err := tn.Add(0, 0, 0)
	require.ErrorIs(t, err, ErrDuplicateVertex)
}

func TestGetBounds(t *testing.T) {
	pts := []vertex.CoordinatePair{{X: -1, Y: -2}, {X: 5, Y: 0}, {X: 0, Y: 6}}
	tn := mustTIN(t, pts)

	minX, minY, maxX, maxY, ok := tn.GetBounds()
	require.True(t, ok)
	require.Equal(t, -1.0, minX)
	require.Equal(t, -2.0, minY)
	require.Equal(t, 5.0, maxX)
	require.Equal(t, 6.0, maxY)
}

func TestGridTriangulationProducesExpectedTriangleCount(t *testing.T) {
	var pts []vertex.CoordinatePair
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			pts = append(pts, vertex.CoordinatePair{X: float64(x), Y: float64(y)})
		}
	}
	tn := mustTIN(t, pts)

	// 3x3 grid of points has 8 unit cells, each split into 2 triangles.
	require.Equal(t, 8, tn.CountTriangles().Valid)
}

func TestAddConstraintsMarksBorderAndInterior(t *testing.T) {
	var pts []vertex.CoordinatePair
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			pts = append(pts, vertex.CoordinatePair{X: float64(x), Y: float64(y)})
		}
	}
	tn := mustTIN(t, pts)

	loop := Constraint{
		Points: []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}},
		Closed: true,
	}
	indices, err := tn.AddConstraints([]Constraint{loop})
	require.NoError(t, err)
	require.Equal(t, []int{0}, indices)

	idAt := func(x, y float64) vertex.ID {
		for id := vertex.ID(1); int(id) < len(tn.verts); id++ {
			v := tn.verts[id]
			if v.X() == x && v.Y() == y {
				return id
			}
		}
		t.Fatalf("no vertex at (%v, %v)", x, y)
		return vertex.NilID
	}

	e, ok := tn.findDirEdge(idAt(0, 0), idAt(1, 0))
	require.True(t, ok)
	require.Equal(t, 0, tn.store.BorderIndex(e))
	require.Equal(t, 0, tn.store.InteriorIndex(e))
}

func TestGetVerticesExcludesGhost(t *testing.T) {
	pts := []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	tn := mustTIN(t, pts)

	count := 0
	for v := range tn.GetVertices() {
		require.False(t, v.IsNullVertex())
		count++
	}
	require.Equal(t, 3, count)
}

func TestGetTrianglesExcludesGhostFaces(t *testing.T) {
	pts := []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	tn := mustTIN(t, pts)

	count := 0
	for range tn.GetTriangles() {
		count++
	}
	require.Equal(t, 1, count)
}

func TestDisposeMakesAddFail(t *testing.T) {
	pts := []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	tn := mustTIN(t, pts)
	tn.Dispose()

	_, err := tn.Add(1, 1, 0)
	require.ErrorIs(t, err, ErrDisposed)
}
