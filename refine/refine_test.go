package refine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iceisfun/gocdt/tin"
	"github.com/iceisfun/gocdt/vertex"
)

func mustTIN(t *testing.T, pts []vertex.CoordinatePair) *tin.TIN {
	t.Helper()
	tn, err := tin.NewTIN(pts, nil, 1.0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return tn
}

func TestNewRejectsInvalidMinAngle(t *testing.T) {
	tn := mustTIN(t, []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}})

	_, err := New(tn, WithMinAngleDegrees(0))
	require.ErrorIs(t, err, ErrInvalidMinAngle)

	_, err = New(tn, WithMinAngleDegrees(60))
	require.ErrorIs(t, err, ErrInvalidMinAngle)
}

func TestRefineOnceNoOpOnGoodTriangle(t *testing.T) {
	// A well-proportioned triangle (shortest edge 4, circumradius 2.5)
	// already satisfies a 20 degree target; RefineOnce must not insert.
	tn := mustTIN(t, []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 4}})

	r, err := New(tn)
	require.NoError(t, err)

	_, inserted, err := r.RefineOnce()
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, 1, tn.CountTriangles().Valid)
}

func TestRefineOnceInsertsOffcenterForSkinnyTriangle(t *testing.T) {
	// Right triangle with legs 10 and 1: radius/shortest-edge ratio is
	// well above the 20 degree threshold's rho_min.
	tn := mustTIN(t, []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 1}})

	r, err := New(tn)
	require.NoError(t, err)

	v, inserted, err := r.RefineOnce()
	require.NoError(t, err)
	require.True(t, inserted)
	require.NotEqual(t, vertex.NilID, v)
	require.Equal(t, 3, tn.CountTriangles().Valid)

	meta, ok := r.meta[v]
	require.True(t, ok)
	require.Equal(t, Offcenter, meta.kind)
}

func TestRefineConvergesOnSkinnyTriangle(t *testing.T) {
	tn := mustTIN(t, []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 1}})

	r, err := New(tn, WithMaxIterations(50))
	require.NoError(t, err)

	converged, err := r.Refine()
	require.NoError(t, err)
	require.True(t, converged)
	require.GreaterOrEqual(t, tn.CountTriangles().Valid, 3)
}

func TestRefineOnceSplitsEncroachedConstraint(t *testing.T) {
	tn := mustTIN(t, []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}})

	_, err := tn.AddConstraints([]tin.Constraint{
		{Points: []vertex.CoordinatePair{{X: 2, Y: 2}, {X: 8, Y: 2}}, Closed: false},
	})
	require.NoError(t, err)

	// A nearby vertex inside the segment's diametral disk (center
	// (5,2), radius 3): distance from (5,3) is 1.
	_, err = tn.Add(5, 3, 0)
	require.NoError(t, err)

	r, err := New(tn, WithMaxIterations(10))
	require.NoError(t, err)

	before := tn.CountTriangles().Valid
	v, inserted, err := r.RefineOnce()
	require.NoError(t, err)
	require.True(t, inserted)

	meta, ok := r.meta[v]
	require.True(t, ok)
	require.Equal(t, Midpoint, meta.kind)
	require.Greater(t, tn.CountTriangles().Valid, before)
}

func TestRefineOnceIsIdempotentOnceConverged(t *testing.T) {
	tn := mustTIN(t, []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 4}})
	r, err := New(tn)
	require.NoError(t, err)

	_, inserted, err := r.RefineOnce()
	require.NoError(t, err)
	require.False(t, inserted)

	// Calling it again must not panic or mutate the mesh further.
	_, inserted, err = r.RefineOnce()
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, 1, tn.CountTriangles().Valid)
}
