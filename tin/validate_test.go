package tin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iceisfun/gocdt/vertex"
)

func TestIsConformantOnGridIsTrue(t *testing.T) {
	var pts []vertex.CoordinatePair
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			pts = append(pts, vertex.CoordinatePair{X: float64(i), Y: float64(j)})
		}
	}
	tn := mustTIN(t, pts)
	require.True(t, tn.IsConformant())
	require.NoError(t, tn.Validate())
}

func TestValidateCatchesVertexTooClose(t *testing.T) {
	tn := mustTIN(t, []vertex.CoordinatePair{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}})

	// Bypass Add's own duplicate rejection by inserting a coincident
	// vertex record directly, to exercise checkVertexSpacing in
	// isolation from the insertion path.
	dup, err := vertex.New(0, 0, 0, vertex.ID(len(tn.verts)), 0, 0)
	require.NoError(t, err)
	tn.verts = append(tn.verts, dup)

	err = tn.Validate()
	require.ErrorIs(t, err, ErrVertexTooClose)
}

func TestIsConformantAfterConstraintSplit(t *testing.T) {
	pts := []vertex.CoordinatePair{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 2, Y: 2},
	}
	tn := mustTIN(t, pts)
	_, err := tn.AddConstraints([]Constraint{
		{Points: []vertex.CoordinatePair{{X: 0, Y: 2}, {X: 4, Y: 2}}, Closed: false},
	})
	require.NoError(t, err)
	require.True(t, tn.IsConformant())
}
