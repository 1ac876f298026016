package vertex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsNaNCoordinates(t *testing.T) {
	_, err := New(math.NaN(), 0, 0, 0, 0, 0)
	require.Error(t, err)
}

func TestNewRejectsAuxOutOfRange(t *testing.T) {
	_, err := New(0, 0, 0, 0, 0, 256)
	require.Error(t, err)

	_, err = New(0, 0, 0, 0, 0, -1)
	require.Error(t, err)
}

func TestGhostIsNull(t *testing.T) {
	g := Ghost()
	require.True(t, g.IsNullVertex())
	require.Equal(t, NilID, g.Index())
}

func TestStatusBits(t *testing.T) {
	v, err := New(1, 2, 3, 5, 0, 0)
	require.NoError(t, err)
	require.False(t, v.IsSynthetic())

	v2 := v.WithStatus(Synthetic)
	require.True(t, v2.IsSynthetic())
	require.False(t, v.IsSynthetic(), "WithStatus must not mutate the receiver")
}

func TestDistance(t *testing.T) {
	a, err := New(0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	b, err := New(3, 4, 0, 1, 0, 0)
	require.NoError(t, err)

	require.InDelta(t, 5.0, a.Distance(b), 1e-12)
	require.InDelta(t, 25.0, a.DistanceSq(b), 1e-12)
}

func TestLabelSyntheticPrefix(t *testing.T) {
	v, err := New(0, 0, 0, 7, Synthetic, 0)
	require.NoError(t, err)
	require.Equal(t, "S7", v.Label())

	plain, err := New(0, 0, 0, 7, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "7", plain.Label())

	require.Equal(t, "ghost", Ghost().Label())
}
