package quadedge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iceisfun/gocdt/vertex"
)

func TestMakeEdgeOrgDest(t *testing.T) {
	s := NewStore(4)
	e := s.MakeEdge()
	s.SetOrg(e, 1)
	s.SetDest(e, 2)

	require.Equal(t, vertex.ID(1), s.Org(e))
	require.Equal(t, vertex.ID(2), s.Dest(e))
	require.Equal(t, vertex.ID(2), s.Org(Sym(e)))
	require.Equal(t, vertex.ID(1), s.Dest(Sym(e)))
}

func TestSymInvolution(t *testing.T) {
	s := NewStore(4)
	e := s.MakeEdge()
	require.Equal(t, e, Sym(Sym(e)))
	require.Equal(t, e, Rot(Rot(Rot(Rot(e)))))
}

func TestIsolatedEdgeRings(t *testing.T) {
	s := NewStore(4)
	e := s.MakeEdge()
	// An isolated edge's Org ring contains only itself.
	require.Equal(t, e, s.Next(e))
	// Its dual ring (around the left/right faces) likewise loops to itself.
	require.Equal(t, Rot(e), s.Next(Sym(Rot(e))))
}

// buildTriangle constructs a single CCW triangle a->b->c using the
// classic Splice/Connect sequence and returns the edge a->b.
func buildTriangle(s *Store, a, b, c vertex.ID) DirEdge {
	ea := s.MakeEdge()
	s.SetOrg(ea, a)
	s.SetDest(ea, b)

	eb := s.MakeEdge()
	Splice(s, Sym(ea), eb)
	s.SetOrg(eb, b)
	s.SetDest(eb, c)

	ec := Connect(s, eb, ea)
	_ = ec
	return ea
}

func TestBuildTriangleLNextCycle(t *testing.T) {
	s := NewStore(8)
	ea := buildTriangle(s, 10, 20, 30)

	eb := s.LNext(ea)
	ec := s.LNext(eb)
	back := s.LNext(ec)

	require.Equal(t, vertex.ID(10), s.Org(ea))
	require.Equal(t, vertex.ID(20), s.Dest(ea))
	require.Equal(t, vertex.ID(20), s.Org(eb))
	require.Equal(t, vertex.ID(30), s.Dest(eb))
	require.Equal(t, vertex.ID(30), s.Org(ec))
	require.Equal(t, vertex.ID(10), s.Dest(ec))
	require.Equal(t, ea, back, "three LNext steps around a triangle must return to the start")
}

func TestPinwheelVisitsAllEdgesAtVertex(t *testing.T) {
	s := NewStore(8)
	ea := buildTriangle(s, 10, 20, 30)

	seen := 0
	s.Pinwheel(ea, func(e DirEdge) bool {
		require.Equal(t, vertex.ID(10), s.Org(e))
		seen++
		return true
	})
	require.GreaterOrEqual(t, seen, 1)
}

func TestLineMarkerRoundTrip(t *testing.T) {
	s := NewStore(4)
	e := s.MakeEdge()

	require.Equal(t, -1, s.LineIndex(e))

	s.SetLineIndex(e, 42)
	require.Equal(t, 42, s.LineIndex(e))
	// The marker lives on the quartet and is visible from Sym too.
	require.Equal(t, 42, s.LineIndex(Sym(e)))
}

func TestBorderAndInteriorMarkers(t *testing.T) {
	s := NewStore(4)
	e := s.MakeEdge()

	require.Equal(t, -1, s.BorderIndex(e))
	s.SetBorderIndex(e, 7)
	require.Equal(t, 7, s.BorderIndex(e))
	require.Equal(t, 7, s.BorderIndex(Sym(e)), "border is a property of the undirected edge")

	require.Equal(t, -1, s.InteriorIndex(e))
	s.SetInteriorIndex(e, 3)
	require.Equal(t, 3, s.InteriorIndex(e))
	require.Equal(t, -1, s.InteriorIndex(Sym(e)), "interior is tracked per directed rotation, one side may differ from the other")
}

func TestAnyConstraint(t *testing.T) {
	s := NewStore(4)
	e := s.MakeEdge()

	require.False(t, s.AnyConstraint(e))
	s.SetLineIndex(e, 0)
	require.True(t, s.AnyConstraint(e))

	e2 := s.MakeEdge()
	require.False(t, s.AnyConstraint(e2))
	s.SetBorderIndex(e2, 0)
	require.True(t, s.AnyConstraint(e2))
}

func TestDeleteEdgeReusesSlot(t *testing.T) {
	s := NewStore(1)
	e1 := s.MakeEdge()
	s.DeleteEdge(e1)
	require.False(t, s.IsLive(e1))

	e2 := s.MakeEdge()
	require.True(t, s.IsLive(e2))
	require.Equal(t, e1/4, e2/4, "freed quartet slot should be reused")
}
