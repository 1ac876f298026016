package tin

import (
	"github.com/iceisfun/gocdt/quadedge"
	"github.com/iceisfun/gocdt/vertex"
)

// Navigator is a read-only facade over a TIN's quad-edge topology, for
// callers that need to walk edges and faces without holding a
// *quadedge.Store handle directly (spec.md §7).
type Navigator struct {
	t *TIN
}

// GetNavigator returns a Navigator bound to this TIN.
func (t *TIN) GetNavigator() *Navigator {
	return &Navigator{t: t}
}

// Org returns e's origin vertex.
func (n *Navigator) Org(e quadedge.DirEdge) vertex.ID { return n.t.store.Org(e) }

// Dest returns e's destination vertex.
func (n *Navigator) Dest(e quadedge.DirEdge) vertex.ID { return n.t.store.Dest(e) }

// LNext returns the next edge around e's left face.
func (n *Navigator) LNext(e quadedge.DirEdge) quadedge.DirEdge { return n.t.store.LNext(e) }

// LPrev returns the previous edge around e's left face.
func (n *Navigator) LPrev(e quadedge.DirEdge) quadedge.DirEdge { return n.t.store.LPrev(e) }

// ONext returns the next edge, counterclockwise, around Org(e).
func (n *Navigator) ONext(e quadedge.DirEdge) quadedge.DirEdge { return n.t.store.Next(e) }

// OPrev returns the next edge, clockwise, around Org(e).
func (n *Navigator) OPrev(e quadedge.DirEdge) quadedge.DirEdge { return n.t.store.OPrev(e) }

// Sym returns e reversed.
func (n *Navigator) Sym(e quadedge.DirEdge) quadedge.DirEdge { return quadedge.Sym(e) }

// VertexAt returns the vertex record stored at id.
func (n *Navigator) VertexAt(id vertex.ID) vertex.Vertex { return n.t.VertexAt(id) }

// EdgeAt returns some live directed edge with Org(e) == v.
func (n *Navigator) EdgeAt(v vertex.ID) quadedge.DirEdge { return n.t.edgeAt(v) }

// IsGhost reports whether id is the TIN's shared ghost vertex.
func (n *Navigator) IsGhost(id vertex.ID) bool { return id == ghostIndex }
