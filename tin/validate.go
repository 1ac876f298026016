package tin

import (
	"errors"
	"fmt"

	"github.com/iceisfun/gocdt/quadedge"
)

// Sentinel errors returned by Validate, one per quantified invariant
// (spec.md §8's "Quantified invariants" list).
var (
	ErrNotLocallyDelaunay   = errors.New("tin: unconstrained edge is not locally Delaunay")
	ErrVertexTooClose       = errors.New("tin: two active vertices lie within tolerance")
	ErrBorderNotSimpleCycle = errors.New("tin: region border does not form a simple cycle")
)

// IsConformant reports whether every pair of adjacent non-ghost
// triangles sharing an unconstrained edge is locally Delaunay (spec.md
// §3 invariant 2, exercised by the diagonal-constraint scenario in
// §8). It never mutates the mesh.
func (t *TIN) IsConformant() bool {
	return t.checkDelaunay() == nil
}

// Validate runs the mesh's structural invariants and returns the first
// violation found, wrapped with enough context to locate it. Grounded
// on the teacher's validation package's sentinel-error-per-violation
// style (validation/triangle.go), adapted from its triangle-soup
// MeshProvider checks to this package's quad-edge store.
func (t *TIN) Validate() error {
	if err := t.checkDelaunay(); err != nil {
		return err
	}
	if err := t.checkVertexSpacing(); err != nil {
		return err
	}
	return t.checkBorderCycles()
}

func (t *TIN) checkDelaunay() error {
	for e := range t.GetEdges() {
		if t.store.AnyConstraint(e) {
			continue
		}
		a, b := t.store.Org(e), t.store.Dest(e)
		apexLeft := t.store.Dest(t.store.LNext(e))
		apexRight := t.store.Dest(t.store.LNext(quadedge.Sym(e)))
		if t.inCircleGhostAware(a, b, apexLeft, apexRight) {
			return fmt.Errorf("%w: edge %d->%d", ErrNotLocallyDelaunay, a, b)
		}
	}
	return nil
}

// checkVertexSpacing confirms no two active vertices lie within
// vertexTolerance of each other (spec.md §3 invariant 4), an O(n²)
// scan appropriate only for tests and debug assertions on small
// meshes, not for production use on large ones.
func (t *TIN) checkVertexSpacing() error {
	tolSq := t.th.VertexToleranceSq
	verts := t.verts[1:]
	for i := 1; i < len(verts); i++ {
		vi := verts[i]
		if vi.IsNullVertex() {
			continue
		}
		for j := 0; j < i; j++ {
			vj := verts[j]
			if vj.IsNullVertex() {
				continue
			}
			dx, dy := vi.X()-vj.X(), vi.Y()-vj.Y()
			if dx*dx+dy*dy < tolSq {
				return fmt.Errorf("%w: vertices %d and %d", ErrVertexTooClose, vi.Index(), vj.Index())
			}
		}
	}
	return nil
}

// checkBorderCycles confirms every region constraint's border edges
// form a simple closed walk (spec.md §3 invariant 3): starting from
// any border edge of index k, following LNext across border-marked
// edges must return to the start after a finite walk without revisiting
// an edge.
func (t *TIN) checkBorderCycles() error {
	byIndex := make(map[int][]quadedge.DirEdge)
	for e := range t.GetEdges() {
		if idx := t.store.BorderIndex(e); idx >= 0 {
			byIndex[idx] = append(byIndex[idx], e)
		}
	}

	for idx, edges := range byIndex {
		visited := make(map[quadedge.DirEdge]bool)
		for _, start := range edges {
			if visited[start] {
				continue
			}
			walked := 0
			e := start
			for {
				visited[e] = true
				visited[quadedge.Sym(e)] = true
				walked++
				next := t.nextBorderEdge(e, idx)
				if next == quadedge.NilEdge {
					return fmt.Errorf("%w: constraint %d breaks at edge starting %d", ErrBorderNotSimpleCycle, idx, t.store.Org(e))
				}
				if next == start {
					break
				}
				if walked > len(edges)+1 {
					return fmt.Errorf("%w: constraint %d does not close", ErrBorderNotSimpleCycle, idx)
				}
				e = next
			}
		}
	}
	return nil
}

// nextBorderEdge finds the next border edge of the same constraint
// index continuing from Dest(e), pinwheeling around that vertex.
func (t *TIN) nextBorderEdge(e quadedge.DirEdge, idx int) quadedge.DirEdge {
	found := quadedge.NilEdge
	start := quadedge.Sym(e)
	t.store.Pinwheel(start, func(spoke quadedge.DirEdge) bool {
		if spoke == start {
			return true
		}
		if t.store.BorderIndex(spoke) == idx {
			found = spoke
			return false
		}
		return true
	})
	return found
}
