// Package vertex implements the immutable point-with-attributes record the
// triangulation stores, plus the small coordinate helper types it is built
// from. Grounded on the teacher's types.Point (plain X/Y struct) and
// types.VertexID (sentinel-based integer handle), generalized per
// spec.md §3/§4.D to carry z, status bits, and an auxiliary byte.
package vertex

import (
	"fmt"
	"math"
)

// CoordinatePair is a mutable (x, y) location, used for scratch
// computation (Steiner candidate points, walk targets) before a Vertex is
// constructed from it.
type CoordinatePair struct {
	X, Y float64
}

// Status bits recorded on a Vertex (spec.md §3).
type Status uint8

const (
	// Synthetic marks a vertex created by the engine (Steiner points),
	// never supplied by the caller.
	Synthetic Status = 1 << iota
	// ConstraintMember marks a vertex lying on a constraint.
	ConstraintMember
	// Withheld marks a vertex the TIN declined to insert (duplicate).
	Withheld
)

// ID is an index-based handle into a TIN's vertex arena. Spec.md §9:
// "wrap reference identity in index-based arenas... equality in hot paths
// must be index equality, not value equality."
type ID int

// NilID is the sentinel for "no vertex".
const NilID ID = -1

// Vertex is an immutable record: (x, y, z, index, status, auxiliary index).
// A Vertex with Z = NaN is the null ghost (spec.md §3); exactly one shared
// ghost instance closes the convex hull for any given TIN.
type Vertex struct {
	x, y, z float64
	index   ID
	status  Status
	aux     uint8
}

// New constructs a Vertex. aux must fit in a byte (spec.md §7: "auxiliary
// index > 255" is an invalid-argument error); since aux is already a
// uint8 in Go, the range check only matters for callers importing from a
// wider-width source, so New accepts an int and validates it here.
func New(x, y, z float64, index ID, status Status, aux int) (Vertex, error) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return Vertex{}, fmt.Errorf("vertex: x and y must not be NaN")
	}
	if aux < 0 || aux > 255 {
		return Vertex{}, fmt.Errorf("vertex: auxiliary index %d out of range [0,255]", aux)
	}
	return Vertex{x: x, y: y, z: z, index: index, status: status, aux: uint8(aux)}, nil
}

// ghost is the single sentinel null vertex; its Z is NaN so IsNull is true
// and it compares unequal to every real vertex by index (NilID).
var ghost = Vertex{x: 0, y: 0, z: math.NaN(), index: NilID}

// Ghost returns the shared sentinel ghost vertex that closes the convex
// hull's unbounded face.
func Ghost() Vertex { return ghost }

// X returns the x coordinate.
func (v Vertex) X() float64 { return v.x }

// Y returns the y coordinate.
func (v Vertex) Y() float64 { return v.y }

// Z returns the z coordinate (NaN for the ghost vertex).
func (v Vertex) Z() float64 { return v.z }

// Index returns this vertex's arena index, or NilID for the ghost.
func (v Vertex) Index() ID { return v.index }

// IsNullVertex reports whether this is the ghost sentinel.
func (v Vertex) IsNullVertex() bool { return math.IsNaN(v.z) }

// IsSynthetic reports whether the engine created this vertex.
func (v Vertex) IsSynthetic() bool { return v.status&Synthetic != 0 }

// IsConstraintMember reports whether this vertex lies on a constraint.
func (v Vertex) IsConstraintMember() bool { return v.status&ConstraintMember != 0 }

// IsWithheld reports whether the TIN declined to insert this vertex.
func (v Vertex) IsWithheld() bool { return v.status&Withheld != 0 }

// AuxIndex returns the caller-supplied classification byte.
func (v Vertex) AuxIndex() uint8 { return v.aux }

// WithStatus returns a copy of v with status bits added (mutators return
// new instances; spec.md §6 Vertex contract: "Immutable; mutators return
// new instances").
func (v Vertex) WithStatus(add Status) Vertex {
	v.status |= add
	return v
}

// Point returns the (x, y) pair for geometric predicate calls.
func (v Vertex) Point() CoordinatePair {
	return CoordinatePair{X: v.x, Y: v.y}
}

// Distance returns the Euclidean distance between v and o.
func (v Vertex) Distance(o Vertex) float64 {
	return math.Hypot(v.x-o.x, v.y-o.y)
}

// DistanceSq returns the squared Euclidean distance between v and o,
// avoiding the sqrt when only comparisons are needed.
func (v Vertex) DistanceSq(o Vertex) float64 {
	dx, dy := v.x-o.x, v.y-o.y
	return dx*dx + dy*dy
}

// Label formats a human-readable label for the vertex: synthetic vertices
// are prefixed "S" per spec.md §4.D, others just show their index.
func (v Vertex) Label() string {
	if v.IsNullVertex() {
		return "ghost"
	}
	if v.IsSynthetic() {
		return fmt.Sprintf("S%d", v.index)
	}
	return fmt.Sprintf("%d", v.index)
}

// String implements fmt.Stringer for debugging output.
func (v Vertex) String() string {
	if v.IsNullVertex() {
		return "Vertex(ghost)"
	}
	return fmt.Sprintf("Vertex(%s: %g, %g, z=%g)", v.Label(), v.x, v.y, v.z)
}
