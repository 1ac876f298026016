package predicate

// Point is the minimal (x, y) pair the predicates operate on. Package
// vertex's Vertex type converts to this via its Point() method; predicates
// never need z or any of the vertex status bits.
type Point struct {
	X, Y float64
}
