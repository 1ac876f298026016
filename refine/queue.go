package refine

import "container/heap"

// badTriangleItem is one candidate in the bad-triangle priority queue,
// identified by its representative edge's quartet base index (stable
// across everything except the triangle itself being legalized away).
type badTriangleItem struct {
	base  int
	area2 float64
}

// badTriangleQueue is a max-heap on area² (spec.md §4.J: "keyed by
// signed-area² (largest first)"), with a companion set so the same
// triangle is never queued twice.
type badTriangleQueue struct {
	items []badTriangleItem
	seen  map[int]bool
}

func newBadTriangleQueue() *badTriangleQueue {
	return &badTriangleQueue{seen: make(map[int]bool)}
}

func (q *badTriangleQueue) Len() int { return len(q.items) }
func (q *badTriangleQueue) Less(i, j int) bool {
	return q.items[i].area2 > q.items[j].area2
}
func (q *badTriangleQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *badTriangleQueue) Push(x any)    { q.items = append(q.items, x.(badTriangleItem)) }
func (q *badTriangleQueue) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	q.items = old[:n-1]
	return it
}

// Add enqueues base if it is not already present.
func (q *badTriangleQueue) Add(base int, area2 float64) {
	if q.seen[base] {
		return
	}
	q.seen[base] = true
	heap.Push(q, badTriangleItem{base: base, area2: area2})
}

// PopWorst removes and returns the largest-area² entry, and false if
// the queue is empty.
func (q *badTriangleQueue) PopWorst() (int, bool) {
	if q.Len() == 0 {
		return 0, false
	}
	it := heap.Pop(q).(badTriangleItem)
	delete(q.seen, it.base)
	return it.base, true
}

// The encroached-segment side of spec.md §4.J's state is a FIFO in
// name only: processEncroachments rescans every constrained edge fresh
// on each call (see refine.go's package doc and DESIGN.md), so there is
// no cross-call queue to dedup against — the first encroached edge
// found in mesh order is returned directly without going through a
// separate queue type.
