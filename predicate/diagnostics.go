package predicate

// Diagnostics counts predicate invocations and extended-precision
// promotions. The engine is single-threaded (spec.md §5); these counters
// are plain fields written only from the mutation thread. Snapshot returns
// a plain copy; it takes no lock, so it does not guard against a
// concurrent writer.
type Diagnostics struct {
	OrientationCalls   int64
	OrientationDD      int64
	InCircleCalls      int64
	InCircleDD         int64
	CircumcircleCalls  int64
}

// Snapshot returns a copy of the current counters.
func (d *Diagnostics) Snapshot() Diagnostics {
	if d == nil {
		return Diagnostics{}
	}
	return *d
}
