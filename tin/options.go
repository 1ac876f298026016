package tin

import (
	"github.com/iceisfun/gocdt/predicate"
	"github.com/iceisfun/gocdt/vertex"
)

// config holds NewTIN's optional overrides, mutated by Option closures
// before the TIN is built — the same functional-option pattern the
// teacher's mesh package uses for its config struct (mesh/options.go).
type config struct {
	diag            *predicate.Diagnostics
	vertexTolerance float64 // <=0 means "use predicate.NewThresholds' scale-derived default"
	debugAddVertex  func(vertex.ID, vertex.CoordinatePair)
}

// Option configures a TIN during construction.
type Option func(*config)

// WithDiagnostics installs a shared predicate.Diagnostics counter in
// place of the TIN's own private one, letting a caller aggregate
// orientation-test counts across multiple TINs or surface them
// mid-build.
func WithDiagnostics(d *predicate.Diagnostics) Option {
	return func(c *config) {
		if d != nil {
			c.diag = d
		}
	}
}

// WithVertexTolerance overrides the scale-derived vertex tolerance
// predicate.NewThresholds would otherwise compute from nominalSpacing.
func WithVertexTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.vertexTolerance = tol
		}
	}
}

// WithDebugAddVertex installs a hook called after every vertex this
// TIN successfully inserts via Add, mirroring the teacher's
// WithDebugAddVertex hook.
func WithDebugAddVertex(hook func(vertex.ID, vertex.CoordinatePair)) Option {
	return func(c *config) {
		c.debugAddVertex = hook
	}
}

// addConfig holds per-call overrides for Add, AddSorted and SplitEdge.
type addConfig struct {
	status vertex.Status
}

// AddOption configures a single Add, AddSorted or SplitEdge call.
type AddOption func(*addConfig)

// WithVertexStatus tags the inserted vertex with the given status
// bits (spec.md §3/§4.D). The Ruppert refiner's Steiner insertions
// pass WithVertexStatus(vertex.Synthetic); the constraint processor's
// on-constraint insertions pass WithVertexStatus(vertex.ConstraintMember).
func WithVertexStatus(status vertex.Status) AddOption {
	return func(c *addConfig) { c.status |= status }
}
