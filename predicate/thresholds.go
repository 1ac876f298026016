// Package predicate implements the geometric predicates the triangulation
// relies on: orientation, in-circle, and circumcircle, each evaluated in
// float64 first and promoted to double-double (package dd) only when the
// fast result is too close to zero to trust against the current scale.
package predicate

import (
	"fmt"
	"math"
)

// Threshold factors from spec.md §4.B. These are multiplied by the nominal
// point spacing and then normalized to an ulp-relative scale, matching the
// teacher's scale-derived tolerance in types/epsilon.go (abs + rel*|v|)
// generalized to the three distinct filters the adaptive predicates need.
const (
	precisionThresholdFactor = 256.0
	halfPlaneThresholdFactor = 256.0
	delaunayThresholdFactor  = 256.0
	inCircleThresholdFactor  = 1048576.0
	vertexToleranceDivisor   = 1e5
)

// Thresholds holds the scale-dependent tolerances derived once per TIN from
// its nominal point spacing (spec.md §4.C). Immutable after construction.
type Thresholds struct {
	NominalSpacing float64

	PrecisionThreshold       float64
	HalfPlaneThreshold       float64
	DelaunayThreshold        float64
	InCircleThreshold        float64
	CircumcircleDetThreshold float64

	VertexTolerance   float64
	VertexToleranceSq float64
}

// config holds the factors NewThresholds scales by nominalSpacing,
// overridable per-TIN via Option (spec.md §3's ambient stack: the
// teacher's mesh.Option/config pattern, applied here to the factors
// that would otherwise be package constants for every caller).
type config struct {
	precisionFactor        float64
	halfPlaneFactor        float64
	delaunayFactor         float64
	inCircleFactor         float64
	vertexToleranceDivisor float64
}

// Option configures the Thresholds NewThresholds derives.
type Option func(*config)

// WithPrecisionThresholdFactor overrides the scale factor behind
// Thresholds.PrecisionThreshold (default 256). The orientation test
// filters on HalfPlaneThreshold, not on PrecisionThreshold.
func WithPrecisionThresholdFactor(factor float64) Option {
	return func(c *config) {
		if factor > 0 {
			c.precisionFactor = factor
		}
	}
}

// WithInCircleThresholdFactor overrides the in-circle test
// zero-tolerance scale factor (default 1048576).
func WithInCircleThresholdFactor(factor float64) Option {
	return func(c *config) {
		if factor > 0 {
			c.inCircleFactor = factor
		}
	}
}

// WithVertexToleranceDivisor overrides the divisor applied to
// nominalSpacing to derive VertexTolerance (default 1e5): a smaller
// divisor widens the radius within which two points are treated as
// coincident.
func WithVertexToleranceDivisor(divisor float64) Option {
	return func(c *config) {
		if divisor > 0 {
			c.vertexToleranceDivisor = divisor
		}
	}
}

// NewThresholds validates spacing and derives the scale-dependent
// tolerances used by every predicate in this package.
func NewThresholds(nominalSpacing float64, opts ...Option) (*Thresholds, error) {
	if nominalSpacing <= 0 || math.IsNaN(nominalSpacing) || math.IsInf(nominalSpacing, 0) {
		return nil, fmt.Errorf("predicate: nominal spacing must be positive and finite, got %v", nominalSpacing)
	}

	cfg := config{
		precisionFactor:        precisionThresholdFactor,
		halfPlaneFactor:        halfPlaneThresholdFactor,
		delaunayFactor:         delaunayThresholdFactor,
		inCircleFactor:         inCircleThresholdFactor,
		vertexToleranceDivisor: vertexToleranceDivisor,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ulp := math.Nextafter(1, 2) - 1 // machine epsilon for float64

	t := &Thresholds{
		NominalSpacing: nominalSpacing,

		PrecisionThreshold: cfg.precisionFactor * ulp * nominalSpacing,
		HalfPlaneThreshold: cfg.halfPlaneFactor * ulp * nominalSpacing * nominalSpacing,
		DelaunayThreshold:  cfg.delaunayFactor * ulp * nominalSpacing * nominalSpacing,
		InCircleThreshold:  cfg.inCircleFactor * ulp * math.Pow(nominalSpacing, 4),

		VertexTolerance: nominalSpacing / cfg.vertexToleranceDivisor,
	}
	t.CircumcircleDetThreshold = t.InCircleThreshold
	t.VertexToleranceSq = t.VertexTolerance * t.VertexTolerance
	return t, nil
}
