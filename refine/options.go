package refine

import "errors"

// ErrInvalidMinAngle is returned when MinAngleDegrees falls outside
// the open interval (0, 60) the off-center construction requires
// (spec.md §4.J).
var ErrInvalidMinAngle = errors.New("refine: MinAngleDegrees must be in (0, 60)")

// Options configures a Refiner (spec.md §4.J). The zero value is not
// usable directly; start from DefaultOptions and override fields, the
// same functional-option-adjacent pattern the teacher's mesh package
// uses for its config struct (here expressed as a plain struct since
// every field has a sane, independent default, matching the spec's
// flat option list).
type Options struct {
	MinAngleDegrees              float64
	MinTriangleArea              float64
	EnforceSqrt2Guard            bool
	SkipSeditiousTriangles       bool
	IgnoreSeditiousEncroachments bool
	InterpolateZ                 bool
	RefineOnlyInsideConstraints  bool
	AddBoundingBoxConstraint     bool
	BoundingBoxBufferPercent     float64
	MaxIterations                int
}

// DefaultOptions returns the spec's documented defaults: a 20 degree
// minimum angle, the sqrt(2) termination guard and seditious-edge
// handling both enabled, no bounding box constraint, and a generous
// iteration cap.
func DefaultOptions() Options {
	return Options{
		MinAngleDegrees:              20,
		MinTriangleArea:              0,
		EnforceSqrt2Guard:            true,
		SkipSeditiousTriangles:       true,
		IgnoreSeditiousEncroachments: true,
		InterpolateZ:                 false,
		RefineOnlyInsideConstraints:  false,
		AddBoundingBoxConstraint:     false,
		BoundingBoxBufferPercent:     5,
		MaxIterations:                100000,
	}
}

// Option mutates a Refiner's resolved Options, following the same
// functional-option idiom the mesh package uses for its config.
type Option func(*Options)

// WithMinAngleDegrees overrides the minimum interior angle target.
func WithMinAngleDegrees(degrees float64) Option {
	return func(o *Options) { o.MinAngleDegrees = degrees }
}

// WithMinTriangleArea sets a floor below which a triangle is never
// split, regardless of angle.
func WithMinTriangleArea(area float64) Option {
	return func(o *Options) { o.MinTriangleArea = area }
}

// WithEnforceSqrt2Guard toggles the off-center sqrt(2) termination
// guard.
func WithEnforceSqrt2Guard(enabled bool) Option {
	return func(o *Options) { o.EnforceSqrt2Guard = enabled }
}

// WithSkipSeditiousTriangles toggles skipping triangles with a
// seditious edge instead of refining them.
func WithSkipSeditiousTriangles(enabled bool) Option {
	return func(o *Options) { o.SkipSeditiousTriangles = enabled }
}

// WithIgnoreSeditiousEncroachments toggles ignoring encroachments
// witnessed only by a seditious vertex.
func WithIgnoreSeditiousEncroachments(enabled bool) Option {
	return func(o *Options) { o.IgnoreSeditiousEncroachments = enabled }
}

// WithInterpolateZ enables interpolating inserted vertices' Z from a
// snapshot of the mesh taken at Refiner construction.
func WithInterpolateZ(enabled bool) Option {
	return func(o *Options) { o.InterpolateZ = enabled }
}

// WithRefineOnlyInsideConstraints restricts refinement to triangles
// inside a region constraint.
func WithRefineOnlyInsideConstraints(enabled bool) Option {
	return func(o *Options) { o.RefineOnlyInsideConstraints = enabled }
}

// WithAddBoundingBoxConstraint has New add a buffered bounding-box
// constraint around the TIN's current hull before refining.
func WithAddBoundingBoxConstraint(enabled bool) Option {
	return func(o *Options) { o.AddBoundingBoxConstraint = enabled }
}

// WithBoundingBoxBufferPercent sets the buffer, as a percentage of the
// hull's extent, used by WithAddBoundingBoxConstraint.
func WithBoundingBoxBufferPercent(percent float64) Option {
	return func(o *Options) { o.BoundingBoxBufferPercent = percent }
}

// WithMaxIterations caps the number of RefineOnce iterations Refine
// will run before giving up.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}
