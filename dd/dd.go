// Package dd implements double-double extended precision arithmetic.
//
// A Pair represents the value Hi+Lo, where Lo is small enough relative to
// Hi that the two doubles together carry roughly twice the mantissa of a
// single float64. This is the standard Dekker/Knuth error-free-transform
// technique, not arbitrary precision: it buys one extra doubling of
// precision, which is exactly what the adaptive geometric predicates in
// package predicate need when a float64 result is too close to zero to
// trust.
package dd

import "math"

// splitter is 2^27+1, used by split to break a float64 into two halves
// whose product with another split value is exact.
const splitter = 134217729.0

// Pair is an unevaluated sum Hi+Lo with |Lo| <= ulp(Hi)/2.
type Pair struct {
	Hi, Lo float64
}

// FromFloat64 returns the exact double-double representation of v.
func FromFloat64(v float64) Pair {
	return Pair{Hi: v, Lo: 0}
}

// Float64 collapses the pair back to a single double.
func (p Pair) Float64() float64 {
	return p.Hi + p.Lo
}

// IsZero reports whether the pair represents zero.
func (p Pair) IsZero() bool {
	return p.Hi == 0 && p.Lo == 0
}

// IsNaN reports whether either component is NaN.
func (p Pair) IsNaN() bool {
	return math.IsNaN(p.Hi) || math.IsNaN(p.Lo)
}

// IsInf reports whether the pair is an infinity.
func (p Pair) IsInf() bool {
	return math.IsInf(p.Hi, 0)
}

// IsFinite reports whether the pair is neither NaN nor infinite.
func (p Pair) IsFinite() bool {
	return !p.IsNaN() && !p.IsInf()
}

// Neg returns -p.
func (p Pair) Neg() Pair {
	return Pair{Hi: -p.Hi, Lo: -p.Lo}
}

// Abs returns |p|.
func (p Pair) Abs() Pair {
	if p.Hi < 0 || (p.Hi == 0 && p.Lo < 0) {
		return p.Neg()
	}
	return p
}

// twoSum computes s = a+b exactly as s+e (Knuth's TwoSum).
func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}

// fastTwoSum computes s = a+b exactly as s+e, assuming |a| >= |b|.
func fastTwoSum(a, b float64) (s, e float64) {
	s = a + b
	e = b - (s - a)
	return s, e
}

// split breaks a into a high and low part whose product with any other
// split value is computed without rounding error.
func split(a float64) (hi, lo float64) {
	c := splitter * a
	hi = c - (c - a)
	lo = a - hi
	return hi, lo
}

// twoProduct computes p = a*b exactly as p+e, taking the rounding error
// e from math.FMA rather than from Dekker's split-based TwoProduct.
func twoProduct(a, b float64) (p, e float64) {
	p = a * b
	e = math.FMA(a, b, -p)
	return p, e
}

// renormalize turns an unordered (hi, lo) into the canonical pair form.
func renormalize(hi, lo float64) Pair {
	s, e := fastTwoSum(hi, lo)
	return Pair{Hi: s, Lo: e}
}

// Add returns p+q.
func Add(p, q Pair) Pair {
	s, e := twoSum(p.Hi, q.Hi)
	e += p.Lo + q.Lo
	return renormalize(s, e)
}

// Sub returns p-q.
func Sub(p, q Pair) Pair {
	return Add(p, q.Neg())
}

// Mul returns p*q.
func Mul(p, q Pair) Pair {
	hi, lo := twoProduct(p.Hi, q.Hi)
	lo += p.Hi*q.Lo + p.Lo*q.Hi
	return renormalize(hi, lo)
}

// Div returns p/q.
func Div(p, q Pair) Pair {
	if q.IsZero() {
		return Pair{Hi: math.NaN(), Lo: math.NaN()}
	}
	qHi := p.Hi / q.Hi
	prod := Mul(FromFloat64(qHi), q)
	rem := Sub(p, prod)
	qLo := rem.Hi / q.Hi
	return renormalize(qHi, qLo)
}

// Cmp returns -1, 0, or +1 comparing p and q.
func Cmp(p, q Pair) int {
	d := Sub(p, q)
	switch {
	case d.Hi > 0 || (d.Hi == 0 && d.Lo > 0):
		return 1
	case d.Hi < 0 || (d.Hi == 0 && d.Lo < 0):
		return -1
	default:
		return 0
	}
}

// Sign returns -1, 0, or +1 for p's sign.
func (p Pair) Sign() int {
	return Cmp(p, Pair{})
}

// Min returns the smaller of p and q.
func Min(p, q Pair) Pair {
	if Cmp(p, q) <= 0 {
		return p
	}
	return q
}

// Max returns the larger of p and q.
func Max(p, q Pair) Pair {
	if Cmp(p, q) >= 0 {
		return p
	}
	return q
}

// twoDiffOfProducts computes a*b - c*d with one rounding error's worth of
// extra care; used by orientation and in-circle exact fallbacks so the
// classic four-term determinants round-trip through dd without manually
// expanding every cross term at the call site.
func twoDiffOfProducts(a, b, c, d float64) Pair {
	return Sub(Mul(FromFloat64(a), FromFloat64(b)), Mul(FromFloat64(c), FromFloat64(d)))
}

// TwoDiffOfProducts exposes twoDiffOfProducts for package predicate.
func TwoDiffOfProducts(a, b, c, d float64) Pair {
	return twoDiffOfProducts(a, b, c, d)
}
