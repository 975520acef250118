package tess

import (
	"slices"
	"sort"

	"github.com/golang/geo/r1"
)

// KnotVector is a non-decreasing sequence of B-spline knots. A knot vector
// for a curve of the given order and length (number of control points) has
// order+length entries.
type KnotVector []float64

// ClampedKnots returns an open uniform knot vector on [0, 1]: order copies of
// 0, length−order uniformly spaced interior knots, and order copies of 1.
//
// With length == order this is the knot vector of a Bézier curve.
func ClampedKnots(order, length int) KnotVector {
	kv := make(KnotVector, order+length)
	interior := length - order
	for i := range kv {
		switch {
		case i < order:
			kv[i] = 0
		case i >= length:
			kv[i] = 1
		default:
			kv[i] = float64(i-order+1) / float64(interior+1)
		}
	}
	return kv
}

// Domain returns the parameter range over which a curve of the given order
// and length is defined.
func (kv KnotVector) Domain(order, length int) r1.Interval {
	return r1.Interval{Lo: kv[order-1], Hi: kv[length]}
}

// Valid reports whether the knot vector is non-decreasing, has the right
// number of entries and a non-empty domain.
func (kv KnotVector) Valid(order, length int) bool {
	if order < 1 || length < order || len(kv) != order+length {
		return false
	}
	for i := 1; i < len(kv); i++ {
		if !(kv[i] >= kv[i-1]) {
			// Also catches NaN.
			return false
		}
	}
	return kv[order-1] < kv[length]
}

// Span returns the index s of the knot interval [kv[s], kv[s+1]) containing
// t, clamped to the curve's domain. The last non-empty interval is used for
// t at the end of the domain.
func (kv KnotVector) Span(order, length int, t float64) int {
	lo, hi := order-1, length-1
	if t >= kv[length] {
		// Walk back over the knots repeated at the end of the domain.
		s := hi
		for s > lo && kv[s] == kv[s+1] {
			s--
		}
		return s
	}
	if t <= kv[lo] {
		s := lo
		for s < hi && kv[s] == kv[s+1] {
			s++
		}
		return s
	}
	// First index in (lo, hi+1] whose knot exceeds t.
	i := sort.Search(hi-lo+1, func(i int) bool { return kv[lo+1+i] > t })
	return lo + i
}

// Multiplicity returns how often t appears in the knot vector.
func (kv KnotVector) Multiplicity(t float64) int {
	i, found := slices.BinarySearch(kv, t)
	if !found {
		return 0
	}
	n := 0
	for ; i < len(kv) && kv[i] == t; i++ {
		n++
	}
	return n
}

// C1Discontinuities returns the distinct interior knots whose multiplicity is
// at least order−1. At these parameters the tangent of a curve with this knot
// vector, and the tangent plane of a surface, is not well defined.
func (kv KnotVector) C1Discontinuities(order, length int) []float64 {
	dom := kv.Domain(order, length)
	var out []float64
	for i := order; i < length; i++ {
		t := kv[i]
		if !dom.InteriorContains(t) || (len(out) > 0 && out[len(out)-1] == t) {
			continue
		}
		if kv.Multiplicity(t) >= max(order-1, 1) {
			out = append(out, t)
		}
	}
	return out
}

// MiddleKnot returns the knot halfway through the knot vector and whether it
// lies strictly inside the domain. Splitting there keeps both halves free of
// the other half's interior knots.
func (kv KnotVector) MiddleKnot(order, length int) (float64, bool) {
	if length <= order {
		return 0, false
	}
	t := kv[(length+order)/2]
	return t, kv.Domain(order, length).InteriorContains(t)
}

// basisFuncs evaluates the order non-zero B-spline basis functions of span s
// at t into out, which must have length order.
func (kv KnotVector) basisFuncs(s int, t float64, order int, out []float64) {
	var leftBuf, rightBuf [8]float64
	var left, right []float64
	if order <= len(leftBuf) {
		left, right = leftBuf[:order], rightBuf[:order]
	} else {
		left, right = make([]float64, order), make([]float64, order)
	}

	out[0] = 1
	for j := 1; j < order; j++ {
		left[j] = t - kv[s+1-j]
		right[j] = kv[s+j] - t
		saved := 0.0
		for r := 0; r < j; r++ {
			den := right[r+1] + left[j-r]
			var tmp float64
			if den != 0 {
				tmp = out[r] / den
			}
			out[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		out[j] = saved
	}
}

// evalRow evaluates a curve with the given homogeneous control points at t.
func (kv KnotVector) evalRow(order int, pts []HPoint, t float64) HPoint {
	s := kv.Span(order, len(pts), t)
	var nbuf [8]float64
	var n []float64
	if order <= len(nbuf) {
		n = nbuf[:order]
	} else {
		n = make([]float64, order)
	}
	kv.basisFuncs(s, t, order, n)
	var out HPoint
	for i := range order {
		out = out.add(pts[s-order+1+i].mul(n[i]))
	}
	return out
}

// insertKnot inserts t once, using Boehm's algorithm, and returns the new
// knot vector and control points. t must lie inside the domain.
func (kv KnotVector) insertKnot(order int, pts []HPoint, t float64) (KnotVector, []HPoint) {
	deg := order - 1
	s := kv.Span(order, len(pts), t)
	// Span clamps t at the end of the domain to the last non-empty interval;
	// knot insertion wants the interval with kv[s] <= t < kv[s+1].
	for s+1 < len(kv) && kv[s+1] <= t {
		s++
	}

	out := make([]HPoint, len(pts)+1)
	for i := 0; i <= s-deg; i++ {
		out[i] = pts[i]
	}
	for i := s - deg + 1; i <= s; i++ {
		den := kv[i+deg] - kv[i]
		var a float64
		if den != 0 {
			a = (t - kv[i]) / den
		}
		out[i] = pts[i-1].mul(1 - a).add(pts[i].mul(a))
	}
	for i := s + 1; i < len(out); i++ {
		out[i] = pts[i-1]
	}

	nkv := make(KnotVector, 0, len(kv)+1)
	nkv = append(nkv, kv[:s+1]...)
	nkv = append(nkv, t)
	nkv = append(nkv, kv[s+1:]...)
	return nkv, out
}

// refineTo inserts t until its multiplicity is order and returns the refined
// knot vector, control points and the index of the first copy of t.
func (kv KnotVector) refineTo(order int, pts []HPoint, t float64) (KnotVector, []HPoint, int) {
	for kv.Multiplicity(t) < order {
		kv, pts = kv.insertKnot(order, pts, t)
	}
	first, _ := slices.BinarySearch(kv, t)
	return kv, pts, first
}
