package tess

import (
	"math"
)

// Affine describes an affine transform of parameter space via coefficients.
// It is used to turn surface parameters into texture coordinates.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The idea is that (A * B) * p == A * (B * p).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipV mirrors the v axis. Useful for texture conventions where v grows
// downwards.
var FlipV = Affine{1, 0, 0, -1, 0, 1}

// Scale creates an affine transform representing non-uniform scaling of u and
// v.
func Scale(u, v float64) Affine {
	return Affine{u, 0, 0, v, 0, 0}
}

// Translate creates an affine transform representing translation by o.
func Translate(o UV) Affine {
	return Affine{1, 0, 0, 1, o.U, o.V}
}

func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenScale creates aff followed by a scale of (u, v).
//
// Equivalent to "Scale(u, v) * aff"
func (aff Affine) ThenScale(u, v float64) Affine {
	return Scale(u, v).Mul(aff)
}

// IsInf reports whether any coefficient is infinite.
func (aff Affine) IsInf() bool {
	return math.IsInf(aff.N0, 0) ||
		math.IsInf(aff.N1, 0) ||
		math.IsInf(aff.N2, 0) ||
		math.IsInf(aff.N3, 0) ||
		math.IsInf(aff.N4, 0) ||
		math.IsInf(aff.N5, 0)
}

// IsNaN reports whether any coefficient is NaN.
func (aff Affine) IsNaN() bool {
	return math.IsNaN(aff.N0) ||
		math.IsNaN(aff.N1) ||
		math.IsNaN(aff.N2) ||
		math.IsNaN(aff.N3) ||
		math.IsNaN(aff.N4) ||
		math.IsNaN(aff.N5)
}
