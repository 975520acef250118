package tess

import "fmt"

// UV is a point in a surface's parameter space.
type UV struct {
	U float64
	V float64
}

// Param returns the parameter pair (u, v).
func Param(u, v float64) UV {
	return UV{U: u, V: v}
}

func (p UV) String() string {
	return fmt.Sprintf("(%g, %g)", p.U, p.V)
}

// Add computes p+o.
func (p UV) Add(o UV) UV {
	return UV{
		U: p.U + o.U,
		V: p.V + o.V,
	}
}

// Sub computes p−o.
func (p UV) Sub(o UV) UV {
	return UV{
		U: p.U - o.U,
		V: p.V - o.V,
	}
}

func (p UV) Mul(f float64) UV {
	return UV{
		U: p.U * f,
		V: p.V * f,
	}
}

// Lerp linearly interpolates between two parameter points.
func (p UV) Lerp(o UV, t float64) UV {
	// p + t * (o-p)
	return p.Add(o.Sub(p).Mul(t))
}

// Transform applies an affine transformation to the parameter point.
func (p UV) Transform(aff Affine) UV {
	return UV{
		U: aff.N0*p.U + aff.N2*p.V + aff.N4,
		V: aff.N1*p.U + aff.N3*p.V + aff.N5,
	}
}
