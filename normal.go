package tess

import (
	"github.com/golang/geo/r3"
)

// normalEvaluator computes unit normals of one surface. Constructing it
// differentiates the surface once; it is built at the start of a
// tessellation call and dropped at the end.
type normalEvaluator struct {
	s      *Surface
	du, dv *Surface
}

func newNormalEvaluator(s *Surface) *normalEvaluator {
	return &normalEvaluator{
		s:  s,
		du: s.Derivative(U),
		dv: s.Derivative(V),
	}
}

// tangents returns vectors parallel to the partial derivatives at (u, v).
// For rational surfaces they lack the common positive 1/w² factor of the
// quotient rule, which changes neither their direction nor their cross
// product's direction.
func (ne *normalEvaluator) tangents(u, v float64) (r3.Vector, r3.Vector) {
	pu := ne.du.evalHom(u, v)
	pv := ne.dv.evalHom(u, v)
	if !ne.s.Rational {
		return pu.P, pv.P
	}
	p := ne.s.evalHom(u, v)
	su := pu.P.Mul(p.W).Sub(p.P.Mul(pu.W))
	sv := pv.P.Mul(p.W).Sub(p.P.Mul(pv.W))
	return su, sv
}

// Normal returns the unit normal at (u, v), oriented along Su × Sv. It
// reports false where the normal is undefined because a partial derivative
// vanishes or both are parallel.
func (ne *normalEvaluator) Normal(u, v float64) (r3.Vector, bool) {
	su, sv := ne.tangents(u, v)
	n := su.Cross(sv)
	l := n.Norm()
	const eps = 1e-12
	if l == 0 || l <= eps*su.Norm()*sv.Norm() || !isFinite(n) {
		return r3.Vector{}, false
	}
	return n.Mul(1 / l), true
}
