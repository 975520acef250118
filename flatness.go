package tess

import (
	"math"

	"github.com/golang/geo/r3"
)

// Scorer decides whether a patch is flat enough to be emitted.
//
// Score returns the patch's error minus tolerance: a result ≤ 0 makes the
// patch a leaf, a positive result asks for further subdivision. Results of
// different patches are compared to pick between candidate subdivisions, so
// they must grow with the error.
type Scorer interface {
	Score(p *Patch, tolerance float64) float64
}

// ScorerFunc adapts a function to the [Scorer] interface.
type ScorerFunc func(p *Patch, tolerance float64) float64

func (f ScorerFunc) Score(p *Patch, tolerance float64) float64 { return f(p, tolerance) }

// DefaultScorer measures the control mesh of a patch with three tests and
// uses the worst of them:
//
//  1. boundary linearity: the distance of the interior control points of the
//     four boundary rows and columns from the line through their ends;
//  2. coplanarity: the spread of the signed distances of all control points
//     from the plane through the corner control points, which penalizes
//     saddles more than bulges;
//  3. interior linearity: like 1, but for the interior rows and columns,
//     which catches twist not visible at the boundary.
//
// A patch is a leaf when every test is within tolerance.
var DefaultScorer Scorer = ScorerFunc(defaultScore)

func defaultScore(p *Patch, tolerance float64) float64 {
	s := p.Surface
	mesh := s.controlMesh()
	worst := max(
		boundaryLinearity(mesh, s.ULength, s.VLength),
		coplanarity(mesh, s.ULength, s.VLength),
		interiorLinearity(mesh, s.ULength, s.VLength),
	)
	if math.IsNaN(worst) {
		return math.Inf(1)
	}
	return worst - tolerance
}

func meshRow(mesh []r3.Vector, uLen, j int) []r3.Vector {
	return mesh[j*uLen : (j+1)*uLen]
}

func meshColumn(mesh []r3.Vector, uLen, vLen, i int) []r3.Vector {
	out := make([]r3.Vector, vLen)
	for j := range out {
		out[j] = mesh[i+j*uLen]
	}
	return out
}

func boundaryLinearity(mesh []r3.Vector, uLen, vLen int) float64 {
	return max(
		maxLineDistance(meshRow(mesh, uLen, 0)),
		maxLineDistance(meshRow(mesh, uLen, vLen-1)),
		maxLineDistance(meshColumn(mesh, uLen, vLen, 0)),
		maxLineDistance(meshColumn(mesh, uLen, vLen, uLen-1)),
	)
}

func interiorLinearity(mesh []r3.Vector, uLen, vLen int) float64 {
	var worst float64
	for j := 1; j < vLen-1; j++ {
		worst = max(worst, maxLineDistance(meshRow(mesh, uLen, j)))
	}
	for i := 1; i < uLen-1; i++ {
		worst = max(worst, maxLineDistance(meshColumn(mesh, uLen, vLen, i)))
	}
	return worst
}

// plane is the set of points x with N·x = D, N a unit vector.
type plane struct {
	N r3.Vector
	D float64
}

func (pl plane) signedDistance(p r3.Vector) float64 {
	return pl.N.Dot(p) - pl.D
}

// fitPlane returns the plane through the three of the given points that span
// the largest triangle. It fails if all of them are collinear.
func fitPlane(pts [4]r3.Vector) option[plane] {
	triples := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	var best r3.Vector
	var bestNorm float64
	var origin r3.Vector
	for _, tri := range triples {
		a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Norm(); l > bestNorm {
			best, bestNorm, origin = n, l, a
		}
	}

	var out option[plane]
	if bestNorm == 0 || math.IsNaN(bestNorm) || math.IsInf(bestNorm, 0) {
		return out
	}
	n := best.Mul(1 / bestNorm)
	out.set(plane{N: n, D: n.Dot(origin)})
	return out
}

// meshCorners returns the corner control points in loop order.
func meshCorners(mesh []r3.Vector, uLen, vLen int) [4]r3.Vector {
	return [4]r3.Vector{
		mesh[0],
		mesh[uLen-1],
		mesh[uLen*vLen-1],
		mesh[(vLen-1)*uLen],
	}
}

func coplanarity(mesh []r3.Vector, uLen, vLen int) float64 {
	pl := fitPlane(meshCorners(mesh, uLen, vLen))
	if !pl.isSet {
		// No plane to measure against.
		return 0
	}
	fit := pl.unwrap()
	var hi, lo float64
	for _, p := range mesh {
		d := fit.signedDistance(p)
		if math.IsNaN(d) {
			return d
		}
		hi = max(hi, d)
		lo = min(lo, d)
	}
	return hi - lo
}

type option[T any] struct {
	isSet bool
	value T
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

func (opt *option[T]) unwrap() T {
	if !opt.isSet {
		panic("option isn't set")
	}
	return opt.value
}
