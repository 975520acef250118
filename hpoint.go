package tess

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// HPoint is a control point in homogeneous coordinates. P holds the weighted
// coordinates (w·x, w·y, w·z), W the weight. Non-rational control points have
// a weight of 1.
type HPoint struct {
	P r3.Vector
	W float64
}

// Pt returns the non-rational control point (x, y, z).
func Pt(x, y, z float64) HPoint {
	return HPoint{P: r3.Vector{X: x, Y: y, Z: z}, W: 1}
}

// Weighted returns the rational control point p with weight w.
func Weighted(p r3.Vector, w float64) HPoint {
	return HPoint{P: p.Mul(w), W: w}
}

func (h HPoint) String() string {
	return fmt.Sprintf("(%g, %g, %g; %g)", h.P.X, h.P.Y, h.P.Z, h.W)
}

// Project returns the Euclidean point represented by h.
func (h HPoint) Project() r3.Vector {
	if h.W == 1 {
		return h.P
	}
	return r3.Vector{X: h.P.X / h.W, Y: h.P.Y / h.W, Z: h.P.Z / h.W}
}

func (h HPoint) add(o HPoint) HPoint {
	return HPoint{P: h.P.Add(o.P), W: h.W + o.W}
}

func (h HPoint) sub(o HPoint) HPoint {
	return HPoint{P: h.P.Sub(o.P), W: h.W - o.W}
}

func (h HPoint) mul(f float64) HPoint {
	return HPoint{P: h.P.Mul(f), W: h.W * f}
}

func (h HPoint) IsInf() bool {
	return math.IsInf(h.P.X, 0) || math.IsInf(h.P.Y, 0) || math.IsInf(h.P.Z, 0) || math.IsInf(h.W, 0)
}

func (h HPoint) IsNaN() bool {
	return math.IsNaN(h.P.X) || math.IsNaN(h.P.Y) || math.IsNaN(h.P.Z) || math.IsNaN(h.W)
}

func isFinite(v r3.Vector) bool {
	return !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0) &&
		!math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z)
}
