package tess

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Surface is a tensor-product B-spline surface, optionally rational.
//
// Control points are stored row by row: the point with index i in u and j in
// v is Points[i+j*ULength]. A Surface is treated as immutable by all
// functions in this package; subdivision returns new surfaces.
type Surface struct {
	UOrder, VOrder   int
	ULength, VLength int
	UKnots, VKnots   KnotVector
	Points           []HPoint
	// Rational is set when at least one weight differs from 1.
	Rational bool
}

// NewSurface returns a surface of the given orders and knot vectors.
// points[j][i] is the control point with index i in u and j in v, so each
// row runs along u.
//
// The returned error wraps [ErrInvalidSurface] if the orders, knot vectors and
// control mesh don't agree.
func NewSurface(uOrder, vOrder int, uKnots, vKnots KnotVector, points [][]HPoint) (*Surface, error) {
	vLength := len(points)
	if vLength == 0 {
		return nil, errors.Wrap(ErrInvalidSurface, "empty control mesh")
	}
	uLength := len(points[0])
	for j, row := range points {
		if len(row) != uLength {
			return nil, errors.Wrapf(ErrInvalidSurface, "row %d has %d control points, want %d", j, len(row), uLength)
		}
	}
	if !uKnots.Valid(uOrder, uLength) {
		return nil, errors.Wrapf(ErrInvalidSurface, "bad u knot vector for order %d and length %d", uOrder, uLength)
	}
	if !vKnots.Valid(vOrder, vLength) {
		return nil, errors.Wrapf(ErrInvalidSurface, "bad v knot vector for order %d and length %d", vOrder, vLength)
	}

	s := &Surface{
		UOrder:  uOrder,
		VOrder:  vOrder,
		ULength: uLength,
		VLength: vLength,
		UKnots:  append(KnotVector(nil), uKnots...),
		VKnots:  append(KnotVector(nil), vKnots...),
		Points:  make([]HPoint, 0, uLength*vLength),
	}
	for j, row := range points {
		for i, p := range row {
			if p.IsNaN() || p.IsInf() {
				return nil, errors.Wrapf(ErrInvalidSurface, "control point (%d, %d) is not finite", i, j)
			}
			if p.W != 1 {
				s.Rational = true
			}
			s.Points = append(s.Points, p)
		}
	}
	if dom := s.Domain(); dom.IsInf() {
		return nil, errors.Wrapf(ErrInvalidSurface, "domain %v is unbounded", dom)
	}
	return s, nil
}

// NewBezierSurface returns the Bézier surface with the given control mesh,
// whose orders equal the number of control points in each direction.
func NewBezierSurface(points [][]HPoint) (*Surface, error) {
	if len(points) == 0 || len(points[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidSurface, "empty control mesh")
	}
	uLength, vLength := len(points[0]), len(points)
	return NewSurface(uLength, vLength, ClampedKnots(uLength, uLength), ClampedKnots(vLength, vLength), points)
}

// At returns the control point with index i in u and j in v.
func (s *Surface) At(i, j int) HPoint {
	return s.Points[i+j*s.ULength]
}

// Order returns the order (degree + 1) in the given direction.
func (s *Surface) Order(dir Direction) int {
	switch dir {
	case U:
		return s.UOrder
	case V:
		return s.VOrder
	default:
		panic(InvalidDirectionError{dir})
	}
}

// Length returns the number of control points in the given direction.
func (s *Surface) Length(dir Direction) int {
	switch dir {
	case U:
		return s.ULength
	case V:
		return s.VLength
	default:
		panic(InvalidDirectionError{dir})
	}
}

// Knots returns the knot vector of the given direction.
func (s *Surface) Knots(dir Direction) KnotVector {
	switch dir {
	case U:
		return s.UKnots
	case V:
		return s.VKnots
	default:
		panic(InvalidDirectionError{dir})
	}
}

// Domain returns the surface's parameter domain.
func (s *Surface) Domain() Domain {
	return Domain{
		U: s.UKnots.Domain(s.UOrder, s.ULength),
		V: s.VKnots.Domain(s.VOrder, s.VLength),
	}
}

// Eval evaluates the surface at (u, v).
func (s *Surface) Eval(u, v float64) r3.Vector {
	h := s.evalHom(u, v)
	if !s.Rational {
		// The basis functions sum to one; don't divide by a weight that
		// merely approximates it.
		return h.P
	}
	return h.Project()
}

func (s *Surface) evalHom(u, v float64) HPoint {
	var ubuf, vbuf [8]float64
	nu, nv := ubuf[:], vbuf[:]
	if s.UOrder > len(ubuf) {
		nu = make([]float64, s.UOrder)
	}
	if s.VOrder > len(vbuf) {
		nv = make([]float64, s.VOrder)
	}
	nu, nv = nu[:s.UOrder], nv[:s.VOrder]

	su := s.UKnots.Span(s.UOrder, s.ULength, u)
	sv := s.VKnots.Span(s.VOrder, s.VLength, v)
	s.UKnots.basisFuncs(su, u, s.UOrder, nu)
	s.VKnots.basisFuncs(sv, v, s.VOrder, nv)

	var out HPoint
	for b := range s.VOrder {
		j := sv - s.VOrder + 1 + b
		var row HPoint
		for a := range s.UOrder {
			i := su - s.UOrder + 1 + a
			row = row.add(s.Points[i+j*s.ULength].mul(nu[a]))
		}
		out = out.add(row.mul(nv[b]))
	}
	return out
}

// Derivative returns the partial derivative surface in the given direction.
//
// For non-rational surfaces, evaluating the result yields the partial
// derivative vector. For rational surfaces the result is the derivative of
// the homogeneous surface, from which the Euclidean derivative follows by the
// quotient rule.
func (s *Surface) Derivative(dir Direction) *Surface {
	order, kv := s.Order(dir), s.Knots(dir)
	if order == 1 {
		// Piecewise constant: the derivative vanishes.
		d := *s
		d.Points = make([]HPoint, len(s.Points))
		return &d
	}

	d := &Surface{
		UOrder:   s.UOrder,
		VOrder:   s.VOrder,
		ULength:  s.ULength,
		VLength:  s.VLength,
		UKnots:   s.UKnots,
		VKnots:   s.VKnots,
		Rational: s.Rational,
	}
	dkv := append(KnotVector(nil), kv[1:len(kv)-1]...)
	switch dir {
	case U:
		d.UOrder--
		d.ULength--
		d.UKnots = dkv
	case V:
		d.VOrder--
		d.VLength--
		d.VKnots = dkv
	}

	d.Points = make([]HPoint, d.ULength*d.VLength)
	deg := float64(order - 1)
	for j := range d.VLength {
		for i := range d.ULength {
			var p0, p1 HPoint
			var k int
			switch dir {
			case U:
				p0, p1, k = s.At(i, j), s.At(i+1, j), i
			case V:
				p0, p1, k = s.At(i, j), s.At(i, j+1), j
			}
			den := kv[k+order] - kv[k+1]
			if den == 0 {
				continue
			}
			d.Points[i+j*d.ULength] = p1.sub(p0).mul(deg / den)
		}
	}
	return d
}

// Subdivide splits the surface at parameter t in the given direction, which
// must lie strictly inside the domain in that direction. It returns the
// pieces below and above t.
func (s *Surface) Subdivide(t float64, dir Direction) (*Surface, *Surface) {
	if !s.Domain().Interval(dir).InteriorContains(t) {
		panic("tess: subdivision parameter outside of domain")
	}

	order, kv := s.Order(dir), s.Knots(dir)
	rows := s.Length(dir.Other())
	lines := make([][]HPoint, rows)
	for r := range rows {
		lines[r] = s.line(dir, r)
	}

	var lkv, rkv KnotVector
	left := make([][]HPoint, rows)
	right := make([][]HPoint, rows)
	for r, line := range lines {
		nkv, pts, first := kv.refineTo(order, line, t)
		if !s.Rational {
			for i := range pts {
				pts[i].W = 1
			}
		}
		left[r] = pts[:first]
		right[r] = pts[first:]
		lkv, rkv = nkv[:first+order], nkv[first:]
	}

	return s.rebuild(dir, lkv, left), s.rebuild(dir, rkv, right)
}

// line returns the control points of row or column r running in direction
// dir.
func (s *Surface) line(dir Direction, r int) []HPoint {
	switch dir {
	case U:
		return append([]HPoint(nil), s.Points[r*s.ULength:(r+1)*s.ULength]...)
	case V:
		out := make([]HPoint, s.VLength)
		for j := range out {
			out[j] = s.At(r, j)
		}
		return out
	default:
		panic(InvalidDirectionError{dir})
	}
}

// rebuild assembles a surface from lines running in direction dir, sharing
// the other direction's order and knots with s.
func (s *Surface) rebuild(dir Direction, kv KnotVector, lines [][]HPoint) *Surface {
	n := len(lines[0])
	out := &Surface{
		UOrder:   s.UOrder,
		VOrder:   s.VOrder,
		ULength:  s.ULength,
		VLength:  s.VLength,
		UKnots:   s.UKnots,
		VKnots:   s.VKnots,
		Rational: s.Rational,
		Points:   make([]HPoint, n*len(lines)),
	}
	switch dir {
	case U:
		out.ULength = n
		out.UKnots = append(KnotVector(nil), kv...)
		for j, line := range lines {
			copy(out.Points[j*n:], line)
		}
	case V:
		out.VLength = n
		out.VKnots = append(KnotVector(nil), kv...)
		for i, line := range lines {
			for j, p := range line {
				out.Points[i+j*out.ULength] = p
			}
		}
	default:
		panic(InvalidDirectionError{dir})
	}
	return out
}

// HasPoles reports whether the weights of the control mesh don't share one
// strict sign, meaning part of the surface lies at or near infinity.
func (s *Surface) HasPoles() bool {
	if !s.Rational {
		return false
	}
	var pos, neg bool
	for _, p := range s.Points {
		switch {
		case p.W > 0:
			pos = true
		case p.W < 0:
			neg = true
		default:
			return true
		}
		if pos && neg {
			return true
		}
	}
	return false
}

// IsC1Discontinuity reports whether t is an interior knot in direction dir
// whose multiplicity makes the tangent plane ill defined there.
func (s *Surface) IsC1Discontinuity(t float64, dir Direction) bool {
	order, length, kv := s.Order(dir), s.Length(dir), s.Knots(dir)
	if !kv.Domain(order, length).InteriorContains(t) {
		return false
	}
	return kv.Multiplicity(t) >= max(order-1, 1)
}

// Closed reports whether the first and last control lines in direction dir
// coincide exactly, so that the surface wraps around in that direction.
func (s *Surface) Closed(dir Direction) bool {
	n, rows := s.Length(dir), s.Length(dir.Other())
	if n < 2 {
		return false
	}
	for r := range rows {
		var first, last HPoint
		switch dir {
		case U:
			first, last = s.At(0, r), s.At(n-1, r)
		case V:
			first, last = s.At(r, 0), s.At(r, n-1)
		}
		if first != last {
			return false
		}
	}
	return true
}

// controlMesh returns the Euclidean control points, row by row.
func (s *Surface) controlMesh() []r3.Vector {
	out := make([]r3.Vector, len(s.Points))
	for i, p := range s.Points {
		if s.Rational {
			out[i] = p.Project()
		} else {
			out[i] = p.P
		}
	}
	return out
}
