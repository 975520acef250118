package tess

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
)

// Direction selects one of the two parametric directions of a surface.
type Direction int

const (
	U Direction = iota
	V
)

func (dir Direction) String() string {
	switch dir {
	case U:
		return "U"
	case V:
		return "V"
	default:
		return fmt.Sprintf("Direction(%d)", int(dir))
	}
}

// Other returns the opposite direction.
func (dir Direction) Other() Direction {
	switch dir {
	case U:
		return V
	case V:
		return U
	default:
		panic(InvalidDirectionError{dir})
	}
}

// Domain is the rectangular parameter domain of a surface or of a piece of
// one.
type Domain struct {
	U r1.Interval
	V r1.Interval
}

// NewDomain returns the domain [u0, u1] × [v0, v1].
func NewDomain(u0, u1, v0, v1 float64) Domain {
	return Domain{
		U: r1.Interval{Lo: u0, Hi: u1},
		V: r1.Interval{Lo: v0, Hi: v1},
	}
}

func (d Domain) String() string {
	return fmt.Sprintf("[%g, %g]×[%g, %g]", d.U.Lo, d.U.Hi, d.V.Lo, d.V.Hi)
}

// Interval returns the domain's extent in the given direction.
func (d Domain) Interval(dir Direction) r1.Interval {
	switch dir {
	case U:
		return d.U
	case V:
		return d.V
	default:
		panic(InvalidDirectionError{dir})
	}
}

// Width returns the length of the domain in u.
func (d Domain) Width() float64 {
	return d.U.Length()
}

// Height returns the length of the domain in v.
func (d Domain) Height() float64 {
	return d.V.Length()
}

// Center returns the midpoint of the domain.
func (d Domain) Center() UV {
	return UV{
		U: d.U.Center(),
		V: d.V.Center(),
	}
}

// UnitTransform returns the affine transformation that maps the domain onto
// the unit square [0, 1]².
func (d Domain) UnitTransform() Affine {
	w, h := d.Width(), d.Height()
	if w == 0 || h == 0 {
		return Identity
	}
	return Translate(Param(-d.U.Lo, -d.V.Lo)).ThenScale(1/w, 1/h)
}

// IsInf reports whether the domain is unbounded.
func (d Domain) IsInf() bool {
	return math.IsInf(d.U.Lo, 0) || math.IsInf(d.U.Hi, 0) ||
		math.IsInf(d.V.Lo, 0) || math.IsInf(d.V.Hi, 0)
}
