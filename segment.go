package tess

import (
	"math"

	"github.com/golang/geo/r3"
)

// Segment is a line segment in 3D.
type Segment struct {
	P0 r3.Vector
	P1 r3.Vector
}

// Length returns the length of the segment.
func (l Segment) Length() float64 {
	return l.P1.Sub(l.P0).Norm()
}

// LineDistance returns the distance of pt from the infinite line through the
// segment. For a zero-length segment it is the distance to P0.
func (l Segment) LineDistance(pt r3.Vector) float64 {
	d := l.P1.Sub(l.P0)
	d2 := d.Norm2()
	if d2 == 0 {
		return pt.Distance(l.P0)
	}
	return pt.Sub(l.P0).Cross(d).Norm() / math.Sqrt(d2)
}

// maxLineDistance returns the largest distance of pts[1:len(pts)-1] from the
// line through the first and last point.
func maxLineDistance(pts []r3.Vector) float64 {
	if len(pts) < 3 {
		return 0
	}
	l := Segment{pts[0], pts[len(pts)-1]}
	var worst float64
	for _, p := range pts[1 : len(pts)-1] {
		worst = max(worst, l.LineDistance(p))
	}
	return worst
}
