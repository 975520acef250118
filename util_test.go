package tess

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNearVec(t *testing.T, got, want r3.Vector, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); !(d <= epsilon) {
		t.Errorf("got %v, expected %v", got, want)
	}
}

// mustSurface returns a function that fails the test if a surface
// constructor returned an error, for use as mustSurface(t)(NewSurface(...)).
func mustSurface(t *testing.T) func(*Surface, error) *Surface {
	t.Helper()
	return func(s *Surface, err error) *Surface {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
}

// flatBilinear is the unit square in the z = 0 plane.
func flatBilinear(t *testing.T) *Surface {
	return mustSurface(t)(NewBezierSurface([][]HPoint{
		{Pt(0, 0, 0), Pt(1, 0, 0)},
		{Pt(0, 1, 0), Pt(1, 1, 0)},
	}))
}

// bumpyPoints is the control mesh of a bicubic height field over [0, 3]².
func bumpyPoints() [][]HPoint {
	heights := [4][4]float64{
		{0, 1, 0, 0.5},
		{0.5, -1, 2, 0},
		{0, 2, -1, 1},
		{1, 0, 0.5, 0},
	}
	pts := make([][]HPoint, 4)
	for j := range pts {
		pts[j] = make([]HPoint, 4)
		for i := range pts[j] {
			pts[j][i] = Pt(float64(i), float64(j), heights[j][i])
		}
	}
	return pts
}

// bumpyBicubic is the Bézier surface with control mesh bumpyPoints.
func bumpyBicubic(t *testing.T) *Surface {
	return mustSurface(t)(NewBezierSurface(bumpyPoints()))
}

// unitSphere is the exact rational unit sphere: a full circle of order 3 in
// u around the z axis and a half circle from the south to the north pole in
// v.
func unitSphere(t *testing.T) *Surface {
	s2 := math.Sqrt2 / 2
	circle := [9]struct{ x, y, w float64 }{
		{1, 0, 1}, {1, 1, s2}, {0, 1, 1}, {-1, 1, s2}, {-1, 0, 1},
		{-1, -1, s2}, {0, -1, 1}, {1, -1, s2}, {1, 0, 1},
	}
	meridian := [5]struct{ r, z, w float64 }{
		{0, -1, 1}, {1, -1, s2}, {1, 0, 1}, {1, 1, s2}, {0, 1, 1},
	}
	pts := make([][]HPoint, len(meridian))
	for j, m := range meridian {
		pts[j] = make([]HPoint, len(circle))
		for i, c := range circle {
			p := r3.Vector{X: c.x * m.r, Y: c.y * m.r, Z: m.z}
			pts[j][i] = Weighted(p, c.w*m.w)
		}
	}
	uKnots := KnotVector{0, 0, 0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1, 1, 1}
	vKnots := KnotVector{0, 0, 0, 0.5, 0.5, 1, 1, 1}
	return mustSurface(t)(NewSurface(3, 3, uKnots, vKnots, pts))
}

// poleSphere is the unit sphere with a different meridian: a single
// quadratic arc whose middle control point lies at infinity in the x
// direction. The equator row of its control mesh has zero weights.
func poleSphere(t *testing.T) *Surface {
	s2 := math.Sqrt2 / 2
	circle := [9]struct{ x, y, w float64 }{
		{1, 0, 1}, {1, 1, s2}, {0, 1, 1}, {-1, 1, s2}, {-1, 0, 1},
		{-1, -1, s2}, {0, -1, 1}, {1, -1, s2}, {1, 0, 1},
	}
	pts := make([][]HPoint, 3)
	for _, c := range circle {
		pts[0] = append(pts[0], Weighted(r3.Vector{Z: -1}, c.w))
		pts[1] = append(pts[1], HPoint{P: r3.Vector{X: c.x * c.w, Y: c.y * c.w}, W: 0})
		pts[2] = append(pts[2], Weighted(r3.Vector{Z: 1}, c.w))
	}
	uKnots := KnotVector{0, 0, 0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1, 1, 1}
	return mustSurface(t)(NewSurface(3, 3, uKnots, ClampedKnots(3, 3), pts))
}

// tent is a cubic B-spline strip with a crease along u = 0.5: both halves
// are planar, rising and falling along x.
func tent(t *testing.T) *Surface {
	zs := []float64{0, 1, 2, 3, 2, 1, 0}
	pts := make([][]HPoint, 2)
	for j := range pts {
		for i, z := range zs {
			pts[j] = append(pts[j], Pt(float64(i), float64(j), z))
		}
	}
	uKnots := KnotVector{0, 0, 0, 0, 0.5, 0.5, 0.5, 1, 1, 1, 1}
	return mustSurface(t)(NewSurface(4, 2, uKnots, ClampedKnots(2, 2), pts))
}
