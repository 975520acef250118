package tess

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func rootPatch(s *Surface) *Patch {
	return &Patch{UIndexSize: 1 << DefaultMaxDepth, VIndexSize: 1 << DefaultMaxDepth, Surface: s}
}

func TestDefaultScoreFlat(t *testing.T) {
	if got := DefaultScorer.Score(rootPatch(flatBilinear(t)), 0.1); got != -0.1 {
		t.Errorf("got score %v for a flat patch, want -0.1", got)
	}
}

func TestDefaultScoreSaddle(t *testing.T) {
	s := mustSurface(t)(NewBezierSurface([][]HPoint{
		{Pt(0, 0, 0), Pt(1, 0, 0)},
		{Pt(0, 1, 0), Pt(1, 1, 1)},
	}))
	// The boundary is straight, so only the corners' coplanarity counts:
	// the plane through the other three corners misses the first by 1/√3.
	want := 1/math.Sqrt(3) - 0.1
	if got := DefaultScorer.Score(rootPatch(s), 0.1); math.Abs(got-want) > 1e-12 {
		t.Errorf("got score %v, want %v", got, want)
	}
}

func TestDefaultScoreShrinks(t *testing.T) {
	s := bumpyBicubic(t)
	prev := DefaultScorer.Score(rootPatch(s), 0)
	for range 6 {
		dom := s.Domain()
		s, _ = s.Subdivide(dom.U.Center(), U)
		s, _ = s.Subdivide(s.Domain().V.Center(), V)
		got := DefaultScorer.Score(rootPatch(s), 0)
		if !(got < prev) {
			t.Fatalf("error didn't shrink under subdivision: %v after %v", got, prev)
		}
		prev = got
	}
	if prev > 1e-2 {
		t.Errorf("error %v after six subdivisions", prev)
	}
}

func TestBoundaryLinearity(t *testing.T) {
	// 3×2 mesh whose bottom row bends up by 1 in the middle.
	mesh := []r3.Vector{
		{X: 0}, {X: 1, Z: 1}, {X: 2},
		{Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
	}
	diff(t, 1.0, boundaryLinearity(mesh, 3, 2))
	diff(t, 0.0, interiorLinearity(mesh, 3, 2))
}

func TestInteriorLinearity(t *testing.T) {
	// 3×3 mesh with straight boundaries and a raised centre.
	mesh := make([]r3.Vector, 9)
	for j := range 3 {
		for i := range 3 {
			mesh[i+3*j] = r3.Vector{X: float64(i), Y: float64(j)}
		}
	}
	mesh[4].Z = 2
	diff(t, 0.0, boundaryLinearity(mesh, 3, 3))
	diff(t, 2.0, interiorLinearity(mesh, 3, 3))
	diff(t, 2.0, coplanarity(mesh, 3, 3))
}

func TestFitPlaneDegenerate(t *testing.T) {
	line := [4]r3.Vector{{}, {X: 1}, {X: 2}, {X: 3}}
	if fitPlane(line).isSet {
		t.Error("collinear points shouldn't define a plane")
	}

	square := fitPlane([4]r3.Vector{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}})
	pl := square.unwrap()
	diff(t, 0.0, pl.signedDistance(r3.Vector{X: 5, Y: -3}))
	diff(t, 1.0, math.Abs(pl.signedDistance(r3.Vector{Z: 1})))
}

func TestScorerNaN(t *testing.T) {
	s := mustSurface(t)(NewBezierSurface([][]HPoint{
		{Pt(0, 0, 0), Pt(1, 0, 0)},
		{Pt(0, 1, 0), Weighted(r3.Vector{X: 1, Y: 1}, 0)},
	}))
	if got := DefaultScorer.Score(rootPatch(s), 0.1); !math.IsInf(got, 1) {
		t.Errorf("got %v for a mesh with a point at infinity, want +Inf", got)
	}
}
