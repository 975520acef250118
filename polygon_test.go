package tess

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"
)

// indexLoop returns grid samples at the given indices, placed in the z = 0
// plane at their index coordinates.
func indexLoop(idx ...[2]int) []*GridSample {
	out := make([]*GridSample, len(idx))
	for i, c := range idx {
		out[i] = &GridSample{
			UIndex:   c[0],
			VIndex:   c[1],
			UV:       Param(float64(c[0])/4, float64(c[1])/4),
			Position: r3.Vector{X: float64(c[0]), Y: float64(c[1])},
		}
	}
	return out
}

func newTestTessellator(t *testing.T, s *Surface, opts Options) *tessellator {
	t.Helper()
	ts, err := newTessellator(s, 0.1, opts)
	require.NoError(t, err)
	return ts
}

func triangleArea(p Polygon) float64 {
	v := p.Verts()
	return v[1].Position.Sub(v[0].Position).Cross(v[2].Position.Sub(v[0].Position)).Norm() / 2
}

// The ear choice is a quality heuristic, not a correctness guarantee; these
// cases pin down its current behaviour.
func TestEarIndex(t *testing.T) {
	// A T-vertex on the top edge: the corner after the collinear run is cut
	// first.
	loop := indexLoop([2]int{0, 0}, [2]int{4, 0}, [2]int{4, 2}, [2]int{2, 2}, [2]int{0, 2})
	diff(t, 4, earIndex(loop))

	loop = indexLoop([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{4, 0}, [2]int{4, 4}, [2]int{0, 4})
	diff(t, 3, earIndex(loop))

	// Without collinear runs, the first corner is used.
	loop = indexLoop([2]int{0, 0}, [2]int{4, 0}, [2]int{4, 4}, [2]int{0, 4})
	diff(t, 0, earIndex(loop))
}

func TestClipEars(t *testing.T) {
	ts := newTestTessellator(t, flatBilinear(t), Options{})
	loop := indexLoop(
		[2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{4, 0},
		[2]int{4, 4}, [2]int{2, 4}, [2]int{0, 4}, [2]int{0, 2},
	)
	ts.loopPolygons(loop, Param(0.5, 0.5))

	require.Len(t, ts.polys, len(loop)-2)
	var area float64
	for _, p := range ts.polys {
		require.Equal(t, 3, p.N)
		n := p.FaceNormal()
		require.Greater(t, n.Z, 0.0, "triangle %v is clockwise", p)
		area += triangleArea(p)
	}
	require.InDelta(t, 16, area, 1e-12)
	require.Zero(t, ts.stats.rejected)
}

func TestQuadDiagonal(t *testing.T) {
	loop := indexLoop([2]int{0, 0}, [2]int{4, 0}, [2]int{4, 4}, [2]int{0, 4})
	loop[2].Position.Z = 4

	ts := newTestTessellator(t, flatBilinear(t), Options{Quads: true})
	ts.loopPolygons(loop, Param(0.5, 0.5))
	require.Len(t, ts.polys, 2, "non-planar quads are split")

	// The diagonal from 1 to 3 is the shorter one.
	want := [][]r3.Vector{
		{loop[0].Position, loop[1].Position, loop[3].Position},
		{loop[1].Position, loop[2].Position, loop[3].Position},
	}
	var got [][]r3.Vector
	for _, p := range ts.polys {
		var pos []r3.Vector
		for _, v := range p.Verts() {
			pos = append(pos, v.Position)
		}
		got = append(got, pos)
	}
	diff(t, want, got)

	loop[2].Position.Z = 0
	ts = newTestTessellator(t, flatBilinear(t), Options{Quads: true})
	ts.loopPolygons(loop, Param(0.5, 0.5))
	require.Len(t, ts.polys, 1)
	require.Equal(t, 4, ts.polys[0].N)

	ts = newTestTessellator(t, flatBilinear(t), Options{})
	ts.loopPolygons(loop, Param(0.5, 0.5))
	require.Len(t, ts.polys, 2, "quads are only emitted on request")
}

func TestVertexNormalFallback(t *testing.T) {
	ts := newTestTessellator(t, unitSphere(t), Options{Normals: true})
	face := r3.Vector{X: 1}

	// At the pole the normal is evaluated again towards the centre.
	v := ts.vertex(r3.Vector{Z: -1}, Param(0.3, 0), r3.Vector{}, false, Param(0.35, 0.1), face)
	require.Less(t, v.Normal.Z, -0.99)
	require.InDelta(t, 1, v.Normal.Norm(), 1e-12)

	// Without room to move, the face normal is used.
	v = ts.vertex(r3.Vector{Z: -1}, Param(0.3, 0), r3.Vector{}, false, Param(0.3, 0), face)
	diff(t, face, v.Normal)

	// Valid normals are kept.
	n := r3.Vector{Y: 1}
	v = ts.vertex(r3.Vector{Y: 1}, Param(0.25, 0.5), n, true, Param(0.3, 0.4), face)
	diff(t, n, v.Normal)
}

func TestVertexUV(t *testing.T) {
	s := mustSurface(t)(NewSurface(2, 2, KnotVector{2, 2, 4, 4}, KnotVector{0, 0, 8, 8}, [][]HPoint{
		{Pt(0, 0, 0), Pt(1, 0, 0)},
		{Pt(0, 1, 0), Pt(1, 1, 0)},
	}))
	ts := newTestTessellator(t, s, Options{UVs: true})
	v := ts.vertex(r3.Vector{}, Param(3, 2), r3.Vector{}, false, Param(3, 4), r3.Vector{})
	diff(t, Param(0.5, 0.25), v.UV)

	aff := FlipV
	ts = newTestTessellator(t, s, Options{UVs: true, UVTransform: &aff})
	v = ts.vertex(r3.Vector{}, Param(0.5, 0.25), r3.Vector{}, false, Param(3, 4), r3.Vector{})
	diff(t, Param(0.5, 0.75), v.UV)
}

func TestDefaultMakers(t *testing.T) {
	vx := func(x, y, z float64) Vertex { return Vertex{Position: r3.Vector{X: x, Y: y, Z: z}} }
	attrs := Attributes{UVs: true}

	p, ok := DefaultTriangleMaker.MakeTriangle([3]Vertex{vx(0, 0, 0), vx(1, 0, 0), vx(0, 1, 0)}, attrs)
	require.True(t, ok)
	require.Equal(t, 3, p.N)
	require.True(t, p.HasUVs)
	require.False(t, p.HasNormals)
	diff(t, r3.Vector{Z: 1}, p.FaceNormal())

	_, ok = DefaultTriangleMaker.MakeTriangle([3]Vertex{vx(0, 0, 0), vx(1, 0, 0), vx(2, 0, 0)}, attrs)
	require.False(t, ok, "collinear triangle")
	_, ok = DefaultTriangleMaker.MakeTriangle([3]Vertex{vx(0, 0, 0), vx(0, 0, 0), vx(2, 1, 0)}, attrs)
	require.False(t, ok, "coincident vertices")
	_, ok = DefaultTriangleMaker.MakeTriangle([3]Vertex{vx(0, 0, 0), vx(math.Inf(1), 0, 0), vx(0, 1, 0)}, attrs)
	require.False(t, ok, "infinite vertex")

	p, ok = DefaultQuadMaker.MakeQuad([4]Vertex{vx(0, 0, 0), vx(1, 0, 0), vx(1, 1, 0), vx(0, 1, 0)}, attrs)
	require.True(t, ok)
	require.Equal(t, 4, p.N)
	_, ok = DefaultQuadMaker.MakeQuad([4]Vertex{vx(0, 0, 0), vx(1, 0, 0), vx(2, 0, 0), vx(0, 1, 0)}, attrs)
	require.False(t, ok, "quad with a straight corner")
	_, ok = DefaultQuadMaker.MakeQuad([4]Vertex{vx(0, 0, 0), vx(1, 0, 0), vx(1, math.NaN(), 0), vx(0, 1, 0)}, attrs)
	require.False(t, ok, "NaN vertex")
}
