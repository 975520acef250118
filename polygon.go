package tess

import (
	"slices"

	"github.com/golang/geo/r3"
)

// normalOffset is how far, as a fraction of the way to the polygon's
// parametric centre, a vertex without a normal is moved to retry the
// evaluation.
const normalOffset = 1.0 / 1024

// leafPolygons converts the boundary loop of a leaf into polygons.
func (ts *tessellator) leafPolygons(lf leaf) {
	r := lf.rect
	loop := ts.grid.fetchBoundaryLoop(r.u0, r.v0, r.u1, r.v1)
	if loop == nil {
		Logger().Warn("skipping leaf with inconsistent boundary",
			"u0", r.u0, "v0", r.v0, "u1", r.u1, "v1", r.v1, "domain", lf.domain.String())
		ts.stats.skipped++
		return
	}
	ts.loopPolygons(loop, lf.domain.Center())
}

// loopPolygons emits polygons covering a counter-clockwise loop of grid
// samples around the parametric centre of its leaf.
func (ts *tessellator) loopPolygons(loop []*GridSample, center UV) {
	switch len(loop) {
	case 0, 1, 2:
		return
	case 3:
		ts.triangle(loop[0], loop[1], loop[2], center)
	case 4:
		ts.quad([4]*GridSample(loop), center)
	default:
		ts.clipEars(loop, center)
	}
}

// quad emits a four-sided loop as a single quad if allowed and planar within
// tolerance, and as triangles otherwise.
func (ts *tessellator) quad(q [4]*GridSample, center UV) {
	if ts.opts.Quads && ts.planar(q) {
		var face r3.Vector
		if ts.attrs.Normals {
			face = quadNormal(q[0].Position, q[1].Position, q[2].Position, q[3].Position)
		}
		var vs [4]Vertex
		for i, s := range q {
			vs[i] = ts.vertex(s.Position, s.UV, s.Normal, s.HasNormal, center, face)
		}
		if poly, ok := ts.quadMaker.MakeQuad(vs, ts.attrs); ok {
			ts.emit(poly)
			return
		}
	}

	if ts.opts.FourTrianglesPerQuad {
		c := ts.centerSample(center)
		ts.triangle(q[0], q[1], c, center)
		ts.triangle(q[1], q[2], c, center)
		ts.triangle(q[2], q[3], c, center)
		ts.triangle(q[3], q[0], c, center)
		return
	}

	// Cut along the shorter diagonal.
	d02 := Segment{q[0].Position, q[2].Position}
	d13 := Segment{q[1].Position, q[3].Position}
	if d02.Length() <= d13.Length() {
		ts.triangle(q[0], q[1], q[2], center)
		ts.triangle(q[0], q[2], q[3], center)
	} else {
		ts.triangle(q[0], q[1], q[3], center)
		ts.triangle(q[1], q[2], q[3], center)
	}
}

func (ts *tessellator) planar(q [4]*GridSample) bool {
	pl := fitPlane([4]r3.Vector{q[0].Position, q[1].Position, q[2].Position, q[3].Position})
	if !pl.isSet {
		return false
	}
	fit := pl.unwrap()
	for _, s := range q {
		d := fit.signedDistance(s.Position)
		if !(d <= ts.tolerance && d >= -ts.tolerance) {
			return false
		}
	}
	return true
}

// centerSample evaluates the surface at the centre of a leaf. The sample
// belongs to a single leaf and isn't stored in the grid.
func (ts *tessellator) centerSample(uv UV) *GridSample {
	s := &GridSample{UV: uv, Position: ts.surface.Eval(uv.U, uv.V)}
	if ts.normals != nil && !ts.onDiscontinuity(uv) {
		s.Normal, s.HasNormal = ts.normals.Normal(uv.U, uv.V)
	}
	return s
}

func (ts *tessellator) onDiscontinuity(uv UV) bool {
	return ts.surface.IsC1Discontinuity(uv.U, U) || ts.surface.IsC1Discontinuity(uv.V, V)
}

// clipEars triangulates a convex loop with more than four samples. Corners
// are located with exact integer arithmetic on grid indices. Cutting the
// vertex that ends a run of collinear samples first keeps the triangles
// along long, subdivided edges from becoming slivers.
func (ts *tessellator) clipEars(loop []*GridSample, center UV) {
	pts := slices.Clone(loop)
	for len(pts) > 3 {
		i := earIndex(pts)
		n := len(pts)
		ts.triangle(pts[(i+n-1)%n], pts[i], pts[(i+1)%n], center)
		pts = slices.Delete(pts, i, i+1)
	}
	ts.triangle(pts[0], pts[1], pts[2], center)
}

// turn returns twice the signed area of the triangle abc in grid index
// space. It is positive for a counter-clockwise turn.
func turn(a, b, c *GridSample) int64 {
	abu, abv := int64(b.UIndex-a.UIndex), int64(b.VIndex-a.VIndex)
	acu, acv := int64(c.UIndex-a.UIndex), int64(c.VIndex-a.VIndex)
	return abu*acv - abv*acu
}

// earIndex picks the next vertex to cut off a convex loop: the first corner
// preceded by at least two collinear edges, or failing that the first corner.
func earIndex(pts []*GridSample) int {
	n := len(pts)
	at := func(i int) *GridSample { return pts[(i+n)%n] }
	first := -1
	for i := range n {
		if turn(at(i-1), at(i), at(i+1)) == 0 {
			continue
		}
		if turn(at(i-2), at(i-1), at(i)) == 0 {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		// All collinear; anything goes.
		return 0
	}
	return first
}

// triangle emits the triangle abc.
func (ts *tessellator) triangle(a, b, c *GridSample, center UV) {
	var face r3.Vector
	if ts.attrs.Normals {
		face = triangleNormal(a.Position, b.Position, c.Position)
	}
	var vs [3]Vertex
	for i, s := range [3]*GridSample{a, b, c} {
		vs[i] = ts.vertex(s.Position, s.UV, s.Normal, s.HasNormal, center, face)
	}
	if poly, ok := ts.triMaker.MakeTriangle(vs, ts.attrs); ok {
		ts.emit(poly)
	} else {
		ts.stats.rejected++
	}
}

// vertex builds a polygon vertex from a sample. A missing normal is
// evaluated again slightly towards the polygon's centre, and replaced by the
// polygon's face normal if that fails too.
func (ts *tessellator) vertex(pos r3.Vector, uv UV, n r3.Vector, hasNormal bool, center UV, face r3.Vector) Vertex {
	v := Vertex{Position: pos}
	if ts.attrs.UVs {
		v.UV = uv.Transform(ts.uvTransform)
	}
	if !ts.attrs.Normals {
		return v
	}
	if !hasNormal {
		off := uv.Lerp(center, normalOffset)
		if !ts.onDiscontinuity(off) {
			n, hasNormal = ts.normals.Normal(off.U, off.V)
		}
	}
	if !hasNormal {
		ts.stats.faceNormals++
		n = face
	}
	v.Normal = n
	return v
}

func (ts *tessellator) emit(p Polygon) {
	if ts.opts.Sink != nil {
		ts.opts.Sink.Emit(p)
	} else {
		ts.polys = append(ts.polys, p)
	}
	ts.stats.polygons++
}
