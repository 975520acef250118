package tess

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
)

// Vertex is a polygon corner. Normal and UV are only meaningful if the
// polygon's HasNormals and HasUVs are set.
type Vertex struct {
	Position r3.Vector
	Normal   r3.Vector
	UV       UV
}

// Polygon is a triangle or quad. Vertices[:N] are its corners,
// counter-clockwise in parameter space, so that the face normal agrees with
// the surface normal Su × Sv.
type Polygon struct {
	Vertices   [4]Vertex
	N          int
	HasNormals bool
	HasUVs     bool
}

// Verts returns the polygon's vertices.
func (p *Polygon) Verts() []Vertex {
	return p.Vertices[:p.N]
}

// FaceNormal returns the unit normal of the polygon's plane. For quads it uses
// the cross product of the diagonals.
func (p *Polygon) FaceNormal() r3.Vector {
	v := p.Vertices
	switch p.N {
	case 3:
		return triangleNormal(v[0].Position, v[1].Position, v[2].Position)
	case 4:
		return quadNormal(v[0].Position, v[1].Position, v[2].Position, v[3].Position)
	default:
		panic(fmt.Sprintf("polygon with %d vertices", p.N))
	}
}

func triangleNormal(a, b, c r3.Vector) r3.Vector {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

func quadNormal(a, b, c, d r3.Vector) r3.Vector {
	return c.Sub(a).Cross(d.Sub(b)).Normalize()
}

func (p Polygon) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range p.Vertices[:p.N] {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "(%g, %g, %g)", v.Position.X, v.Position.Y, v.Position.Z)
	}
	sb.WriteString("]")
	return sb.String()
}

// collinearTolerance is the relative size of the cross product below which
// three points count as collinear.
const collinearTolerance = 1e-12

func collinear(a, b, c r3.Vector) bool {
	ab, ac := b.Sub(a), c.Sub(a)
	n := ab.Cross(ac).Norm()
	return n <= collinearTolerance*ab.Norm()*ac.Norm()
}

func finiteVertex(v Vertex) bool {
	return isFinite(v.Position)
}

// DefaultTriangleMaker builds a triangle unless a vertex isn't finite or the
// triangle is degenerate (its corners are collinear or coincide).
var DefaultTriangleMaker TriangleMaker = TriangleMakerFunc(makeTriangle)

func makeTriangle(v [3]Vertex, attrs Attributes) (Polygon, bool) {
	for _, vx := range v {
		if !finiteVertex(vx) {
			return Polygon{}, false
		}
	}
	if collinear(v[0].Position, v[1].Position, v[2].Position) {
		return Polygon{}, false
	}
	p := Polygon{N: 3, HasNormals: attrs.Normals, HasUVs: attrs.UVs}
	copy(p.Vertices[:], v[:])
	return p, true
}

// DefaultQuadMaker builds a quad unless a vertex isn't finite or any three
// consecutive corners are collinear, in which case the quad is turned into
// triangles.
var DefaultQuadMaker QuadMaker = QuadMakerFunc(makeQuad)

func makeQuad(v [4]Vertex, attrs Attributes) (Polygon, bool) {
	for _, vx := range v {
		if !finiteVertex(vx) {
			return Polygon{}, false
		}
	}
	for i := range 4 {
		if collinear(v[i].Position, v[(i+1)%4].Position, v[(i+2)%4].Position) {
			return Polygon{}, false
		}
	}
	return Polygon{Vertices: v, N: 4, HasNormals: attrs.Normals, HasUVs: attrs.UVs}, true
}
