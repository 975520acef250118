package tess

import (
	"github.com/golang/geo/r3"
)

// Mesh is an indexed polygon mesh. Faces refer to Positions by index.
type Mesh struct {
	Positions []r3.Vector
	Faces     [][]int
}

// Edge is an undirected mesh edge, A < B.
type Edge struct {
	A, B int
}

// BuildMesh welds polygons into an indexed mesh. Vertices are merged only if
// their positions are exactly equal, which is the case for vertices that
// Tessellate derived from the same grid sample.
func BuildMesh(polys []Polygon) Mesh {
	var m Mesh
	index := make(map[r3.Vector]int)
	for i := range polys {
		p := &polys[i]
		face := make([]int, 0, p.N)
		for _, v := range p.Verts() {
			idx, ok := index[v.Position]
			if !ok {
				idx = len(m.Positions)
				index[v.Position] = idx
				m.Positions = append(m.Positions, v.Position)
			}
			face = append(face, idx)
		}
		m.Faces = append(m.Faces, face)
	}
	return m
}

// Edges returns how many faces use each edge. Edges whose two ends were
// welded into one vertex are left out. In a crack-free tessellation every
// edge is used once, on the surface's border, or twice.
func (m *Mesh) Edges() map[Edge]int {
	out := make(map[Edge]int)
	for _, f := range m.Faces {
		for i, a := range f {
			b := f[(i+1)%len(f)]
			switch {
			case a == b:
				continue
			case a > b:
				a, b = b, a
			}
			out[Edge{a, b}]++
		}
	}
	return out
}

// BorderEdges returns the edges used by exactly one face.
func (m *Mesh) BorderEdges() []Edge {
	var out []Edge
	for e, n := range m.Edges() {
		if n == 1 {
			out = append(out, e)
		}
	}
	return out
}
