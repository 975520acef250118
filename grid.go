package tess

import (
	"slices"
	"sort"

	"github.com/golang/geo/r3"
)

// GridSample is the single evaluation of the surface at one grid index.
// Every leaf touching that index uses the same sample, which is what keeps
// neighbouring polygons free of cracks.
type GridSample struct {
	UIndex, VIndex int
	UV             UV
	Position       r3.Vector
	// Normal is only meaningful if HasNormal is set. HasNormal is false when
	// normals weren't requested, or when the sample lies on a tangent plane
	// discontinuity or a degenerate point of the surface.
	Normal    r3.Vector
	HasNormal bool
}

type gridKey struct {
	u, v int
}

// grid stores one GridSample per distinct grid index. It is owned by a single
// tessellation call; samples live in one slice and are referred to by slot.
type grid struct {
	samples []GridSample
	slots   map[gridKey]int32

	// Grid index of the domain's far edges in u and v.
	maxIndex int
	domain   Domain
	closedU  bool
	closedV  bool

	// Populated by processAll: for every u index the slots of its samples in
	// ascending v index, for every v index the slots in ascending u index.
	columns   map[int][]int32
	rows      map[int][]int32
	processed bool
}

func newGrid(maxIndex int, dom Domain, closedU, closedV bool) *grid {
	return &grid{
		slots:    make(map[gridKey]int32),
		maxIndex: maxIndex,
		domain:   dom,
		closedU:  closedU,
		closedV:  closedV,
	}
}

func (g *grid) len() int { return len(g.samples) }

// insertCorner records that grid index (ui, vi) maps to parameters (u, v).
// The first insertion of an index wins; later ones are no-ops. On a closed
// surface, indices on a wrapping boundary are mirrored onto the opposite
// boundary so that both sides of the seam see the same vertices.
func (g *grid) insertCorner(ui, vi int, u, v float64) {
	g.insert(ui, vi, u, v, true)
}

func (g *grid) insert(ui, vi int, u, v float64, mirror bool) {
	if g.processed {
		panic("tess: grid insertion after processing")
	}
	key := gridKey{ui, vi}
	if _, ok := g.slots[key]; ok {
		return
	}
	g.slots[key] = int32(len(g.samples))
	g.samples = append(g.samples, GridSample{
		UIndex: ui,
		VIndex: vi,
		UV:     UV{U: u, V: v},
	})

	if !mirror {
		return
	}
	if g.closedU {
		switch ui {
		case 0:
			g.insert(g.maxIndex, vi, g.domain.U.Hi, v, false)
		case g.maxIndex:
			g.insert(0, vi, g.domain.U.Lo, v, false)
		}
	}
	if g.closedV {
		switch vi {
		case 0:
			g.insert(ui, g.maxIndex, u, g.domain.V.Hi, false)
		case g.maxIndex:
			g.insert(ui, 0, u, g.domain.V.Lo, false)
		}
	}
}

// processAll builds the sorted row and column views and evaluates every
// sample exactly once. It must be called after the last insertion and before
// fetching boundary loops.
//
// Normals are left undefined for samples on a tangent plane discontinuity of
// s. ne may be nil if no normals are wanted.
func (g *grid) processAll(s *Surface, ne *normalEvaluator) {
	g.processed = true
	g.columns = make(map[int][]int32)
	g.rows = make(map[int][]int32)
	for slot, smp := range g.samples {
		g.columns[smp.UIndex] = append(g.columns[smp.UIndex], int32(slot))
		g.rows[smp.VIndex] = append(g.rows[smp.VIndex], int32(slot))
	}
	for _, col := range g.columns {
		slices.SortFunc(col, func(a, b int32) int { return g.samples[a].VIndex - g.samples[b].VIndex })
	}
	for _, row := range g.rows {
		slices.SortFunc(row, func(a, b int32) int { return g.samples[a].UIndex - g.samples[b].UIndex })
	}

	// Evaluate row by row in index order, so that evaluation order doesn't
	// depend on map iteration.
	vis := make([]int, 0, len(g.rows))
	for vi := range g.rows {
		vis = append(vis, vi)
	}
	slices.Sort(vis)
	for _, vi := range vis {
		for _, slot := range g.rows[vi] {
			smp := &g.samples[slot]
			smp.Position = s.Eval(smp.UV.U, smp.UV.V)
			if ne == nil {
				continue
			}
			if s.IsC1Discontinuity(smp.UV.U, U) || s.IsC1Discontinuity(smp.UV.V, V) {
				continue
			}
			smp.Normal, smp.HasNormal = ne.Normal(smp.UV.U, smp.UV.V)
		}
	}
}

// side returns the samples of a sorted row or column whose index along the
// line lies in [from, to], in ascending order. It fails unless the first and
// last of them sit exactly on from and to.
func (g *grid) side(line []int32, from, to int, along func(*GridSample) int) ([]int32, bool) {
	lo := sort.Search(len(line), func(i int) bool { return along(&g.samples[line[i]]) >= from })
	hi := sort.Search(len(line), func(i int) bool { return along(&g.samples[line[i]]) > to })
	if lo >= hi {
		return nil, false
	}
	out := line[lo:hi]
	if along(&g.samples[out[0]]) != from || along(&g.samples[out[len(out)-1]]) != to {
		return nil, false
	}
	return out, true
}

func sampleU(s *GridSample) int { return s.UIndex }
func sampleV(s *GridSample) int { return s.VIndex }

// fetchBoundaryLoop returns the samples on the boundary of the index
// rectangle [u0, u1]×[v0, v1], counter-clockwise in parameter space and
// starting at (u0, v0). It returns nil if the grid doesn't contain a
// consistent boundary for the rectangle.
func (g *grid) fetchBoundaryLoop(u0, v0, u1, v1 int) []*GridSample {
	if !g.processed {
		panic("tess: boundary fetched before grid processing")
	}
	bottom, ok1 := g.side(g.rows[v0], u0, u1, sampleU)
	right, ok2 := g.side(g.columns[u1], v0, v1, sampleV)
	top, ok3 := g.side(g.rows[v1], u0, u1, sampleU)
	left, ok4 := g.side(g.columns[u0], v0, v1, sampleV)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}

	loop := make([]*GridSample, 0, len(bottom)+len(right)+len(top)+len(left)-4)
	// Each side contributes all but its last sample, which starts the next
	// side.
	for _, slot := range bottom[:len(bottom)-1] {
		loop = append(loop, &g.samples[slot])
	}
	for _, slot := range right[:len(right)-1] {
		loop = append(loop, &g.samples[slot])
	}
	for i := len(top) - 1; i > 0; i-- {
		loop = append(loop, &g.samples[top[i]])
	}
	for i := len(left) - 1; i > 0; i-- {
		loop = append(loop, &g.samples[left[i]])
	}
	return loop
}
