package tess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func loopIndices(loop []*GridSample) [][2]int {
	var out [][2]int
	for _, s := range loop {
		out = append(out, [2]int{s.UIndex, s.VIndex})
	}
	return out
}

func lookupSample(g *grid, ui, vi int) (*GridSample, bool) {
	slot, ok := g.slots[gridKey{ui, vi}]
	if !ok {
		return nil, false
	}
	return &g.samples[slot], true
}

func TestGridFirstInsertionWins(t *testing.T) {
	g := newGrid(16, NewDomain(0, 1, 0, 1), false, false)
	g.insertCorner(4, 8, 0.25, 0.5)
	g.insertCorner(4, 8, 0.3, 0.6)
	require.Equal(t, 1, g.len())

	s, ok := lookupSample(g, 4, 8)
	require.True(t, ok)
	diff(t, Param(0.25, 0.5), s.UV)

	_, ok = lookupSample(g, 8, 4)
	require.False(t, ok)
}

func TestGridMirroring(t *testing.T) {
	g := newGrid(16, NewDomain(0, 1, 0, 1), true, true)
	g.insertCorner(0, 0, 0, 0)
	// Mirrored samples aren't mirrored again, so the opposite corner isn't
	// reached from here.
	require.Equal(t, 3, g.len())
	for _, idx := range [][2]int{{0, 0}, {16, 0}, {0, 16}} {
		_, ok := lookupSample(g, idx[0], idx[1])
		require.True(t, ok, "missing sample %v", idx)
	}
	_, ok := lookupSample(g, 16, 16)
	require.False(t, ok)

	s, _ := lookupSample(g, 16, 0)
	diff(t, Param(1, 0), s.UV)

	g.insertCorner(16, 16, 1, 1)
	require.Equal(t, 4, g.len())

	// Interior indices on a closed boundary are mirrored too.
	g.insertCorner(16, 4, 1, 0.25)
	s, ok = lookupSample(g, 0, 4)
	require.True(t, ok)
	diff(t, Param(0, 0.25), s.UV)
	require.Equal(t, 6, g.len())

	g = newGrid(16, NewDomain(0, 1, 0, 1), true, false)
	g.insertCorner(16, 16, 1, 1)
	g.insertCorner(8, 0, 0.5, 0)
	require.Equal(t, 3, g.len())
}

func TestGridBoundaryLoop(t *testing.T) {
	s := flatBilinear(t)
	g := newGrid(4, s.Domain(), false, false)
	// One large leaf below two small ones.
	leaves := []indexRect{{0, 0, 4, 2}, {0, 2, 2, 4}, {2, 2, 4, 4}}
	for _, r := range leaves {
		for _, c := range [][2]int{{r.u0, r.v0}, {r.u1, r.v0}, {r.u1, r.v1}, {r.u0, r.v1}} {
			g.insertCorner(c[0], c[1], float64(c[0])/4, float64(c[1])/4)
		}
	}
	g.processAll(s, nil)

	loop := g.fetchBoundaryLoop(0, 0, 4, 2)
	diff(t, [][2]int{{0, 0}, {4, 0}, {4, 2}, {2, 2}, {0, 2}}, loopIndices(loop))
	for _, smp := range loop {
		diff(t, s.Eval(smp.UV.U, smp.UV.V), smp.Position)
		require.False(t, smp.HasNormal)
	}

	loop = g.fetchBoundaryLoop(2, 2, 4, 4)
	diff(t, [][2]int{{2, 2}, {4, 2}, {4, 4}, {2, 4}}, loopIndices(loop))

	// No leaf has a corner at (1, 0), so the rectangle isn't consistent with
	// the grid.
	require.Nil(t, g.fetchBoundaryLoop(0, 0, 1, 1))
	require.Panics(t, func() { g.insertCorner(1, 1, 0.25, 0.25) })
}

func TestGridNormalSentinels(t *testing.T) {
	s := tent(t)
	g := newGrid(4, s.Domain(), false, false)
	for _, ui := range []int{0, 2, 4} {
		for _, vi := range []int{0, 4} {
			g.insertCorner(ui, vi, float64(ui)/4, float64(vi)/4)
		}
	}
	g.processAll(s, newNormalEvaluator(s))
	for _, smp := range g.samples {
		require.Equal(t, smp.UIndex != 2, smp.HasNormal, "sample %d, %d", smp.UIndex, smp.VIndex)
	}
}
