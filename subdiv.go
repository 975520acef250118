package tess

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/pkg/errors"
)

const (
	// Patches with poles are bisected without consulting the scorer until
	// their index size drops to this.
	poleIndexSize = 4

	// Once this many more splits have gone in one direction than in the
	// other along a path from the root, the next balanced split is forced
	// into the other direction.
	maxSplitBias = 2

	// Balanced splits happen slightly off the middle so that split lines
	// rarely coincide with features placed exactly at halves.
	balancedSplitAt = 0.5 + 1.0/64

	// Patches narrower than this in parameter space, relative to the
	// magnitude of their parameters, aren't split further.
	minParamWidth = 1e-12
)

// narrow reports whether iv is too short to be split without the split
// parameter rounding onto one of its ends.
func narrow(iv r1.Interval) bool {
	scale := max(1, math.Abs(iv.Lo), math.Abs(iv.Hi))
	return !(iv.Length() >= minParamWidth*scale)
}

// leaf is a patch accepted for polygon conversion.
type leaf struct {
	rect   indexRect
	domain Domain
	score  float64
}

// subdivide refines p until every part of it is a leaf, registering the
// leaves' corners with the grid. bias counts U splits minus V splits on the
// path from the root.
func (ts *tessellator) subdivide(p *Patch, bias int) error {
	s := p.Surface
	dom := s.Domain()

	if s.HasPoles() {
		dir := U
		if p.VIndexSize > p.UIndexSize {
			dir = V
		}
		if p.IndexSize(dir) > poleIndexSize && !narrow(dom.Interval(dir)) {
			ts.stats.poleSplits++
			return ts.split(p, dir, dom.Interval(dir).Center(), bias)
		}
	}

	if dir, t, ok := creaseSplit(p); ok {
		ts.stats.knotSplits++
		return ts.split(p, dir, t, bias)
	}

	score := ts.scorer.Score(p, ts.tolerance)
	if ts.isLeaf(p, dom, score) {
		ts.addLeaf(p, dom, score)
		return nil
	}

	if dir, t, ok := knotSplit(s); ok {
		ts.stats.knotSplits++
		return ts.split(p, dir, t, bias)
	}
	return ts.balancedSplit(p, dom, bias)
}

func (ts *tessellator) isLeaf(p *Patch, dom Domain, score float64) bool {
	switch {
	case p.UIndexSize <= 2 && p.VIndexSize <= 2:
		return true
	case narrow(dom.U) || narrow(dom.V):
		return true
	default:
		return score <= 0
	}
}

func (ts *tessellator) addLeaf(p *Patch, dom Domain, score float64) {
	r := p.indexRect()
	ts.grid.insertCorner(r.u0, r.v0, dom.U.Lo, dom.V.Lo)
	ts.grid.insertCorner(r.u1, r.v0, dom.U.Hi, dom.V.Lo)
	ts.grid.insertCorner(r.u1, r.v1, dom.U.Hi, dom.V.Hi)
	ts.grid.insertCorner(r.u0, r.v1, dom.U.Lo, dom.V.Hi)
	ts.leaves = append(ts.leaves, leaf{rect: r, domain: dom, score: score})
	p.Surface = nil
}

// creaseSplit picks an interior knot at which the tangent plane of p's
// surface is discontinuous, so that no leaf straddles a crease and blends
// the normals of both sides. Directions without index room are skipped.
// With creases in both directions, the one with more of them is split.
func creaseSplit(p *Patch) (Direction, float64, bool) {
	s := p.Surface
	var cu, cv []float64
	if p.UIndexSize >= 2 {
		cu = s.UKnots.C1Discontinuities(s.UOrder, s.ULength)
	}
	if p.VIndexSize >= 2 {
		cv = s.VKnots.C1Discontinuities(s.VOrder, s.VLength)
	}
	switch {
	case len(cv) > len(cu):
		return V, cv[len(cv)/2], true
	case len(cu) > 0:
		return U, cu[len(cu)/2], true
	default:
		return 0, 0, false
	}
}

// knotSplit picks a split at an interior knot, so that the pieces become
// Bézier patches before any other split happens. With knots left in both
// directions, it splits the direction with more control points beyond its
// order, preferring U on ties.
func knotSplit(s *Surface) (Direction, float64, bool) {
	tu, okU := s.UKnots.MiddleKnot(s.UOrder, s.ULength)
	tv, okV := s.VKnots.MiddleKnot(s.VOrder, s.VLength)
	switch {
	case okU && okV:
		if s.VLength-s.VOrder > s.ULength-s.UOrder {
			return V, tv, true
		}
		return U, tu, true
	case okU:
		return U, tu, true
	case okV:
		return V, tv, true
	default:
		return 0, 0, false
	}
}

// balancedSplit splits a Bézier patch in whichever direction yields the
// better worse half, unless the split history is too lopsided.
func (ts *tessellator) balancedSplit(p *Patch, dom Domain, bias int) error {
	canU := p.UIndexSize >= 2
	canV := p.VIndexSize >= 2
	switch {
	case bias > maxSplitBias && canV:
		canU = false
	case bias < -maxSplitBias && canU:
		canV = false
	}

	switch {
	case canU && canV:
		tu := dom.U.Lo + dom.Width()*balancedSplitAt
		tv := dom.V.Lo + dom.Height()*balancedSplitAt
		su0, su1 := p.Surface.Subdivide(tu, U)
		sv0, sv1 := p.Surface.Subdivide(tv, V)
		lu, hu := p.split(U, su0, su1)
		lv, hv := p.split(V, sv0, sv1)
		errU := max(ts.scorer.Score(lu, ts.tolerance), ts.scorer.Score(hu, ts.tolerance))
		errV := max(ts.scorer.Score(lv, ts.tolerance), ts.scorer.Score(hv, ts.tolerance))
		ts.stats.balancedSplits++
		if errU <= errV || math.IsNaN(errV) {
			return ts.descend(p, lu, hu, tu, U, bias)
		}
		return ts.descend(p, lv, hv, tv, V, bias)
	case canU:
		ts.stats.balancedSplits++
		return ts.split(p, U, dom.U.Lo+dom.Width()*balancedSplitAt, bias)
	default:
		// Both index sizes being 1 would have made p a leaf, so canV holds
		// here or split reports the overflow.
		ts.stats.balancedSplits++
		return ts.split(p, V, dom.V.Lo+dom.Height()*balancedSplitAt, bias)
	}
}

// split divides p at t in direction dir and descends into the children.
func (ts *tessellator) split(p *Patch, dir Direction, t float64, bias int) error {
	if p.IndexSize(dir) < 2 {
		return errors.Wrapf(ErrIndexOverflow, "splitting %v in %v at %g", p, dir, t)
	}
	dom := p.Surface.Domain()
	if !dom.Interval(dir).InteriorContains(t) {
		// Rounding left no room for t.
		ts.addLeaf(p, dom, ts.scorer.Score(p, ts.tolerance))
		return nil
	}
	lo, hi := p.Surface.Subdivide(t, dir)
	l, r := p.split(dir, lo, hi)
	return ts.descend(p, l, r, t, dir, bias)
}

// descend hands the children of p to the split hook and subdivides those
// that survive pruning, left first.
func (ts *tessellator) descend(p, l, r *Patch, t float64, dir Direction, bias int) error {
	if ts.opts.SplitHook != nil {
		ts.opts.SplitHook.OnSplit(p, l, r, t, dir)
	}
	p.Surface = nil

	switch dir {
	case U:
		bias++
	case V:
		bias--
	}

	pruneL := l.AuxData == nil && r.AuxData != nil
	pruneR := r.AuxData == nil && l.AuxData != nil
	if pruneL {
		ts.stats.pruned++
	} else if err := ts.subdivide(l, bias); err != nil {
		return err
	}
	if pruneR {
		ts.stats.pruned++
	} else if err := ts.subdivide(r, bias); err != nil {
		return err
	}
	return nil
}
