package tess

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// tessellator holds the state of one call to Tessellate.
type tessellator struct {
	surface   *Surface
	tolerance float64
	opts      Options
	attrs     Attributes

	scorer      Scorer
	triMaker    TriangleMaker
	quadMaker   QuadMaker
	uvTransform Affine

	maxIndex int
	grid     *grid
	leaves   []leaf

	// Set if normals were requested.
	normals *normalEvaluator

	polys []Polygon
	stats stats
}

type stats struct {
	poleSplits     int
	knotSplits     int
	balancedSplits int
	pruned         int
	skipped        int
	rejected       int
	faceNormals    int
	polygons       int
}

func newTessellator(s *Surface, tolerance float64, opts Options) (*tessellator, error) {
	if s == nil {
		return nil, errors.Wrap(ErrInvalidSurface, "nil surface")
	}
	if !(tolerance > 0) || math.IsInf(tolerance, 1) {
		return nil, errors.Wrapf(ErrInvalidOptions, "tolerance %g isn't positive and finite", tolerance)
	}
	depth, err := opts.maxDepth()
	if err != nil {
		return nil, err
	}
	if aff := opts.UVTransform; aff != nil && (aff.IsInf() || aff.IsNaN()) {
		return nil, errors.Wrapf(ErrInvalidOptions, "UV transform %v isn't finite", *aff)
	}

	dom := s.Domain()
	ts := &tessellator{
		surface:     s,
		tolerance:   tolerance,
		opts:        opts,
		attrs:       Attributes{Normals: opts.Normals, UVs: opts.UVs},
		scorer:      opts.Scorer,
		triMaker:    opts.TriangleMaker,
		quadMaker:   opts.QuadMaker,
		uvTransform: dom.UnitTransform(),
		maxIndex:    1 << depth,
	}
	if ts.scorer == nil {
		ts.scorer = DefaultScorer
	}
	if ts.triMaker == nil {
		ts.triMaker = DefaultTriangleMaker
	}
	if ts.quadMaker == nil {
		ts.quadMaker = DefaultQuadMaker
	}
	if opts.UVTransform != nil {
		ts.uvTransform = *opts.UVTransform
	}
	ts.grid = newGrid(ts.maxIndex, dom, s.Closed(U), s.Closed(V))
	if opts.Normals {
		ts.normals = newNormalEvaluator(s)
	}
	return ts, nil
}

// Tessellate approximates s by polygons whose distance from the surface is
// roughly within tolerance. Neighbouring polygons share their vertices
// exactly, including along the seams of closed surfaces, so the result has
// no cracks.
//
// The returned polygons are in a deterministic order. If opts.Sink is set,
// polygons are passed to it instead and the returned slice is nil.
//
// An error wrapping ErrIndexOverflow means the tolerance couldn't be met with
// the grid resolution given by opts.MaxDepth; no polygons are returned then,
// although a Sink may already have received some.
func Tessellate(s *Surface, tolerance float64, opts Options) (polys []Polygon, err error) {
	ts, err := newTessellator(s, tolerance, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			dirErr, ok := r.(InvalidDirectionError)
			if !ok {
				panic(r)
			}
			polys, err = nil, errors.WithStack(dirErr)
		}
	}()

	if err := ts.run(); err != nil {
		return nil, err
	}
	return ts.polys, nil
}

func (ts *tessellator) run() error {
	root := &Patch{
		UIndexSize: ts.maxIndex,
		VIndexSize: ts.maxIndex,
		Surface:    ts.surface,
		AuxData:    ts.opts.AuxData,
	}
	if err := ts.subdivide(root, 0); err != nil {
		Logger().Debug("subdivision failed", "error", err)
		return err
	}

	ts.grid.processAll(ts.surface, ts.normals)
	for _, lf := range ts.leaves {
		ts.leafPolygons(lf)
	}

	Logger().Debug("tessellated surface",
		"surface", fmt.Sprintf("%d×%d", ts.surface.ULength, ts.surface.VLength),
		"tolerance", ts.tolerance,
		"leaves", len(ts.leaves),
		"samples", ts.grid.len(),
		"poleSplits", ts.stats.poleSplits,
		"knotSplits", ts.stats.knotSplits,
		"balancedSplits", ts.stats.balancedSplits,
		"pruned", ts.stats.pruned,
		"skipped", ts.stats.skipped,
		"rejected", ts.stats.rejected,
		"faceNormals", ts.stats.faceNormals,
		"polygons", ts.stats.polygons)
	return nil
}
