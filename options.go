package tess

import (
	"github.com/pkg/errors"
)

// DefaultMaxDepth is the grid depth used when Options.MaxDepth is zero. The
// parameter grid then has 2^10+1 ticks in each direction.
const DefaultMaxDepth = 10

// maxMaxDepth bounds Options.MaxDepth so that grid index arithmetic stays
// within 32 bits.
const maxMaxDepth = 30

// Options configures a call to [Tessellate]. The zero value is valid: no
// normals, no UVs, triangles only and the default strategies.
type Options struct {
	// Normals requests per-vertex unit normals.
	Normals bool
	// UVs requests per-vertex texture coordinates.
	UVs bool
	// AuxData is attached to the root patch and inherited by its
	// descendants.
	AuxData any

	// Scorer replaces DefaultScorer.
	Scorer Scorer
	// SplitHook is notified of every split.
	SplitHook SplitHook
	// TriangleMaker replaces DefaultTriangleMaker.
	TriangleMaker TriangleMaker
	// QuadMaker replaces DefaultQuadMaker.
	QuadMaker QuadMaker
	// Sink, if set, receives every polygon and Tessellate returns no slice.
	Sink Sink

	// Quads allows emitting a planar four-sided leaf as a single quad. By
	// default only triangles are produced.
	Quads bool
	// FourTrianglesPerQuad splits four-sided leaves that aren't emitted as
	// quads into a fan of four triangles around their centre instead of two
	// triangles.
	FourTrianglesPerQuad bool

	// MaxDepth is the binary depth of the parameter grid, between 1 and 30.
	// Zero means DefaultMaxDepth.
	MaxDepth int
	// UVTransform maps surface parameters to texture coordinates. Nil maps
	// the surface's domain onto the unit square. Its coefficients must be
	// finite.
	UVTransform *Affine
}

func (opts *Options) maxDepth() (int, error) {
	switch d := opts.MaxDepth; {
	case d == 0:
		return DefaultMaxDepth, nil
	case d < 1 || d > maxMaxDepth:
		return 0, errors.Wrapf(ErrInvalidOptions, "max depth %d outside of [1, %d]", d, maxMaxDepth)
	default:
		return d, nil
	}
}

// SplitHook is notified whenever a patch is split into two children.
//
// OnSplit may replace the children's AuxData. A child whose AuxData is nil
// while its sibling's isn't is pruned: neither it nor its descendants
// produce polygons. Note that an interface holding a typed nil pointer is not
// nil.
type SplitHook interface {
	OnSplit(parent, left, right *Patch, t float64, dir Direction)
}

// SplitHookFunc adapts a function to the [SplitHook] interface.
type SplitHookFunc func(parent, left, right *Patch, t float64, dir Direction)

func (f SplitHookFunc) OnSplit(parent, left, right *Patch, t float64, dir Direction) {
	f(parent, left, right, t, dir)
}

// Attributes describes which optional vertex data is present.
type Attributes struct {
	Normals bool
	UVs     bool
}

// TriangleMaker turns three vertices, counter-clockwise in parameter space,
// into a polygon. It reports false if no polygon should be generated.
type TriangleMaker interface {
	MakeTriangle(v [3]Vertex, attrs Attributes) (Polygon, bool)
}

// TriangleMakerFunc adapts a function to the [TriangleMaker] interface.
type TriangleMakerFunc func(v [3]Vertex, attrs Attributes) (Polygon, bool)

func (f TriangleMakerFunc) MakeTriangle(v [3]Vertex, attrs Attributes) (Polygon, bool) {
	return f(v, attrs)
}

// QuadMaker turns four vertices, counter-clockwise in parameter space, into
// a polygon. If it reports false the quad is emitted as triangles instead.
type QuadMaker interface {
	MakeQuad(v [4]Vertex, attrs Attributes) (Polygon, bool)
}

// QuadMakerFunc adapts a function to the [QuadMaker] interface.
type QuadMakerFunc func(v [4]Vertex, attrs Attributes) (Polygon, bool)

func (f QuadMakerFunc) MakeQuad(v [4]Vertex, attrs Attributes) (Polygon, bool) {
	return f(v, attrs)
}

// Sink receives polygons as they are produced.
type Sink interface {
	Emit(p Polygon)
}

// SinkFunc adapts a function to the [Sink] interface.
type SinkFunc func(p Polygon)

func (f SinkFunc) Emit(p Polygon) { f(p) }
