package tess

import "fmt"

// Patch is a piece of the surface being tessellated, identified by its box
// in grid index units. Index sizes are powers of two.
//
// A patch is created by subdivision and consumed either as a leaf or by
// splitting it into exactly two children. Surface is nil once the patch has
// been consumed.
type Patch struct {
	UIndexBase, UIndexSize int
	VIndexBase, VIndexSize int

	Surface *Surface

	// AuxData is threaded through subdivision for the caller's bookkeeping.
	// Children inherit their parent's value; a SplitHook may replace it.
	AuxData any
}

func (p *Patch) String() string {
	return fmt.Sprintf("patch [%d+%d]×[%d+%d]", p.UIndexBase, p.UIndexSize, p.VIndexBase, p.VIndexSize)
}

// IndexSize returns the patch's index size in the given direction.
func (p *Patch) IndexSize(dir Direction) int {
	switch dir {
	case U:
		return p.UIndexSize
	case V:
		return p.VIndexSize
	default:
		panic(InvalidDirectionError{dir})
	}
}

// split halves the patch's index box in direction dir and assigns the two
// surfaces to the halves.
func (p *Patch) split(dir Direction, lo, hi *Surface) (*Patch, *Patch) {
	l := &Patch{
		UIndexBase: p.UIndexBase,
		UIndexSize: p.UIndexSize,
		VIndexBase: p.VIndexBase,
		VIndexSize: p.VIndexSize,
		Surface:    lo,
		AuxData:    p.AuxData,
	}
	r := *l
	r.Surface = hi
	switch dir {
	case U:
		l.UIndexSize /= 2
		r.UIndexSize = l.UIndexSize
		r.UIndexBase += l.UIndexSize
	case V:
		l.VIndexSize /= 2
		r.VIndexSize = l.VIndexSize
		r.VIndexBase += l.VIndexSize
	default:
		panic(InvalidDirectionError{dir})
	}
	return l, &r
}

// indexRect is the index box of a leaf patch, queued for polygon conversion.
type indexRect struct {
	u0, v0 int
	u1, v1 int
}

func (p *Patch) indexRect() indexRect {
	return indexRect{
		u0: p.UIndexBase,
		v0: p.VIndexBase,
		u1: p.UIndexBase + p.UIndexSize,
		v1: p.VIndexBase + p.VIndexSize,
	}
}
