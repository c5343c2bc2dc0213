package pack

// BinPacker holds the free/used rectangle state for a single fixed-size
// bin: every free or used rect lies within the bin, used rects are
// pairwise disjoint, no free rect is contained in another, and no free
// rect overlaps a used rect. It is single-use per candidate configuration:
// construct, Insert repeatedly, then discard or keep the result.
//
// The splitting and pruning logic is ported from
// ForeverZer0-rectpack/maxrects.go's splitFreeNode/pruneFreeList, which
// already implements exactly this invariant; BinPacker generalizes it to
// the five named placement policies instead of the five MaxRects bin-fit
// constants, and drops flip/rotate support.
type BinPacker struct {
	w, h     int
	policy   Policy
	free     []Rect
	used     []Rect
	usedArea int

	// scratch avoids reallocating the "newly introduced free rectangles"
	// buffer on every Insert call.
	scratch []Rect
}

// NewBinPacker creates a packer for a bin of the given size, starting from
// the single free rectangle covering the whole bin.
func NewBinPacker(w, h int, policy Policy) *BinPacker {
	p := &BinPacker{w: w, h: h, policy: policy}
	p.free = append(p.free, NewRect(0, 0, w, h))
	return p
}

// Size returns the bin's configured width and height.
func (p *BinPacker) Size() (int, int) {
	return p.w, p.h
}

// Used returns the rectangles placed so far, in insertion order. The
// caller must not mutate the returned slice.
func (p *BinPacker) Used() []Rect {
	return p.used
}

// UsedArea returns the cumulative area of all placed rectangles.
func (p *BinPacker) UsedArea() int {
	return p.usedArea
}

// Insert attempts to place a w×h item, returning the chosen rectangle and
// true on success. On failure the packer's state is unchanged and the
// zero Rect is returned with false. Ties between equally-scored free
// rectangles go to whichever appears first in the free list, which is
// insertion order.
func (p *BinPacker) Insert(w, h int) (Rect, bool) {
	bestIdx := -1
	var bestScore1, bestScore2 int

	for i, fr := range p.free {
		if fr.W < w || fr.H < h {
			continue
		}
		s1, s2 := p.policy.score(fr, w, h, p.used)
		if bestIdx == -1 || s1 < bestScore1 || (s1 == bestScore1 && s2 < bestScore2) {
			bestIdx = i
			bestScore1 = s1
			bestScore2 = s2
		}
	}

	if bestIdx == -1 {
		return Rect{}, false
	}

	placed := NewRect(p.free[bestIdx].X, p.free[bestIdx].Y, w, h)
	p.place(placed)
	return placed, true
}

// place records placed as used, splits every overlapping free rectangle
// and prunes the resulting free-list of contained duplicates.
func (p *BinPacker) place(placed Rect) {
	p.scratch = p.scratch[:0]

	kept := p.free[:0]
	for _, fr := range p.free {
		if fr.Overlaps(placed) {
			p.splitInto(fr, placed)
		} else {
			kept = append(kept, fr)
		}
	}
	p.free = kept

	p.pruneScratch()
	p.free = append(p.free, p.scratch...)

	p.used = append(p.used, placed)
	p.usedArea += placed.Area()
}

// splitInto emits up to four residual bands (left, right, top, bottom) of
// free overlapping placed, skipping degenerate (zero-area) residuals.
// Ported from maxrects.go's splitFreeNode.
func (p *BinPacker) splitInto(free, placed Rect) {
	if placed.X > free.X && placed.X < free.Right() {
		p.insertScratch(NewRect(free.X, free.Y, placed.X-free.X, free.H))
	}
	if placed.Right() < free.Right() {
		p.insertScratch(NewRect(placed.Right(), free.Y, free.Right()-placed.Right(), free.H))
	}
	if placed.Y > free.Y && placed.Y < free.Bottom() {
		p.insertScratch(NewRect(free.X, free.Y, free.W, placed.Y-free.Y))
	}
	if placed.Bottom() < free.Bottom() {
		p.insertScratch(NewRect(free.X, placed.Bottom(), free.W, free.Bottom()-placed.Bottom()))
	}
}

// insertScratch appends a newly split rectangle to the scratch buffer,
// dropping it if an existing scratch rectangle already contains it and
// removing any existing scratch rectangles it contains (mirrors
// maxrects.go's insertNewFreeRectangle, keeping the scratch buffer free of
// internal containment before it is merged into the main free-list).
func (p *BinPacker) insertScratch(r Rect) {
	if r.IsEmpty() {
		return
	}
	for i := 0; i < len(p.scratch); {
		if p.scratch[i].Contains(r) {
			return
		}
		if r.Contains(p.scratch[i]) {
			last := len(p.scratch) - 1
			p.scratch[i] = p.scratch[last]
			p.scratch = p.scratch[:last]
			continue
		}
		i++
	}
	p.scratch = append(p.scratch, r)
}

// pruneScratch removes scratch rectangles already covered by a surviving
// free rectangle, then the caller merges what remains into p.free.
func (p *BinPacker) pruneScratch() {
	for i := 0; i < len(p.free); i++ {
		for j := 0; j < len(p.scratch); {
			if p.free[i].Contains(p.scratch[j]) {
				last := len(p.scratch) - 1
				p.scratch[j] = p.scratch[last]
				p.scratch = p.scratch[:last]
				continue
			}
			j++
		}
	}
}
