// Package pack implements the 2D rectangle bin-packer: the free-rectangle
// list with its split/prune invariants, the placement-policy scoring
// functions, and the sort strategies applied to the input image set before
// packing. It has no notion of images, atlases or manifests: it only
// arranges abstract (w,h) items into non-overlapping rectangles within a
// fixed-size bin.
package pack

import "fmt"

// Rect is an axis-aligned rectangle with integer coordinates. A Rect with
// W<=0 or H<=0 is the empty rectangle and is never stored in a BinPacker's
// free-list.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect builds a rectangle from its origin and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// String returns a compact representation useful in test failures.
func (r Rect) String() string {
	return fmt.Sprintf("<%d,%d %dx%d>", r.X, r.Y, r.W, r.H)
}

// Area returns the rectangle's area.
func (r Rect) Area() int {
	return r.W * r.H
}

// Right returns the x-coordinate of the rectangle's right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// IsEmpty reports whether the rectangle has non-positive width or height.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether r fully encloses other (used by the free-list
// pruning pass: a free rect strictly contained in another is redundant).
func (r Rect) Contains(other Rect) bool {
	return r.X <= other.X && other.Right() <= r.Right() &&
		r.Y <= other.Y && other.Bottom() <= r.Bottom()
}

// Overlaps reports whether r and other share any positive area. Rectangles
// that merely touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return other.X < r.Right() && r.X < other.Right() &&
		other.Y < r.Bottom() && r.Y < other.Bottom()
}

// intervalOverlap returns true if the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) overlap on more than a touching point.
func intervalOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
