package pack

// Policy selects which free rectangle receives a newly inserted item and
// how ties between equally-scored candidates are broken. No rotation/flip
// variant exists; rotated packing is out of scope.
type Policy int

const (
	// BestAreaFit chooses the free rectangle whose area is closest to the
	// item's area, breaking ties on the smaller leftover side.
	BestAreaFit Policy = iota
	// BestShortSideFit chooses the free rectangle minimizing the smaller
	// leftover dimension, breaking ties on the larger leftover dimension.
	BestShortSideFit
	// BestLongSideFit chooses the free rectangle minimizing the larger
	// leftover dimension, breaking ties on the smaller leftover dimension.
	BestLongSideFit
	// BottomLeft chooses the lowest, then leftmost, free rectangle.
	BottomLeft
	// ContactPoint maximizes the length of touching edges against the bin
	// boundary and already-placed rectangles.
	ContactPoint
)

// String names the policy for the "placement_strategy" manifest field.
func (p Policy) String() string {
	switch p {
	case BestAreaFit:
		return "best_area_fit"
	case BestShortSideFit:
		return "best_short_side_fit"
	case BestLongSideFit:
		return "best_long_side_fit"
	case BottomLeft:
		return "bottom_left"
	case ContactPoint:
		return "contact_point"
	default:
		return "unknown"
	}
}

// Policies lists all five placement policies in a fixed order, so the
// single-atlas search grid's iteration order, and therefore its canonical
// tie-break key, is stable across runs.
var Policies = [...]Policy{BestAreaFit, BestShortSideFit, BestLongSideFit, BottomLeft, ContactPoint}

// score computes the (primary, secondary) score tuple for placing an item
// of size (w,h) into freeRect, both minimized. used is only consulted by
// ContactPoint. Lower is always better; ContactPoint negates its maximized
// contact length so the minimization convention holds uniformly.
func (p Policy) score(freeRect Rect, w, h int, used []Rect) (int, int) {
	switch p {
	case BestAreaFit:
		leftoverArea := freeRect.Area() - w*h
		return leftoverArea, min(freeRect.W-w, freeRect.H-h)
	case BestShortSideFit:
		return min(freeRect.W-w, freeRect.H-h), max(freeRect.W-w, freeRect.H-h)
	case BestLongSideFit:
		return max(freeRect.W-w, freeRect.H-h), min(freeRect.W-w, freeRect.H-h)
	case BottomLeft:
		return freeRect.Y, freeRect.X
	case ContactPoint:
		return -contactScore(freeRect, w, h, used), freeRect.Area() - w*h
	default:
		return freeRect.Area() - w*h, min(freeRect.W-w, freeRect.H-h)
	}
}

// contactScore sums the touching-edge lengths a placement at freeRect's
// origin would have: against the bin's own left/top edges, and against
// every already-used rectangle it would abut.
func contactScore(freeRect Rect, w, h int, used []Rect) int {
	fx, fy := freeRect.X, freeRect.Y
	score := 0
	if fx == 0 {
		score += h
	}
	if fy == 0 {
		score += w
	}
	for _, u := range used {
		if u.X+u.W == fx && intervalOverlap(fy, fy+h, u.Y, u.Y+u.H) {
			score += min(h, u.H)
		}
		if u.Y+u.H == fy && intervalOverlap(fx, fx+w, u.X, u.X+u.W) {
			score += min(w, u.W)
		}
	}
	return score
}
