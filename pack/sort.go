package pack

import (
	"math"
	"sort"
)

// SortStrategy is an ordering applied to the input image set before a
// single pack attempt, plus the no-op "none". All sorts are stable with
// respect to source order on ties, so repeated runs over the same input
// are reproducible.
type SortStrategy int

const (
	SortNone SortStrategy = iota
	SortArea
	SortAreaAsc
	SortHeight
	SortHeightAsc
	SortWidth
	SortWidthAsc
	SortPerimeter
	SortMaxSide
	SortMinSide
	SortRatio
	SortRatioInv
	SortDiagonal
	SortPathological
)

// String returns the strategy's name for the "sort_strategy" manifest
// field.
func (s SortStrategy) String() string {
	switch s {
	case SortNone:
		return "none"
	case SortArea:
		return "area"
	case SortAreaAsc:
		return "area_asc"
	case SortHeight:
		return "height"
	case SortHeightAsc:
		return "height_asc"
	case SortWidth:
		return "width"
	case SortWidthAsc:
		return "width_asc"
	case SortPerimeter:
		return "perimeter"
	case SortMaxSide:
		return "max_side"
	case SortMinSide:
		return "min_side"
	case SortRatio:
		return "ratio"
	case SortRatioInv:
		return "ratio_inv"
	case SortDiagonal:
		return "diagonal"
	case SortPathological:
		return "pathological"
	default:
		return "unknown"
	}
}

// SearchStrategies lists the strategies the single-atlas search grid
// iterates, excluding "none" and "area_asc" (those are synonyms/no-ops
// already covered by the grid's own sort="none" passes and by SortArea's
// descending pass).
var SearchStrategies = [...]SortStrategy{
	SortArea, SortHeight, SortWidth, SortPerimeter, SortMaxSide, SortMinSide,
	SortRatio, SortRatioInv, SortDiagonal, SortHeightAsc, SortWidthAsc, SortPathological,
}

// Sortable is anything with a width and height, sortable by SortStrategy.
// Images are adapted to this via their raster dimensions.
type Sortable interface {
	Dimensions() (w, h int)
}

// Sort reorders items according to strategy, stably with respect to the
// original order on ties, and returns a new slice (the input is never
// mutated in place).
func Sort[T Sortable](items []T, strategy SortStrategy) []T {
	out := make([]T, len(items))
	copy(out, items)

	if strategy == SortPathological {
		return sortPathological(out)
	}

	key, desc := sortKey[T](strategy)
	if key == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := key(out[i]), key(out[j])
		if desc {
			return ki > kj
		}
		return ki < kj
	})
	return out
}

func sortKey[T Sortable](strategy SortStrategy) (func(T) float64, bool) {
	switch strategy {
	case SortArea:
		return func(t T) float64 { w, h := t.Dimensions(); return float64(w * h) }, true
	case SortAreaAsc:
		return func(t T) float64 { w, h := t.Dimensions(); return float64(w * h) }, false
	case SortHeight:
		return func(t T) float64 { _, h := t.Dimensions(); return float64(h) }, true
	case SortHeightAsc:
		return func(t T) float64 { _, h := t.Dimensions(); return float64(h) }, false
	case SortWidth:
		return func(t T) float64 { w, _ := t.Dimensions(); return float64(w) }, true
	case SortWidthAsc:
		return func(t T) float64 { w, _ := t.Dimensions(); return float64(w) }, false
	case SortPerimeter:
		return func(t T) float64 { w, h := t.Dimensions(); return float64(w + h) }, true
	case SortMaxSide:
		return func(t T) float64 { w, h := t.Dimensions(); return float64(max(w, h)) }, true
	case SortMinSide:
		return func(t T) float64 { w, h := t.Dimensions(); return float64(min(w, h)) }, true
	case SortRatio:
		return func(t T) float64 { w, h := t.Dimensions(); return float64(w) / float64(max(h, 1)) }, true
	case SortRatioInv:
		return func(t T) float64 { w, h := t.Dimensions(); return float64(h) / float64(max(w, 1)) }, true
	case SortDiagonal:
		return func(t T) float64 { w, h := t.Dimensions(); return math.Hypot(float64(w), float64(h)) }, true
	default: // SortNone
		return nil, false
	}
}

// sortPathological sorts by area descending, then interleaves from both
// ends of that ordering (outer, inner, outer, ...), stopping when the two
// cursors cross so an odd-length input's middle element appears exactly
// once.
func sortPathological[T Sortable](items []T) []T {
	byArea := Sort(items, SortArea)
	out := make([]T, 0, len(byArea))
	left, right := 0, len(byArea)-1
	for left <= right {
		out = append(out, byArea[left])
		if left != right {
			out = append(out, byArea[right])
		}
		left++
		right--
	}
	return out
}
