package search

import (
	"github.com/nullforge/atlaspack/pack"
	"github.com/nullforge/atlaspack/raster"
)

// PackInto sorts items, greedily places them into a size×size bin under
// policy, stopping at the first item that doesn't fit (remaining items
// are left for a subsequent atlas, never skipped over), then crops to the
// bounding box of what was placed and computes normalized
// bottom-left-origin UVs.
//
// Returns nil if nothing could be placed.
func PackInto(backend raster.Backend, items []Item, size int, sort pack.SortStrategy, policy pack.Policy, padding int) *Atlas {
	if len(items) == 0 {
		return nil
	}

	ordered := pack.Sort(items, sort)
	binPacker := pack.NewBinPacker(size, size, policy)
	canvas := backend.New(size, size)

	type placement struct {
		name       string
		x, y, w, h int
	}
	var placements []placement
	maxRight, maxBottom := 0, 0

	for _, it := range ordered {
		rect, ok := binPacker.Insert(it.W+2*padding, it.H+2*padding)
		if !ok {
			break
		}
		px, py := rect.X+padding, rect.Y+padding
		backend.Paste(canvas, it.Raster, px, py)
		placements = append(placements, placement{name: it.Name, x: px, y: py, w: it.W, h: it.H})
		if right := rect.X + rect.W; right > maxRight {
			maxRight = right
		}
		if bottom := rect.Y + rect.H; bottom > maxBottom {
			maxBottom = bottom
		}
	}

	if len(placements) == 0 {
		return nil
	}

	w, h := max(maxRight, 1), max(maxBottom, 1)
	cropped := backend.Crop(canvas, w, h)

	uv := make(map[string]UV, len(placements))
	placedArea := 0
	for _, pl := range placements {
		uv[pl.name] = UV{
			Width:       pl.w,
			Height:      pl.h,
			RectX:       float64(pl.x) / float64(w),
			RectY:       1 - float64(pl.y+pl.h)/float64(h),
			RectWidth:   float64(pl.w) / float64(w),
			RectHeight:  float64(pl.h) / float64(h),
		}
		placedArea += pl.w * pl.h
	}

	sc := score{count: len(placements), area: w * h, placedArea: placedArea}
	return &Atlas{
		Raster:            cropped,
		UV:                uv,
		Width:             w,
		Height:            h,
		Count:             len(placements),
		SortStrategy:      sort.String(),
		PlacementStrategy: policy.String(),
		Efficiency:        sc.efficiency(),
	}
}
