package search

import (
	"github.com/nullforge/atlaspack/raster"
)

// Fallback packs one atlas per image instead of failing the run, for use
// when the adaptive driver can't place anything. Oversized images are
// downscaled uniformly (aspect ratio preserved) to fit inside
// size-2*padding before being padded onto their own canvas.
func Fallback(backend raster.Backend, items []Item, size, padding int) []*Atlas {
	atlases := make([]*Atlas, 0, len(items))
	limit := size - 2*padding
	for _, it := range items {
		atlases = append(atlases, fallbackAtlas(backend, it, limit, padding))
	}
	return atlases
}

func fallbackAtlas(backend raster.Backend, it Item, limit, padding int) *Atlas {
	w, h := it.W, it.H
	src := it.Raster
	if w > limit || h > limit {
		scale := min(float64(limit)/float64(w), float64(limit)/float64(h))
		newW := max(1, int(float64(w)*scale))
		newH := max(1, int(float64(h)*scale))
		src = backend.Resize(src, newW, newH)
		w, h = newW, newH
	}

	canvasW, canvasH := w+2*padding, h+2*padding
	canvas := backend.New(canvasW, canvasH)
	backend.Paste(canvas, src, padding, padding)

	uv := map[string]UV{
		it.Name: {
			Width:      w,
			Height:     h,
			RectX:      float64(padding) / float64(canvasW),
			RectY:      1 - float64(padding+h)/float64(canvasH),
			RectWidth:  float64(w) / float64(canvasW),
			RectHeight: float64(h) / float64(canvasH),
		},
	}

	return &Atlas{
		Raster:            canvas,
		UV:                uv,
		Width:             canvasW,
		Height:            canvasH,
		Count:             1,
		SortStrategy:      "none",
		PlacementStrategy: "fallback",
		Efficiency:        float64(w*h) / float64(canvasW*canvasH),
	}
}
