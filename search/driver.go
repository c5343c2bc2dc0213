package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/nullforge/atlaspack/raster"
)

// maxDriverIterations is the safety cap on adaptive packing rounds;
// exceeding it is logged but not fatal, and the partial result is
// finalized.
const maxDriverIterations = 100

// FindBestPacking repeatedly calls FindBestSingleAtlas against the images
// not yet placed, accumulating one atlas per round, until either every
// image is placed, the residual set can't be packed at all, or the
// iteration cap is hit. The returned remaining slice is empty on full
// success, or holds whatever FindBestSingleAtlas could not place (the
// caller, the downscale pipeline, decides whether to hand it to the
// individual-atlas fallback or report it). onCandidate is forwarded to
// FindBestSingleAtlas unchanged and may be nil.
func FindBestPacking(ctx context.Context, log *zap.Logger, backend raster.Backend, items []Item, padding int, onCandidate func()) (atlases []*Atlas, remaining []Item) {
	remaining = items
	for iteration := 0; len(remaining) > 0 && iteration < maxDriverIterations; iteration++ {
		atlas := FindBestSingleAtlas(ctx, backend, remaining, padding, onCandidate)
		if atlas == nil {
			break
		}
		atlases = append(atlases, atlas)
		remaining = subtractPlaced(remaining, atlas)
	}
	if len(remaining) > 0 && len(atlases) == 0 {
		log.Debug("adaptive packing could not place any image", zap.Int("residual", len(remaining)))
	} else if len(remaining) > 0 {
		log.Warn("adaptive packing stopped with residual images",
			zap.Int("placed_atlases", len(atlases)),
			zap.Int("residual", len(remaining)))
	}
	return atlases, remaining
}

// subtractPlaced returns the items not named in atlas.UV, preserving
// relative order.
func subtractPlaced(items []Item, atlas *Atlas) []Item {
	out := make([]Item, 0, len(items)-len(atlas.UV))
	for _, it := range items {
		if _, placed := atlas.UV[it.Name]; !placed {
			out = append(out, it)
		}
	}
	return out
}
