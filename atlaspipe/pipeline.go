package atlaspipe

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/minio/sha256-simd"
	"go.uber.org/zap"

	"github.com/nullforge/atlaspack/raster"
	"github.com/nullforge/atlaspack/search"
)

// scaleFactors is the fixed downscale sequence applied at each pipeline level.
var scaleFactors = [...]int{1, 2, 4, 8, 16}

// downscaledImage is one source image resampled for a single pipeline
// level.
type downscaledImage struct {
	Name          string
	Raster        raster.Raster
	Width, Height int
}

// AtlasOutput is one written atlas, ready for manifest assembly: the
// packed result plus the scale/index/filename/content-hash fields the
// output manifest's AtlasRecord needs beyond what search.Atlas carries.
type AtlasOutput struct {
	File              string
	Scale             int
	Index             int
	Width, Height     int
	UV                map[string]search.UV
	Count             int
	SHA256            string
	SortStrategy      string
	PlacementStrategy string
	Efficiency        float64
}

// Run executes the downscale pipeline end to end: for each downscale
// factor, resample every source image, drive the adaptive packer
// (falling back to one-atlas-per-image when it can't place anything),
// sort the level's atlases by descending image count, assign sequential
// filenames, encode each to PNG under outputDir, and hash the written
// bytes. It stops early once a level produces exactly one atlas, since
// every larger downscale factor would also fit in one and add nothing.
func Run(ctx context.Context, log *zap.Logger, backend raster.Backend, images []SourceImage, outputDir string, maxAtlasSize, padding int, progress ProgressFunc) ([]AtlasOutput, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("atlaspipe: create output directory: %w", err)
	}

	var outputs []AtlasOutput
	for _, factor := range scaleFactors {
		notify(progress, ProgressEvent{Stage: StageLevelStarted, Scale: factor})

		downscaled := downscaleAll(backend, images, factor)
		items := toItems(downscaled)

		onCandidate := func() { notify(progress, ProgressEvent{Stage: StageCandidateEvaluated, Scale: factor}) }
		atlases, remaining := search.FindBestPacking(ctx, log, backend, items, padding, onCandidate)
		if len(remaining) > 0 {
			log.Info("falling back to individual atlases for residual images",
				zap.Int("scale", factor), zap.Int("residual", len(remaining)))
			atlases = append(atlases, search.Fallback(backend, remaining, maxAtlasSize, padding)...)
		}
		if len(atlases) == 0 {
			return nil, fmt.Errorf("atlaspipe: scale x%d produced no atlases", factor)
		}

		sort.SliceStable(atlases, func(i, j int) bool { return atlases[i].Count > atlases[j].Count })

		levelOutputs := make([]AtlasOutput, 0, len(atlases))
		for index, atlas := range atlases {
			out, err := save(backend, outputDir, factor, index, atlas)
			if err != nil {
				return nil, err
			}
			levelOutputs = append(levelOutputs, out)
			notify(progress, ProgressEvent{Stage: StageAtlasSaved, Scale: factor, Atlases: len(atlases), File: out.File})
		}
		outputs = append(outputs, levelOutputs...)

		notify(progress, ProgressEvent{Stage: StageLevelFinished, Scale: factor, Atlases: len(atlases)})

		if len(atlases) == 1 {
			log.Debug("early termination: single atlas fits the full image set", zap.Int("scale", factor))
			break
		}
	}
	return outputs, nil
}

// downscaleAll resamples every source image to 1/factor of its (already
// pre-resized) size. Factor 1 reuses the source raster unchanged.
func downscaleAll(backend raster.Backend, images []SourceImage, factor int) []downscaledImage {
	out := make([]downscaledImage, len(images))
	for i, img := range images {
		if factor == 1 {
			out[i] = downscaledImage{Name: img.Name, Raster: img.Raster, Width: img.Width, Height: img.Height}
			continue
		}
		newW := max(1, img.Width/factor)
		newH := max(1, img.Height/factor)
		resized := backend.Resize(img.Raster, newW, newH)
		out[i] = downscaledImage{Name: img.Name, Raster: resized, Width: newW, Height: newH}
	}
	return out
}

// save writes one atlas's PNG, hashes the bytes just written (SHA-256 is
// computed after writing, over the encoded file), and returns the
// AtlasOutput record.
func save(backend raster.Backend, outputDir string, scale, index int, atlas *search.Atlas) (AtlasOutput, error) {
	filename := fmt.Sprintf("atlas_x%02d_%02d.png", scale, index)
	path := filepath.Join(outputDir, filename)

	if err := backend.Encode(atlas.Raster, path); err != nil {
		return AtlasOutput{}, fmt.Errorf("atlaspipe: write %s: %w", filename, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return AtlasOutput{}, fmt.Errorf("atlaspipe: reread %s for hashing: %w", filename, err)
	}
	sum := sha256.Sum256(data)

	return AtlasOutput{
		File:              filename,
		Scale:             scale,
		Index:             index,
		Width:             atlas.Width,
		Height:            atlas.Height,
		UV:                atlas.UV,
		Count:             atlas.Count,
		SHA256:            hex.EncodeToString(sum[:]),
		SortStrategy:      atlas.SortStrategy,
		PlacementStrategy: atlas.PlacementStrategy,
		Efficiency:        atlas.Efficiency,
	}, nil
}
