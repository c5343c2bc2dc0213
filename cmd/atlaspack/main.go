// Command atlaspack builds multi-resolution texture atlases from a
// directory of source images: a flat packed-PNG set per downscale level
// plus a manifest describing per-image UV rectangles and content hashes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nullforge/atlaspack/atlaspipe"
	"github.com/nullforge/atlaspack/manifest"
	"github.com/nullforge/atlaspack/raster"
)

const (
	defaultMaxAtlasSize = 2048
	defaultPadding      = 2
)

func main() {
	input := flag.String("input", "", "input directory of source images (required)")
	output := flag.String("output", "output_atlases", "output directory for atlas PNGs and manifest.json")
	maxAtlasSize := flag.Int("max-atlas-size", defaultMaxAtlasSize, "maximum side length, in pixels, of one-image fallback atlases, recorded in the manifest (the packing search itself tries 2048, 1536 and 1024)")
	padding := flag.Int("padding", defaultPadding, "padding, in pixels, around each packed image")
	maxImageSize := flag.Int("max-image-size", 0, "maximum source image side length before packing (0: same as max-atlas-size)")
	static := flag.String("static", "", "also emit a static-publication manifest + renamed atlas copies under this directory")
	verbose := flag.Bool("verbose", false, "enable debug-level logging")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "atlaspack: -input is required")
		os.Exit(1)
	}

	log := newLogger(*verbose)
	defer log.Sync()

	if err := run(log, *input, *output, *static, *maxAtlasSize, *padding, *maxImageSize); err != nil {
		log.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		// zap itself failed to construct; fall back to a no-op rather than
		// crash before we've even started.
		return zap.NewNop()
	}
	return logger
}

func run(log *zap.Logger, inputDir, outputDir, staticDir string, maxAtlasSize, padding, maxImageSizeFlag int) error {
	if _, err := os.Stat(inputDir); err != nil {
		return fmt.Errorf("input directory missing: %w", err)
	}

	overrides, err := manifest.ReadInput(inputDir)
	if err != nil {
		return err
	}
	if overrides.MaxAtlasSize != nil {
		maxAtlasSize = *overrides.MaxAtlasSize
	}
	if overrides.Padding != nil {
		padding = *overrides.Padding
	}
	maxImageSize := maxAtlasSize
	if maxImageSizeFlag > 0 {
		maxImageSize = maxImageSizeFlag
	}
	if overrides.MaxImageSize != nil {
		maxImageSize = *overrides.MaxImageSize
	}

	backend := raster.NewImagingBackend()

	images, err := atlaspipe.LoadDirectory(log, backend, inputDir, maxImageSize)
	if err != nil {
		return err
	}
	log.Info("loaded source images", zap.Int("count", len(images)), zap.Int("max_image_size", maxImageSize))

	progress := func(ev atlaspipe.ProgressEvent) {
		if ev.Stage == atlaspipe.StageLevelFinished {
			log.Info("downscale level finished", zap.Int("scale", ev.Scale), zap.Int("atlases", ev.Atlases))
		}
	}

	outputs, err := atlaspipe.Run(context.Background(), log, backend, images, outputDir, maxAtlasSize, padding, progress)
	if err != nil {
		return err
	}

	atlases := make([]manifest.AtlasRecord, 0, len(outputs))
	totalPlaced := 0
	for _, o := range outputs {
		uv := make(map[string]manifest.UV, len(o.UV))
		for name, entry := range o.UV {
			uv[name] = manifest.UV{
				Width: entry.Width, Height: entry.Height,
				RectX: entry.RectX, RectY: entry.RectY,
				RectWidth: entry.RectWidth, RectHeight: entry.RectHeight,
			}
		}
		atlases = append(atlases, manifest.AtlasRecord{
			File: o.File, Scale: o.Scale, Index: o.Index,
			Width: o.Width, Height: o.Height, UV: uv,
			Count: o.Count, SHA256: o.SHA256,
			SortStrategy: o.SortStrategy, PlacementStrategy: o.PlacementStrategy,
			Efficiency: o.Efficiency,
		})
		totalPlaced += o.Count
	}

	originalSHA := make(map[string]string, len(images))
	for _, img := range images {
		originalSHA[img.Name] = img.OriginalSHA256
	}

	m := manifest.Build(atlases, originalSHA, overrides, maxAtlasSize, maxImageSize, padding, len(images))
	if err := manifest.Write(outputDir, m); err != nil {
		return err
	}
	log.Info("wrote manifest", zap.Int("atlases", len(atlases)))

	if staticDir != "" {
		if err := manifest.WriteStatic(outputDir, staticDir, m); err != nil {
			return err
		}
		log.Info("wrote static publication", zap.String("dir", staticDir))
	}

	return nil
}
