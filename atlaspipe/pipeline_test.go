package atlaspipe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nullforge/atlaspack/search"
)

func TestRunTerminatesEarlyWhenOneAtlasFitsEverything(t *testing.T) {
	images := []SourceImage{
		{Name: "a.png", Raster: fakeRaster{60, 60}, Width: 60, Height: 60, OriginalSHA256: "x"},
		{Name: "b.png", Raster: fakeRaster{60, 60}, Width: 60, Height: 60, OriginalSHA256: "y"},
	}
	outDir := t.TempDir()

	var levels []ProgressEvent
	var candidates int
	progress := func(ev ProgressEvent) {
		switch ev.Stage {
		case StageLevelFinished:
			levels = append(levels, ev)
		case StageCandidateEvaluated:
			candidates++
		}
	}

	outputs, err := Run(context.Background(), zap.NewNop(), fakeBackend{}, images, outDir, 2048, 2, progress)
	require.NoError(t, err)
	require.Len(t, outputs, 1, "two small images should fit into exactly one atlas at scale x1")
	assert.Equal(t, 1, outputs[0].Scale)
	assert.Len(t, levels, 1, "early termination must stop after the first level")
	assert.Greater(t, candidates, 0, "the search grid must report each candidate it evaluates")

	_, err = os.Stat(filepath.Join(outDir, outputs[0].File))
	assert.NoError(t, err)
}

func TestRunFallsBackWhenAdaptivePackingCannotPlaceAnything(t *testing.T) {
	images := []SourceImage{
		{Name: "huge.png", Raster: fakeRaster{3000, 3000}, Width: 3000, Height: 3000, OriginalSHA256: "z"},
	}
	outDir := t.TempDir()

	outputs, err := Run(context.Background(), zap.NewNop(), fakeBackend{}, images, outDir, 2048, 2, nil)
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "fallback", outputs[0].PlacementStrategy)
	assert.Contains(t, outputs[0].UV, "huge.png")
}

func TestSaveHashesWrittenBytes(t *testing.T) {
	outDir := t.TempDir()
	atlas := &search.Atlas{
		Raster: fakeRaster{10, 10},
		UV:     map[string]search.UV{"a": {Width: 10, Height: 10}},
		Width:  10, Height: 10, Count: 1,
	}
	out, err := save(fakeBackend{}, outDir, 1, 0, atlas)
	require.NoError(t, err)
	assert.Equal(t, "atlas_x01_00.png", out.File)
	assert.Len(t, out.SHA256, 64)
}
