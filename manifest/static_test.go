package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRewritesUVKeysToStableIndex(t *testing.T) {
	m := Build(
		[]AtlasRecord{{
			File: "atlas_x01_00.png", Scale: 1, Width: 200, Height: 200, Count: 2, SHA256: "hash0",
			UV: map[string]UV{
				"apple.png": {Width: 10, Height: 10},
				"zebra.png": {Width: 20, Height: 20},
			},
		}},
		map[string]string{"zebra.png": "sha-z", "apple.png": "sha-a"},
		&InputOverrides{ImageOrder: []string{"zebra.png", "apple.png"}},
		2048, 2048, 2, 2,
	)

	compressed := Compress(m)
	require.Len(t, compressed.Atlases, 1)
	uv := compressed.Atlases[0].UV
	_, hasZebraAtZero := uv["0"]
	_, hasAppleAtOne := uv["1"]
	assert.True(t, hasZebraAtZero, "zebra.png is first in ImageOrder so it must map to index 0")
	assert.True(t, hasAppleAtOne)
	assert.Len(t, compressed.Mapping, 2)
}

func TestWriteStaticCopiesAtlasFilesWithFlatIndex(t *testing.T) {
	sourceDir := t.TempDir()
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "atlas_x01_00.png"), []byte("fake-png-bytes"), 0o644))

	m := Build(
		[]AtlasRecord{{File: "atlas_x01_00.png", Scale: 1, Width: 100, Height: 100, Count: 1, SHA256: "hash0"}},
		map[string]string{"a.png": "sha-a"},
		&InputOverrides{},
		2048, 2048, 2, 1,
	)

	require.NoError(t, WriteStatic(sourceDir, staticDir, m))

	_, err := os.Stat(filepath.Join(staticDir, "atlas.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(staticDir, "atlas", "0.png"))
	assert.NoError(t, err)

	var decoded map[string]interface{}
	data, err := os.ReadFile(filepath.Join(staticDir, "atlas.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(1), decoded["version"])
}
